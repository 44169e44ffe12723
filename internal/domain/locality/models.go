package locality

// State is a Brazilian federative unit.
type State struct {
	Sigla string
	Name  string
}

// City is a municipality of a state.
type City struct {
	Name string
}
