package ibge

// StateAPIResponse is one entry of the localidades/estados listing.
type StateAPIResponse struct {
	ID     int    `json:"id"`
	Sigla  string `json:"sigla"`
	Nome   string `json:"nome"`
	Regiao struct {
		ID    int    `json:"id"`
		Sigla string `json:"sigla"`
		Nome  string `json:"nome"`
	} `json:"regiao"`
}

// CityAPIResponse is one entry of the localidades/estados/{uf}/municipios listing.
type CityAPIResponse struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}
