package item

import "context"

// Repository defines read access to the static item catalog.
type Repository interface {
	// List returns every catalog item ordered by id.
	List(ctx context.Context) ([]*Item, error)
}
