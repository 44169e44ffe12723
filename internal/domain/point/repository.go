package point

import (
	"context"
	"io"
)

// Repository defines data access for points and their item associations.
// Implemented by the infrastructure layer.
type Repository interface {
	// Search returns distinct points matching the filter, ordered by id.
	Search(ctx context.Context, filter SearchFilter) ([]*Point, error)

	// GetByID returns the point or nil when it does not exist.
	GetByID(ctx context.Context, id int64) (*Point, error)

	// ListItemTitles returns the titles of the items associated with a point.
	ListItemTitles(ctx context.Context, pointID int64) ([]string, error)

	// Create inserts the point and one association per item id in a single
	// transaction. On failure nothing is persisted and the returned error
	// wraps domain.ErrTransactionFailed.
	Create(ctx context.Context, p *Point, itemIDs []int64) (*Point, error)
}

// ImageStore persists uploaded images under server-assigned names.
type ImageStore interface {
	// Save stores the content and returns the assigned filename.
	Save(filename string, content io.Reader) (string, error)

	// Remove deletes a previously saved file.
	Remove(storedName string) error
}
