package postgres

import (
	"context"
	"fmt"

	"ecoleta/internal/domain"
	"ecoleta/internal/domain/item"
)

type ItemRepository struct {
	db *DB
}

func NewItemRepository(db *DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) List(ctx context.Context) ([]*item.Item, error) {
	query := `SELECT id, title, image FROM items ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list items: %w", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	items := []*item.Item{}
	for rows.Next() {
		var it item.Item
		if err := rows.Scan(&it.ID, &it.Title, &it.Image); err != nil {
			return nil, fmt.Errorf("%w: failed to scan item: %w", domain.ErrStorageUnavailable, err)
		}
		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating items: %w", domain.ErrStorageUnavailable, err)
	}

	return items, nil
}
