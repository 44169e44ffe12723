package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"ecoleta/internal/domain"
	"ecoleta/internal/domain/point"
)

// foreignKeyViolation is the PostgreSQL SQLSTATE for foreign_key_violation.
const foreignKeyViolation = "23503"

type PointRepository struct {
	db *DB
}

func NewPointRepository(db *DB) *PointRepository {
	return &PointRepository{db: db}
}

func (r *PointRepository) Search(ctx context.Context, filter point.SearchFilter) ([]*point.Point, error) {
	query := `
		SELECT DISTINCT p.id, p.name, p.email, p.whatssap, p.image, p.latitude, p.longitude, p.city, p.uf
		FROM points p
		JOIN point_items pi ON pi.point_id = p.id
		WHERE pi.item_id = ANY($1)
		  AND p.city = $2
		  AND p.uf = $3
		ORDER BY p.id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(filter.ItemIDs), filter.City, filter.UF)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to search points: %w", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	points := []*point.Point{}
	for rows.Next() {
		var p point.Point
		err := rows.Scan(
			&p.ID, &p.Name, &p.Email, &p.Whatsapp, &p.Image,
			&p.Latitude, &p.Longitude, &p.City, &p.UF,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to scan point: %w", domain.ErrStorageUnavailable, err)
		}
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating points: %w", domain.ErrStorageUnavailable, err)
	}

	return points, nil
}

func (r *PointRepository) GetByID(ctx context.Context, id int64) (*point.Point, error) {
	query := `
		SELECT id, name, email, whatssap, image, latitude, longitude, city, uf
		FROM points
		WHERE id = $1
	`

	var p point.Point
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Email, &p.Whatsapp, &p.Image,
		&p.Latitude, &p.Longitude, &p.City, &p.UF,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get point: %w", domain.ErrStorageUnavailable, err)
	}

	return &p, nil
}

func (r *PointRepository) ListItemTitles(ctx context.Context, pointID int64) ([]string, error) {
	query := `
		SELECT i.title
		FROM items i
		JOIN point_items pi ON pi.item_id = i.id
		WHERE pi.point_id = $1
		ORDER BY i.id
	`

	rows, err := r.db.QueryContext(ctx, query, pointID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list point items: %w", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	titles := []string{}
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("%w: failed to scan item title: %w", domain.ErrStorageUnavailable, err)
		}
		titles = append(titles, title)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating item titles: %w", domain.ErrStorageUnavailable, err)
	}

	return titles, nil
}

func (r *PointRepository) Create(ctx context.Context, p *point.Point, itemIDs []int64) (*point.Point, error) {
	created := *p

	err := r.db.InTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		query := `
			INSERT INTO points (name, email, whatssap, image, latitude, longitude, city, uf)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`

		err := tx.QueryRowContext(
			ctx, query,
			p.Name, p.Email, p.Whatsapp, p.Image, p.Latitude, p.Longitude, p.City, p.UF,
		).Scan(&created.ID)
		if err != nil {
			return fmt.Errorf("failed to insert point: %w", err)
		}

		if len(itemIDs) == 0 {
			return nil
		}

		valueStrings := make([]string, 0, len(itemIDs))
		valueArgs := make([]any, 0, len(itemIDs)*2)

		for i, itemID := range itemIDs {
			valueStrings = append(valueStrings, fmt.Sprintf("($%d, $%d)", i*2+1, i*2+2))
			valueArgs = append(valueArgs, created.ID, itemID)
		}

		query = fmt.Sprintf(
			`INSERT INTO point_items (point_id, item_id) VALUES %s`,
			strings.Join(valueStrings, ", "),
		)

		if _, err := tx.ExecContext(ctx, query, valueArgs...); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
				return fmt.Errorf("failed to insert point items: unknown item id: %w", err)
			}
			return fmt.Errorf("failed to insert point items: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransactionFailed, err)
	}

	return &created, nil
}
