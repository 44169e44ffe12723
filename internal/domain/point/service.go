package point

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"ecoleta/internal/domain"
	"ecoleta/internal/shared/imageurl"
)

var (
	pointMeter        = otel.Meter("ecoleta/point")
	pointsCreated, _  = pointMeter.Int64Counter("points.created", metric.WithDescription("Collection points registered"))
	pointsRejected, _ = pointMeter.Int64Counter("points.rejected", metric.WithDescription("Point registrations rejected by reason"))
)

// Service contains the business logic for collection points.
type Service struct {
	repo   Repository
	store  ImageStore
	images *imageurl.Builder
}

// NewService creates a new point service. images derives the public image URL
// of every point returned by search and detail lookups.
func NewService(repo Repository, store ImageStore, images *imageurl.Builder) *Service {
	return &Service{repo: repo, store: store, images: images}
}

// SearchPoints returns the points in city/uf accepting at least one of the
// comma-separated item ids.
func (s *Service) SearchPoints(ctx context.Context, city, uf, items string) ([]*Point, error) {
	itemIDs, err := ParseItemIDs(items)
	if err != nil {
		return nil, err
	}

	points, err := s.repo.Search(ctx, SearchFilter{City: city, UF: uf, ItemIDs: itemIDs})
	if err != nil {
		return nil, err
	}

	for _, p := range points {
		p.ImageURL = s.images.URL(p.Image)
	}

	return points, nil
}

// GetPoint returns a point with the titles of its items.
func (s *Service) GetPoint(ctx context.Context, id int64) (*Detail, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: point %d", domain.ErrNotFound, id)
	}
	p.ImageURL = s.images.URL(p.Image)

	titles, err := s.repo.ListItemTitles(ctx, id)
	if err != nil {
		return nil, err
	}
	if titles == nil {
		titles = []string{}
	}

	return &Detail{Point: p, Items: titles}, nil
}

// CreatePoint registers a point with its items. Input is fully validated
// before the image is stored; if the transaction fails the stored image is
// removed again.
func (s *Service) CreatePoint(ctx context.Context, params CreatePointParams) (*Point, error) {
	p, itemIDs, err := params.normalize()
	if err != nil {
		s.reject(ctx, err)
		return nil, err
	}

	storedName, err := s.store.Save(params.Image.Filename, params.Image.Content)
	if err != nil {
		err = fmt.Errorf("%w: failed to store image: %w", domain.ErrTransactionFailed, err)
		s.reject(ctx, err)
		return nil, err
	}
	p.Image = storedName

	created, err := s.repo.Create(ctx, p, itemIDs)
	if err != nil {
		if rmErr := s.store.Remove(storedName); rmErr != nil {
			slog.WarnContext(ctx, "failed to remove orphaned upload", "file", storedName, "error", rmErr)
		}
		s.reject(ctx, err)
		return nil, err
	}

	created.ImageURL = s.images.URL(created.Image)
	pointsCreated.Add(ctx, 1, metric.WithAttributes(attribute.String("uf", created.UF)))

	return created, nil
}

func (s *Service) reject(ctx context.Context, err error) {
	reason := "other"
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		reason = "invalid_query"
	case errors.Is(err, domain.ErrMissingImage):
		reason = "missing_image"
	case errors.Is(err, domain.ErrTransactionFailed):
		reason = "transaction_failed"
	}
	pointsRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
