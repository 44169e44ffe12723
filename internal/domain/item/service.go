package item

import (
	"context"

	"ecoleta/internal/shared/imageurl"
)

// Service serves the item catalog with derived image URLs.
type Service struct {
	repo   Repository
	images *imageurl.Builder
}

// NewService creates a new item service.
func NewService(repo Repository, images *imageurl.Builder) *Service {
	return &Service{repo: repo, images: images}
}

// ListItems returns the whole catalog.
func (s *Service) ListItems(ctx context.Context) ([]*Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		it.ImageURL = s.images.URL(it.Image)
	}

	return items, nil
}
