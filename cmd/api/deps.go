package main

import (
	"log/slog"

	"ecoleta/internal/domain/item"
	"ecoleta/internal/domain/locality"
	"ecoleta/internal/domain/point"
	"ecoleta/internal/infrastructure/ibge"
	"ecoleta/internal/infrastructure/postgres"
	"ecoleta/internal/infrastructure/storage"
	httphandlers "ecoleta/internal/interfaces/http"
	"ecoleta/internal/shared/config"
	"ecoleta/internal/shared/imageurl"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB     *postgres.DB
	Images *storage.DiskStore

	// Handlers
	ItemHandler     *httphandlers.ItemHandler
	PointHandler    *httphandlers.PointHandler
	LocalityHandler *httphandlers.LocalityHandler
}

// NewDependencies initializes all application dependencies.
func NewDependencies(cfg *config.Config) (*Dependencies, error) {
	// Connect to database
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	slog.Info("connected to database", "host", cfg.Database.Host, "name", cfg.Database.DBName)

	images, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		db.Close()
		return nil, err
	}

	imageURLs, err := imageurl.NewBuilder(cfg.Uploads.BaseURL)
	if err != nil {
		db.Close()
		return nil, err
	}

	// Initialize repositories
	itemRepo := postgres.NewItemRepository(db)
	pointRepo := postgres.NewPointRepository(db)

	// Initialize domain services
	itemService := item.NewService(itemRepo, imageURLs)
	pointService := point.NewService(pointRepo, images, imageURLs)
	localityService := locality.NewService(ibge.NewClient(cfg.Locality.BaseURL, cfg.Locality.Timeout))

	return &Dependencies{
		DB:              db,
		Images:          images,
		ItemHandler:     httphandlers.NewItemHandler(itemService),
		PointHandler:    httphandlers.NewPointHandler(pointService, cfg.Uploads.MaxBytes),
		LocalityHandler: httphandlers.NewLocalityHandler(localityService),
	}, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.DB != nil {
		d.DB.Close()
	}
}
