package main

import (
	"log/slog"
	"net/http"

	httphandlers "ecoleta/internal/interfaces/http"
	"ecoleta/internal/shared/config"
	"ecoleta/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", httphandlers.HandleHealth(deps.DB))

	// Catalog and collection points
	mux.HandleFunc("/items", deps.ItemHandler.HandleListItems)
	mux.HandleFunc("/points", deps.PointHandler.HandlePoints)
	mux.HandleFunc("/points/{id}", deps.PointHandler.HandlePointByID)

	// Locality lookups for the registration form
	mux.HandleFunc("/localities/ufs", deps.LocalityHandler.HandleListStates)
	mux.HandleFunc("/localities/ufs/{uf}/cities", deps.LocalityHandler.HandleListCities)

	// Uploaded and catalog images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", deps.Images.Handler()))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(handler)
		slog.Info("TLS security middleware enabled (HSTS)")
	}

	// Apply telemetry middleware when enabled
	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(cfg.Telemetry.ServiceName)(middleware.Tracing(handler))
	}

	return handler
}
