package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type none struct{}

// NewServer exposes the stat queries of a loaded manager over http.
func NewServer(manager *TransitManager, config Config) http.Handler {
	handler := manager.GetHandler()
	snapshot := manager.GetSnapshot()

	app := chi.NewRouter()
	app.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	MapGet(app, "/health", func(none) Result {
		return OK(map[string]any{
			"status":     "ok",
			"snapshot":   snapshot.ID.String(),
			"created_at": snapshot.CreatedAt.Format(time.RFC3339),
			"stops":      snapshot.Catalogue.StopCount(),
			"buses":      snapshot.Catalogue.BusCount(),
		})
	})
	MapGet(app, "/v0/bus/{name}", func(req BusRequestParams) Result {
		return HandleBusRequest(handler, req)
	})
	MapGet(app, "/v0/stop/{name}", func(req StopRequestParams) Result {
		return HandleStopRequest(handler, req)
	})
	MapGet(app, "/v0/route", func(req RouteRequestParams) Result {
		return HandleRouteRequest(handler, req)
	})
	MapGet(app, "/v0/map", func(none) Result {
		return HandleMapRequest(handler)
	})
	return app
}
