// Package httpapi assembles the chi router for the gateway.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"imageserver/internal/http/handlers"
	"imageserver/internal/infra"
	"imageserver/internal/middleware"
)

// NewRouter builds the route table with the standard middleware chain.
func NewRouter(app *handlers.App, logger infra.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/images", func(r chi.Router) {
		r.Post("/generate", app.ImagesGenerate)
		r.Post("/batch", app.ImagesBatch)
		r.Get("/{filename}", app.ImageGet)
	})

	r.Get("/v1/models", app.Models)
	r.Get("/v1/config", app.ConfigResource)

	return r
}
