// Package handlers exposes the tool operations and read-only resources as
// JSON endpoints. Every operation boundary returns a structured envelope;
// errors never propagate past a handler.
package handlers

import (
	"encoding/json"
	"net/http"

	"imageserver/internal/core"
	"imageserver/internal/infra"
	"imageserver/internal/tools"
)

// App is the handler container.
type App struct {
	Cfg    *infra.Config
	Tools  *tools.Toolbox
	Logger *infra.Logger
}

// NewApp wires the handlers to their collaborators.
func NewApp(cfg *infra.Config, toolbox *tools.Toolbox, logger *infra.Logger) *App {
	return &App{Cfg: cfg, Tools: toolbox, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// failure writes the structured failure envelope, mapping the error kind to
// an HTTP status. Callers of the API branch on error_type, not on the
// status code, but the status keeps generic HTTP tooling honest.
func (a *App) failure(w http.ResponseWriter, err error) {
	a.json(w, statusFor(err), tools.FailureFrom(err))
}

func statusFor(err error) int {
	switch core.KindOf(err) {
	case core.KindValidation:
		return http.StatusBadRequest
	case core.KindAuthentication:
		return http.StatusUnauthorized
	case core.KindRateLimit:
		return http.StatusTooManyRequests
	case core.KindContentPolicy:
		return http.StatusBadRequest
	case core.KindImageProcessing:
		return http.StatusNotFound
	case core.KindAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
