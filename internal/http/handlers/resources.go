package handlers

import (
	"net/http"

	"imageserver/internal/catalog"
)

// Models serves the static model catalog resource.
func (a *App) Models(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, catalog.Models())
}

// ConfigResource serves the settings-derived read-only configuration view.
// Secrets are never echoed.
func (a *App) ConfigResource(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"output_directory":           a.Cfg.OutputDir,
		"prompt_enhancement_enabled": a.Cfg.EnableEnhancement,
		"batch_processing_enabled":   a.Cfg.EnableBatch,
		"default_gemini_model":       a.Cfg.DefaultGeminiModel,
		"default_imagen_model":       a.Cfg.DefaultImagenModel,
		"enhancement_model":          a.Cfg.EnhancementModel,
		"max_batch_size":             a.Cfg.MaxBatchSize,
		"request_timeout_seconds":    int(a.Cfg.RequestTimeout.Seconds()),
		"default_aspect_ratio":       a.Cfg.DefaultAspectRatio,
		"default_output_format":      a.Cfg.DefaultOutputFormat,
	})
}

// Health reports liveness.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
