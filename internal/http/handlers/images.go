package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"imageserver/internal/core"
	"imageserver/internal/tools"
)

// ImagesGenerate handles the generate_image operation.
func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	var in tools.GenerateImageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.failure(w, core.Validationf("invalid payload: %v", err))
		return
	}
	resp, err := a.Tools.GenerateImage(r.Context(), in)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handlers: generate_image failed")
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}

// ImagesBatch handles the batch_generate operation.
func (a *App) ImagesBatch(w http.ResponseWriter, r *http.Request) {
	var in tools.BatchGenerateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		a.failure(w, core.Validationf("invalid payload: %v", err))
		return
	}
	resp, err := a.Tools.BatchGenerate(r.Context(), in)
	if err != nil {
		a.Logger.Error().Err(err).Msg("handlers: batch_generate failed")
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}

// ImageGet handles the get_image operation.
func (a *App) ImageGet(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	resp, err := a.Tools.GetImage(filename)
	if err != nil {
		a.failure(w, err)
		return
	}
	a.json(w, http.StatusOK, resp)
}
