// Package tools implements the callable operations exposed at the service
// boundary: generate_image, batch_generate and get_image. Every operation
// validates before any network call and reports failures as structured
// envelopes instead of raising past the boundary.
package tools

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"imageserver/internal/core"
	"imageserver/internal/infra"
	"imageserver/internal/service"
	"imageserver/internal/storage"
)

// generator is the slice of the orchestration service a tool call needs.
// The service is created per call and closed on every exit path.
type generator interface {
	Generate(ctx context.Context, prompt string, params service.GenerateParams) ([]service.ImageResult, error)
	Close()
}

// Toolbox binds the operations to their configuration, storage and logger.
type Toolbox struct {
	cfg    *infra.Config
	store  *storage.FileStore
	logger *infra.Logger

	// newGenerator is swapped out in tests to stub the provider layer.
	newGenerator func() generator
}

// NewToolbox constructs the operation set around the process configuration.
func NewToolbox(cfg *infra.Config, store *storage.FileStore, logger *infra.Logger) *Toolbox {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	t := &Toolbox{cfg: cfg, store: store, logger: logger}
	t.newGenerator = func() generator {
		return service.New(service.Options{
			APIKey:             cfg.GeminiAPIKey,
			BaseURL:            cfg.GeminiBaseURL,
			EnableEnhancement:  cfg.EnableEnhancement,
			EnhancementModel:   cfg.EnhancementModel,
			RequestTimeout:     cfg.RequestTimeout,
			EnhancementTimeout: cfg.EnhancementTimeout,
			Logger:             logger,
		})
	}
	return t
}

// Failure is the envelope returned whenever an operation fails. The process
// never crashes on a single request's failure.
type Failure struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorType string `json:"error_type"`
}

// FailureFrom wraps any error into the failure envelope, naming the error
// kind so callers can branch without parsing message text.
func FailureFrom(err error) Failure {
	return Failure{
		Success:   false,
		Error:     err.Error(),
		ErrorType: core.KindOf(err).String(),
	}
}
