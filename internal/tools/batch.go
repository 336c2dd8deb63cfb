package tools

import (
	"context"

	"golang.org/x/sync/errgroup"

	"imageserver/internal/catalog"
	"imageserver/internal/core"
)

// BatchGenerateInput carries the batch_generate operation options. The
// shared options apply to every prompt in the list.
type BatchGenerateInput struct {
	Prompts       []string `json:"prompts"`
	Model         string   `json:"model,omitempty"`
	EnhancePrompt *bool    `json:"enhance_prompt,omitempty"`
	AspectRatio   string   `json:"aspect_ratio,omitempty"`
	OutputFormat  string   `json:"output_format,omitempty"`
	BatchSize     int      `json:"batch_size,omitempty"`

	PersonGeneration string `json:"person_generation,omitempty"`
	NegativePrompt   string `json:"negative_prompt,omitempty"`
}

// BatchItem is one per-prompt outcome, tagged with the original list index
// so callers can correlate output to input across windows and failures.
type BatchItem struct {
	PromptIndex int    `json:"prompt_index"`
	Prompt      string `json:"prompt"`
	Success     bool   `json:"success"`

	Model           string           `json:"model,omitempty"`
	ImagesGenerated int              `json:"images_generated,omitempty"`
	Images          []GeneratedImage `json:"images,omitempty"`
	Metadata        map[string]any   `json:"metadata,omitempty"`

	Error     string `json:"error,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

// BatchGenerateResponse is the aggregate summary envelope.
type BatchGenerateResponse struct {
	Success      bool        `json:"success"`
	TotalPrompts int         `json:"total_prompts"`
	BatchSize    int         `json:"batch_size"`
	Completed    int         `json:"completed"`
	Failed       int         `json:"failed"`
	Results      []BatchItem `json:"results"`
}

// BatchGenerate partitions the prompt list into consecutive windows of
// batch_size and runs the single-request tool concurrently within each
// window. One prompt's failure never cancels its siblings; windows execute
// strictly one after another. Results are ordered by original prompt index
// regardless of completion order.
func (t *Toolbox) BatchGenerate(ctx context.Context, in BatchGenerateInput) (*BatchGenerateResponse, error) {
	if !t.cfg.EnableBatch {
		return nil, core.Validationf("Batch processing is disabled")
	}
	if len(in.Prompts) == 0 {
		return nil, core.Validationf("Prompts list cannot be empty")
	}

	batchSize := in.BatchSize
	if batchSize == 0 {
		batchSize = t.cfg.MaxBatchSize
	}
	if err := core.ValidateBatchSize(batchSize, catalog.MaxBatchSize); err != nil {
		return nil, err
	}

	resp := &BatchGenerateResponse{
		Success:      true,
		TotalPrompts: len(in.Prompts),
		BatchSize:    batchSize,
		Results:      make([]BatchItem, len(in.Prompts)),
	}

	for start := 0; start < len(in.Prompts); start += batchSize {
		end := start + batchSize
		if end > len(in.Prompts) {
			end = len(in.Prompts)
		}
		t.logger.Info().
			Int("window_start", start).
			Int("window_size", end-start).
			Msg("tools: processing batch window")

		// Tasks never return an error: each outcome, success or failure,
		// lands in its own result cell keyed by original index.
		g, windowCtx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			index := i
			prompt := in.Prompts[index]
			g.Go(func() error {
				result, err := t.GenerateImage(windowCtx, GenerateImageInput{
					Prompt:           prompt,
					Model:            in.Model,
					EnhancePrompt:    in.EnhancePrompt,
					NumberOfImages:   1,
					AspectRatio:      in.AspectRatio,
					OutputFormat:     in.OutputFormat,
					PersonGeneration: in.PersonGeneration,
					NegativePrompt:   in.NegativePrompt,
				})
				item := BatchItem{PromptIndex: index, Prompt: prompt}
				if err != nil {
					t.logger.Error().Err(err).Int("prompt_index", index).
						Msg("tools: batch item failed")
					item.Error = err.Error()
					item.ErrorType = core.KindOf(err).String()
				} else {
					item.Success = true
					item.Model = result.Model
					item.ImagesGenerated = result.ImagesGenerated
					item.Images = result.Images
					item.Metadata = result.Metadata
				}
				resp.Results[index] = item
				return nil
			})
		}
		// Tasks are error-free by construction, so Wait only synchronizes
		// the window.
		_ = g.Wait()
	}

	for i := range resp.Results {
		if resp.Results[i].Success {
			resp.Completed++
		} else {
			resp.Failed++
		}
	}
	return resp, nil
}
