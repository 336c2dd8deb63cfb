// Package prompt rewrites user prompts into richer ones via a text
// generation call before the main image call. Enhancement is best-effort:
// every failure falls back to the original prompt and is never propagated.
package prompt

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"imageserver/internal/catalog"
	"imageserver/internal/infra"
	"imageserver/internal/providers/gemini"
)

const systemInstruction = `You are an expert prompt engineer for AI image generation models. Your task is to enhance user prompts to produce the best possible results.

Follow these guidelines:
1. Preserve the user's core intent and subject matter
2. Add specific, professional details about:
   - Composition (framing, perspective, angle)
   - Lighting (type, quality, direction, mood)
   - Materials and textures
   - Atmosphere and mood
   - Artistic style (if appropriate)
3. Use photographic and cinematic terminology when relevant
4. Be hyper-specific rather than generic
5. For portraits: describe features, expressions, clothing
6. For scenes: describe environment, weather, time of day
7. Keep prompts concise but detailed (aim for 100-300 words)
8. Output ONLY the enhanced prompt, no explanations`

// TextGenerator is the slice of the Gemini client the enhancer needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, req gemini.TextRequest) (string, error)
}

// Hints carries the request context that shapes the enhancement instruction.
type Hints struct {
	IsEditing                    bool
	MaintainCharacterConsistency bool
	BlendImages                  bool
	UseWorldKnowledge            bool
	AspectRatio                  string
}

// Result makes the fallback path explicit: Prompt is always usable, Enhanced
// reports whether the rewrite succeeded, and Err carries the cause when the
// original prompt was kept.
type Result struct {
	Prompt   string
	Enhanced bool
	Err      error
}

// Enhancer delegates to a text generation client with a fixed system
// instruction.
type Enhancer struct {
	client  TextGenerator
	model   string
	timeout time.Duration
	logger  *infra.Logger
}

// Options configures an Enhancer. Timeout bounds one enhancement call; it
// is deliberately shorter than the image request timeout since enhancement
// is optional.
type Options struct {
	Client  TextGenerator
	Model   string
	Timeout time.Duration
	Logger  *infra.Logger
}

// NewEnhancer constructs an enhancer around a text generation client.
func NewEnhancer(opts Options) *Enhancer {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = catalog.DefaultEnhancementModel
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Enhancer{client: opts.Client, model: model, timeout: opts.Timeout, logger: logger}
}

// Enhance rewrites the original prompt. Any failure, including provider
// errors and empty responses, yields the original prompt unchanged.
func (e *Enhancer) Enhance(ctx context.Context, original string, hints Hints) Result {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	enhanced, err := e.client.GenerateText(ctx, gemini.TextRequest{
		Prompt:            buildInstruction(original, hints),
		Model:             e.model,
		SystemInstruction: systemInstruction,
	})
	if err != nil {
		e.logger.Warn().Err(err).Msg("prompt: enhancement failed, using original")
		return Result{Prompt: original, Err: err}
	}
	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		e.logger.Warn().Msg("prompt: empty enhancement response, using original")
		return Result{Prompt: original}
	}
	e.logger.Info().
		Int("original_len", len(original)).
		Int("enhanced_len", len(enhanced)).
		Msg("prompt: enhanced")
	return Result{Prompt: enhanced, Enhanced: true}
}

func buildInstruction(original string, hints Hints) string {
	parts := []string{"Enhance this image generation prompt:\n\n" + original}

	if hints.IsEditing {
		parts = append(parts, "\nContext: This is for image editing/modification")
	}
	if hints.MaintainCharacterConsistency {
		parts = append(parts,
			"\nIMPORTANT: Describe the character with specific, consistent features "+
				"for use across multiple generations")
	}
	if hints.BlendImages {
		parts = append(parts,
			"\nContext: Multiple images will be blended. Describe how elements "+
				"should be composed naturally together")
	}
	if hints.UseWorldKnowledge {
		parts = append(parts,
			"\nContext: Include accurate real-world details for historical figures, "+
				"landmarks, or factual scenarios")
	}
	switch hints.AspectRatio {
	case "16:9", "21:9":
		parts = append(parts, "\nFormat: Wide landscape composition")
	case "9:16", "2:3", "3:4":
		parts = append(parts, "\nFormat: Vertical/portrait composition")
	}

	return strings.Join(parts, "\n")
}
