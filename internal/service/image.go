// Package service coordinates the two provider families behind one
// generation call: model routing, optional prompt enhancement and result
// normalization.
package service

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"imageserver/internal/catalog"
	"imageserver/internal/core"
	"imageserver/internal/infra"
	"imageserver/internal/providers/gemini"
	"imageserver/internal/providers/imagen"
	"imageserver/internal/providers/prompt"
)

// ImageResult holds one generated image plus its metadata. Prompt is always
// the original caller-supplied text; the prompt actually sent upstream lives
// in Metadata["enhanced_prompt"] so callers can show "what I asked for"
// separately from "what was sent".
type ImageResult struct {
	ImageData string // base64
	Prompt    string
	Model     string
	Index     int
	Metadata  map[string]any
	Timestamp time.Time
}

// Size returns the decoded image size in bytes.
func (r *ImageResult) Size() int {
	decoded, err := base64.StdEncoding.DecodeString(r.ImageData)
	if err != nil {
		return 0
	}
	return len(decoded)
}

// Bytes returns the decoded image payload.
func (r *ImageResult) Bytes() ([]byte, error) {
	decoded, err := base64.StdEncoding.DecodeString(r.ImageData)
	if err != nil {
		return nil, core.ImageProcessing("failed to decode image data", err)
	}
	return decoded, nil
}

// Filename derives the on-disk name: shortened model, timestamp, sanitized
// prompt prefix, and a 1-based suffix for every image after the first.
func (r *ImageResult) Filename(ext string) string {
	snippet := r.Prompt
	if len(snippet) > 30 {
		snippet = snippet[:30]
	}
	name := shortModelName(r.Model) + "_" +
		r.Timestamp.Format("20060102_150405") + "_" +
		core.SanitizeFilename(snippet)
	if r.Index > 0 {
		name += "_" + strconv.Itoa(r.Index+1)
	}
	return name + "." + ext
}

func shortModelName(model string) string {
	switch {
	case model == "gemini-2.5-flash-image":
		return "gemini-flash"
	case len(model) > 9 && model[:9] == "imagen-4-":
		return "img4-" + model[9:]
	default:
		return model
	}
}

// GenerateParams carries the per-request options shared by both families
// plus the family-specific subsets.
type GenerateParams struct {
	Model         string
	EnhancePrompt bool

	NumberOfImages int
	AspectRatio    string
	OutputMimeType string

	// Gemini family only.
	InputImage                   string // base64
	MaintainCharacterConsistency bool
	BlendImages                  bool
	UseWorldKnowledge            bool

	// Imagen family only.
	NegativePrompt   string
	PersonGeneration string
	Seed             *int64
}

type geminiImageClient interface {
	GenerateImage(ctx context.Context, req gemini.ImageRequest) (*gemini.ImageResponse, error)
	Close()
}

type imagenImageClient interface {
	GenerateImage(ctx context.Context, req imagen.ImageRequest) (*imagen.ImageResponse, error)
	Close()
}

type promptEnhancer interface {
	Enhance(ctx context.Context, original string, hints prompt.Hints) prompt.Result
}

// Service owns one client per provider family and, optionally, the prompt
// enhancer. Close must be called on every exit path; it releases both
// transports unconditionally.
type Service struct {
	gemini   geminiImageClient
	imagen   imagenImageClient
	enhancer promptEnhancer
	logger   *infra.Logger
}

// Options configures a Service.
type Options struct {
	APIKey             string
	BaseURL            string
	EnableEnhancement  bool
	EnhancementModel   string
	RequestTimeout     time.Duration
	EnhancementTimeout time.Duration
	HTTPClient         *http.Client
	Logger             *infra.Logger
}

// New constructs a Service and the provider clients it owns.
func New(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	geminiClient := gemini.NewClient(gemini.Options{
		APIKey:         opts.APIKey,
		BaseURL:        opts.BaseURL,
		HTTPClient:     opts.HTTPClient,
		Logger:         logger,
		RequestTimeout: opts.RequestTimeout,
	})
	imagenClient := imagen.NewClient(imagen.Options{
		APIKey:         opts.APIKey,
		BaseURL:        opts.BaseURL,
		HTTPClient:     opts.HTTPClient,
		Logger:         logger,
		RequestTimeout: opts.RequestTimeout,
	})
	svc := &Service{
		gemini: geminiClient,
		imagen: imagenClient,
		logger: logger,
	}
	if opts.EnableEnhancement {
		svc.enhancer = prompt.NewEnhancer(prompt.Options{
			Client:  geminiClient,
			Model:   opts.EnhancementModel,
			Timeout: opts.EnhancementTimeout,
			Logger:  logger,
		})
	}
	return svc
}

// Generate routes one request to the owning provider family, optionally
// enhancing the prompt first, and wraps every returned image into an
// ImageResult.
func (s *Service) Generate(ctx context.Context, userPrompt string, params GenerateParams) ([]ImageResult, error) {
	model := params.Model
	if model == "" {
		model = catalog.DefaultGeminiModel
	}
	family := catalog.ResolveFamily(model)
	if family == catalog.FamilyUnknown {
		return nil, core.Validationf("Invalid model '%s'. Available models: %s",
			model, strings.Join(catalog.ModelKeys(), ", "))
	}

	sentPrompt := userPrompt
	if params.EnhancePrompt && s.enhancer != nil {
		result := s.enhancer.Enhance(ctx, userPrompt, prompt.Hints{
			IsEditing:                    params.InputImage != "",
			MaintainCharacterConsistency: params.MaintainCharacterConsistency,
			BlendImages:                  params.BlendImages,
			UseWorldKnowledge:            params.UseWorldKnowledge,
			AspectRatio:                  params.AspectRatio,
		})
		// The enhancer never propagates its failure; generation proceeds
		// with whatever prompt it handed back.
		sentPrompt = result.Prompt
	}

	var images []string
	var err error
	switch family {
	case catalog.FamilyGemini:
		var resp *gemini.ImageResponse
		resp, err = s.gemini.GenerateImage(ctx, gemini.ImageRequest{
			Prompt:      sentPrompt,
			Model:       model,
			InputImage:  params.InputImage,
			AspectRatio: params.AspectRatio,
		})
		if resp != nil {
			images = resp.Images
		}
	case catalog.FamilyImagen:
		var resp *imagen.ImageResponse
		resp, err = s.imagen.GenerateImage(ctx, imagen.ImageRequest{
			Prompt:           sentPrompt,
			Model:            model,
			NumberOfImages:   params.NumberOfImages,
			AspectRatio:      params.AspectRatio,
			OutputMimeType:   params.OutputMimeType,
			PersonGeneration: params.PersonGeneration,
			NegativePrompt:   params.NegativePrompt,
			Seed:             params.Seed,
		})
		if resp != nil {
			images = resp.Images
		}
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	results := make([]ImageResult, len(images))
	for i, data := range images {
		results[i] = ImageResult{
			ImageData: data,
			Prompt:    userPrompt,
			Model:     model,
			Index:     i,
			Metadata:  s.buildMetadata(sentPrompt, family, params),
			Timestamp: now,
		}
	}
	return results, nil
}

func (s *Service) buildMetadata(sentPrompt string, family catalog.Family, params GenerateParams) map[string]any {
	meta := map[string]any{
		"enhanced_prompt": sentPrompt,
		"api":             family.String(),
	}
	if params.AspectRatio != "" {
		meta["aspect_ratio"] = params.AspectRatio
	}
	switch family {
	case catalog.FamilyGemini:
		if params.InputImage != "" {
			meta["input_image"] = true
		}
		if params.MaintainCharacterConsistency {
			meta["maintain_character_consistency"] = true
		}
		if params.BlendImages {
			meta["blend_images"] = true
		}
		if params.UseWorldKnowledge {
			meta["use_world_knowledge"] = true
		}
	case catalog.FamilyImagen:
		if params.NumberOfImages > 0 {
			meta["number_of_images"] = params.NumberOfImages
		}
		if params.NegativePrompt != "" {
			meta["negative_prompt"] = params.NegativePrompt
		}
		if params.PersonGeneration != "" {
			meta["person_generation"] = params.PersonGeneration
		}
	}
	return meta
}

// Close releases both provider transports. Safe to defer immediately after
// New; every exit path must go through it.
func (s *Service) Close() {
	s.gemini.Close()
	s.imagen.Close()
}
