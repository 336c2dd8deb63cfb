package tools

import (
	"context"
	"encoding/base64"
	"os"
	"strings"

	"imageserver/internal/catalog"
	"imageserver/internal/core"
	"imageserver/internal/service"
)

// GenerateImageInput carries every option of the generate_image operation.
// Pointer fields distinguish "absent" from zero values so defaults can be
// resolved from configuration.
type GenerateImageInput struct {
	Prompt         string `json:"prompt"`
	Model          string `json:"model,omitempty"`
	EnhancePrompt  *bool  `json:"enhance_prompt,omitempty"`
	NumberOfImages int    `json:"number_of_images,omitempty"`
	AspectRatio    string `json:"aspect_ratio,omitempty"`
	OutputFormat   string `json:"output_format,omitempty"`

	// Gemini family only.
	InputImagePath               string `json:"input_image_path,omitempty"`
	MaintainCharacterConsistency bool   `json:"maintain_character_consistency,omitempty"`
	BlendImages                  bool   `json:"blend_images,omitempty"`
	UseWorldKnowledge            bool   `json:"use_world_knowledge,omitempty"`

	// Imagen family only.
	NegativePrompt   string `json:"negative_prompt,omitempty"`
	PersonGeneration string `json:"person_generation,omitempty"`
	Seed             *int64 `json:"seed,omitempty"`

	SaveToDisk *bool `json:"save_to_disk,omitempty"`
}

// GeneratedImage reports one image of a successful generation. Path and
// ImageBase64 are mutually exclusive, controlled by save_to_disk.
type GeneratedImage struct {
	Index          int    `json:"index"`
	Size           int    `json:"size"`
	Timestamp      string `json:"timestamp"`
	Path           string `json:"path,omitempty"`
	Filename       string `json:"filename,omitempty"`
	ImageBase64    string `json:"image_base64,omitempty"`
	SaveError      string `json:"save_error,omitempty"`
	EnhancedPrompt string `json:"enhanced_prompt,omitempty"`
}

// GenerateImageResponse is the success envelope of the generate_image
// operation.
type GenerateImageResponse struct {
	Success         bool             `json:"success"`
	Model           string           `json:"model"`
	Prompt          string           `json:"prompt"`
	ImagesGenerated int              `json:"images_generated"`
	Images          []GeneratedImage `json:"images"`
	Metadata        map[string]any   `json:"metadata"`
}

// GenerateImage validates the input, resolves configuration defaults,
// invokes the orchestration service and persists or inlines every result.
func (t *Toolbox) GenerateImage(ctx context.Context, in GenerateImageInput) (*GenerateImageResponse, error) {
	if err := core.ValidatePrompt(in.Prompt); err != nil {
		return nil, err
	}
	if in.Model != "" {
		if err := core.ValidateModel(in.Model); err != nil {
			return nil, err
		}
	}

	numberOfImages := in.NumberOfImages
	if numberOfImages == 0 {
		numberOfImages = 1
	}
	if err := core.ValidateNumberOfImages(numberOfImages); err != nil {
		return nil, err
	}

	aspectRatio := in.AspectRatio
	if aspectRatio == "" {
		aspectRatio = t.cfg.DefaultAspectRatio
	}
	if err := core.ValidateAspectRatio(aspectRatio); err != nil {
		return nil, err
	}

	outputFormat := strings.ToLower(in.OutputFormat)
	if outputFormat == "" {
		outputFormat = t.cfg.DefaultOutputFormat
	}
	if err := core.ValidateImageFormat(outputFormat); err != nil {
		return nil, err
	}

	if err := core.ValidateNegativePrompt(in.NegativePrompt); err != nil {
		return nil, err
	}

	personGeneration := in.PersonGeneration
	if personGeneration == "" {
		personGeneration = "allow_adult"
	}
	if err := core.ValidatePersonGeneration(personGeneration); err != nil {
		return nil, err
	}

	if err := core.ValidateSeed(in.Seed); err != nil {
		return nil, err
	}
	if in.Seed != nil {
		// Accepted but ignored upstream; a known provider limitation.
		t.logger.Warn().Int64("seed", *in.Seed).
			Msg("tools: the seed parameter is not currently supported by the Imagen API and will be ignored")
	}

	model := in.Model
	if model == "" {
		model = t.cfg.DefaultGeminiModel
	}

	params := service.GenerateParams{
		Model:                        model,
		EnhancePrompt:                boolOrDefault(in.EnhancePrompt, true),
		AspectRatio:                  aspectRatio,
		MaintainCharacterConsistency: in.MaintainCharacterConsistency,
		BlendImages:                  in.BlendImages,
		UseWorldKnowledge:            in.UseWorldKnowledge,
	}

	if in.InputImagePath != "" {
		if data, err := os.ReadFile(in.InputImagePath); err == nil {
			params.InputImage = base64.StdEncoding.EncodeToString(data)
		} else {
			// A missing input image degrades to text-only generation.
			t.logger.Warn().Str("path", in.InputImagePath).Msg("tools: input image not found")
		}
	}

	if catalog.ResolveFamily(model) == catalog.FamilyImagen {
		params.NumberOfImages = numberOfImages
		params.OutputMimeType = catalog.ImageFormats[outputFormat]
		params.PersonGeneration = personGeneration
		params.NegativePrompt = in.NegativePrompt
		params.Seed = in.Seed
	}

	svc := t.newGenerator()
	defer svc.Close()

	results, err := svc.Generate(ctx, in.Prompt, params)
	if err != nil {
		return nil, err
	}

	resp := &GenerateImageResponse{
		Success:         true,
		Model:           model,
		Prompt:          in.Prompt,
		ImagesGenerated: len(results),
		Images:          make([]GeneratedImage, 0, len(results)),
		Metadata: map[string]any{
			"enhance_prompt": boolOrDefault(in.EnhancePrompt, true),
			"aspect_ratio":   aspectRatio,
		},
	}

	saveToDisk := boolOrDefault(in.SaveToDisk, true)
	for i := range results {
		resp.Images = append(resp.Images, t.materialize(&results[i], outputFormat, saveToDisk))
	}
	return resp, nil
}

// materialize persists one result to disk or inlines it as base64. A write
// failure is captured per image rather than failing the whole response.
func (t *Toolbox) materialize(result *service.ImageResult, outputFormat string, saveToDisk bool) GeneratedImage {
	img := GeneratedImage{
		Index:     result.Index,
		Size:      result.Size(),
		Timestamp: result.Timestamp.Format("2006-01-02T15:04:05"),
	}
	if enhanced, ok := result.Metadata["enhanced_prompt"].(string); ok {
		img.EnhancedPrompt = enhanced
	}

	if !saveToDisk {
		img.ImageBase64 = result.ImageData
		return img
	}

	data, err := result.Bytes()
	if err != nil {
		img.SaveError = err.Error()
		return img
	}
	filename := result.Filename(outputFormat)
	path, err := t.store.Write(filename, data)
	if err != nil {
		t.logger.Error().Err(err).Str("filename", filename).Msg("tools: failed to save image")
		img.SaveError = err.Error()
		return img
	}
	t.logger.Info().Str("path", path).Msg("tools: saved image")
	img.Path = path
	img.Filename = filename
	return img
}

func boolOrDefault(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
