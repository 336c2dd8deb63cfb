// Package catalog holds the fixed registries shared by validation, routing
// and the read-only resources: known models, their provider family, aspect
// ratios, output formats and generation limits.
package catalog

import "sort"

// Family identifies which upstream protocol serves a model. Exactly one
// family handles a given model identifier.
type Family int

const (
	FamilyUnknown Family = iota
	// FamilyGemini models go through the generateContent API.
	FamilyGemini
	// FamilyImagen models go through the predict API.
	FamilyImagen
)

func (f Family) String() string {
	switch f {
	case FamilyGemini:
		return "gemini"
	case FamilyImagen:
		return "imagen"
	default:
		return "unknown"
	}
}

// API endpoints.
const (
	GeminiAPIBase = "https://generativelanguage.googleapis.com/v1beta"
	ImagenAPIBase = "https://generativelanguage.googleapis.com/v1beta"
)

// GeminiModels maps the public model key to the upstream model identifier
// for the generateContent API.
var GeminiModels = map[string]string{
	"gemini-2.5-flash-image": "gemini-2.5-flash-image",
	// Used for prompt enhancement, not image generation.
	"gemini-flash-latest": "gemini-flash-latest",
}

// ImagenModels maps the public model key to the upstream model identifier
// for the predict API.
var ImagenModels = map[string]string{
	"imagen-4":       "models/imagen-4.0-generate-001",
	"imagen-4-fast":  "models/imagen-4.0-fast-generate-001",
	"imagen-4-ultra": "models/imagen-4.0-ultra-generate-001",
}

// Default model identifiers.
const (
	DefaultGeminiModel      = "gemini-2.5-flash-image"
	DefaultImagenModel      = "imagen-4-ultra"
	DefaultEnhancementModel = "gemini-flash-latest"
)

// AspectRatios lists every aspect ratio accepted by either family.
var AspectRatios = []string{
	"1:1",
	"2:3",
	"3:2",
	"3:4",
	"4:3",
	"4:5",
	"5:4",
	"9:16",
	"16:9",
	"21:9",
}

// ImageFormats maps accepted output format keys to their MIME type.
var ImageFormats = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"webp": "image/webp",
}

// PersonGenerationOptions lists the Imagen person generation policies.
var PersonGenerationOptions = []string{
	"dont_allow",
	"allow_adult",
	"allow_all",
}

// Generation limits.
const (
	MaxImagesPerRequest     = 4
	MaxBatchSize            = 8
	MaxPromptLength         = 8192
	MaxNegativePromptLength = 1024
)

// ResolveFamily classifies a model identifier into exactly one provider
// family. FamilyUnknown is returned for identifiers outside both registries;
// callers must treat that as a hard error before any network call.
func ResolveFamily(model string) Family {
	if _, ok := GeminiModels[model]; ok {
		return FamilyGemini
	}
	if _, ok := ImagenModels[model]; ok {
		return FamilyImagen
	}
	return FamilyUnknown
}

// KnownModel reports whether the identifier is in either registry.
func KnownModel(model string) bool {
	return ResolveFamily(model) != FamilyUnknown
}

// ModelKeys returns every registered model key in deterministic order:
// Gemini models first, then Imagen models, each alphabetically.
func ModelKeys() []string {
	keys := make([]string, 0, len(GeminiModels)+len(ImagenModels))
	keys = append(keys, sortedKeys(GeminiModels)...)
	keys = append(keys, sortedKeys(ImagenModels)...)
	return keys
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UpstreamID resolves the public model key to the upstream identifier,
// falling back to the key itself for forward compatibility.
func UpstreamID(model string) string {
	if id, ok := GeminiModels[model]; ok {
		return id
	}
	if id, ok := ImagenModels[model]; ok {
		return id
	}
	return model
}
