package catalog

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ModelInfo describes one model in the read-only catalog resource.
type ModelInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Default     bool     `json:"default,omitempty"`
}

// FamilyCatalog groups the catalog entries of one provider family.
type FamilyCatalog struct {
	Label  string               `json:"label"`
	Models map[string]ModelInfo `json:"models"`
}

var (
	catalogOnce sync.Once
	catalog     map[string]FamilyCatalog
)

// Models returns the static model catalog. The content is fixed, so it is
// built once and shared.
func Models() map[string]FamilyCatalog {
	catalogOnce.Do(func() {
		label := cases.Title(language.English)
		catalog = map[string]FamilyCatalog{
			FamilyGemini.String(): {
				Label: label.String(FamilyGemini.String()),
				Models: map[string]ModelInfo{
					"gemini-2.5-flash-image": {
						Name:        "Gemini 2.5 Flash Image",
						Description: "Advanced image generation with editing and prompt enhancement",
						Features: []string{
							"Prompt enhancement",
							"Image editing",
							"Character consistency",
							"Multi-image blending",
							"World knowledge integration",
						},
						Default: true,
					},
				},
			},
			FamilyImagen.String(): {
				Label: label.String(FamilyImagen.String()),
				Models: map[string]ModelInfo{
					"imagen-4": {
						Name:        "Imagen 4",
						Description: "High-quality image generation with improved text rendering",
						Features: []string{
							"Enhanced quality",
							"Better text rendering",
							"Negative prompts",
							"Seed-based reproducibility",
							"Person generation controls",
							"Advanced controls",
						},
					},
					"imagen-4-fast": {
						Name:        "Imagen 4 Fast",
						Description: "Optimized for faster generation while maintaining good quality",
						Features: []string{
							"Faster generation speed",
							"Good quality output",
							"Negative prompts",
							"Seed-based reproducibility",
							"Person generation controls",
							"Cost-effective",
						},
					},
					"imagen-4-ultra": {
						Name:        "Imagen 4 Ultra",
						Description: "Highest quality with best prompt adherence",
						Features: []string{
							"Highest quality",
							"Best prompt adherence",
							"Professional results",
							"Enhanced text rendering",
							"Advanced controls",
						},
					},
				},
			},
		}
	})
	return catalog
}
