package core

import (
	"encoding/base64"
	"os"
	"regexp"
	"strings"

	"imageserver/internal/catalog"
)

// ValidatePrompt checks prompt presence and length.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return Validationf("Prompt cannot be empty")
	}
	if len(prompt) > catalog.MaxPromptLength {
		return Validationf("Prompt too long: %d characters (max %d)", len(prompt), catalog.MaxPromptLength)
	}
	return nil
}

// ValidateNegativePrompt checks the negative prompt length when present.
func ValidateNegativePrompt(negativePrompt string) error {
	if negativePrompt != "" && len(negativePrompt) > catalog.MaxNegativePromptLength {
		return Validationf("Negative prompt too long: %d characters (max %d)",
			len(negativePrompt), catalog.MaxNegativePromptLength)
	}
	return nil
}

// ValidateModel checks that the model identifier is registered.
func ValidateModel(model string) error {
	if !catalog.KnownModel(model) {
		return Validationf("Invalid model '%s'. Available models: %s",
			model, strings.Join(catalog.ModelKeys(), ", "))
	}
	return nil
}

// ValidateAspectRatio checks membership in the fixed ratio list.
func ValidateAspectRatio(aspectRatio string) error {
	for _, r := range catalog.AspectRatios {
		if aspectRatio == r {
			return nil
		}
	}
	return Validationf("Invalid aspect ratio '%s'. Available: %s",
		aspectRatio, strings.Join(catalog.AspectRatios, ", "))
}

// ValidateNumberOfImages checks the per-request image count.
func ValidateNumberOfImages(num int) error {
	if num < 1 {
		return Validationf("Number of images must be at least 1, got %d", num)
	}
	if num > catalog.MaxImagesPerRequest {
		return Validationf("Number of images exceeds maximum: %d > %d", num, catalog.MaxImagesPerRequest)
	}
	return nil
}

// ValidateImageFormat checks that the format key maps to a registered MIME type.
func ValidateImageFormat(format string) error {
	if _, ok := catalog.ImageFormats[strings.ToLower(format)]; !ok {
		return Validationf("Invalid image format '%s'. Available: %s",
			format, strings.Join(formatKeys(), ", "))
	}
	return nil
}

func formatKeys() []string {
	// Fixed order keeps validation messages deterministic.
	return []string{"jpeg", "jpg", "png", "webp"}
}

// ValidatePersonGeneration checks the Imagen person generation policy.
func ValidatePersonGeneration(policy string) error {
	for _, opt := range catalog.PersonGenerationOptions {
		if policy == opt {
			return nil
		}
	}
	return Validationf("Invalid person_generation '%s'. Available: %s",
		policy, strings.Join(catalog.PersonGenerationOptions, ", "))
}

// ValidateSeed checks an optional seed value. A nil seed is valid.
func ValidateSeed(seed *int64) error {
	if seed != nil && *seed < 0 {
		return Validationf("Seed must be non-negative, got %d", *seed)
	}
	return nil
}

// ValidateFilePath checks that the path resolves to an existing regular file.
func ValidateFilePath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return Validationf("File does not exist: %s", path)
	}
	if !info.Mode().IsRegular() {
		return Validationf("Path is not a file: %s", path)
	}
	return nil
}

// ValidateBase64Image checks that the payload decodes to non-empty bytes.
func ValidateBase64Image(data string) error {
	if data == "" {
		return Validationf("Base64 image data cannot be empty")
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return Validationf("Invalid base64 image data: %v", err)
	}
	if len(decoded) == 0 {
		return Validationf("Decoded image data is empty")
	}
	return nil
}

// ValidatePromptsList checks a batch prompt list, embedding the originating
// index in any per-prompt failure.
func ValidatePromptsList(prompts []string) error {
	if len(prompts) == 0 {
		return Validationf("Prompts list cannot be empty")
	}
	for i, prompt := range prompts {
		if err := ValidatePrompt(prompt); err != nil {
			return Validationf("Invalid prompt at index %d: %v", i, err)
		}
	}
	return nil
}

// ValidateBatchSize checks the batch width against the configured ceiling.
func ValidateBatchSize(size, maxSize int) error {
	if size < 1 {
		return Validationf("Batch size must be at least 1, got %d", size)
	}
	if size > maxSize {
		return Validationf("Batch size exceeds maximum: %d > %d", size, maxSize)
	}
	return nil
}

const fallbackBasename = "image"

var (
	unsafeChars    = regexp.MustCompile(`[^a-zA-Z0-9-]`)
	repeatedUnders = regexp.MustCompile(`_+`)
)

// SanitizeFilename replaces every character outside [A-Za-z0-9-] with an
// underscore, collapses runs of underscores, trims them from both ends and
// substitutes a fixed fallback when nothing survives. Idempotent.
func SanitizeFilename(name string) string {
	safe := unsafeChars.ReplaceAllString(name, "_")
	safe = repeatedUnders.ReplaceAllString(safe, "_")
	safe = strings.Trim(safe, "_")
	if safe == "" {
		return fallbackBasename
	}
	return safe
}
