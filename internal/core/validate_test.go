package core

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"imageserver/internal/catalog"
)

func TestValidatePrompt(t *testing.T) {
	if err := ValidatePrompt("a red fox in snow"); err != nil {
		t.Fatalf("valid prompt rejected: %v", err)
	}
	if err := ValidatePrompt(""); err == nil {
		t.Fatalf("empty prompt accepted")
	}
	if err := ValidatePrompt("   "); err == nil {
		t.Fatalf("whitespace-only prompt accepted")
	}
	if err := ValidatePrompt(strings.Repeat("x", catalog.MaxPromptLength)); err != nil {
		t.Fatalf("prompt at max length rejected: %v", err)
	}
	err := ValidatePrompt(strings.Repeat("x", catalog.MaxPromptLength+1))
	if err == nil {
		t.Fatalf("over-length prompt accepted")
	}
	if KindOf(err) != KindValidation {
		t.Fatalf("kind = %v, want KindValidation", KindOf(err))
	}
}

func TestValidateNegativePrompt(t *testing.T) {
	if err := ValidateNegativePrompt(""); err != nil {
		t.Fatalf("empty negative prompt rejected: %v", err)
	}
	if err := ValidateNegativePrompt(strings.Repeat("x", catalog.MaxNegativePromptLength)); err != nil {
		t.Fatalf("negative prompt at max length rejected: %v", err)
	}
	if err := ValidateNegativePrompt(strings.Repeat("x", catalog.MaxNegativePromptLength+1)); err == nil {
		t.Fatalf("over-length negative prompt accepted")
	}
}

func TestValidateModel(t *testing.T) {
	for _, model := range catalog.ModelKeys() {
		if err := ValidateModel(model); err != nil {
			t.Fatalf("registered model %q rejected: %v", model, err)
		}
	}
	err := ValidateModel("dall-e-3")
	if err == nil {
		t.Fatalf("unknown model accepted")
	}
	// The message enumerates every available model.
	for _, model := range catalog.ModelKeys() {
		if !strings.Contains(err.Error(), model) {
			t.Fatalf("error %q does not list model %q", err.Error(), model)
		}
	}
}

func TestValidateAspectRatio(t *testing.T) {
	for _, ratio := range catalog.AspectRatios {
		if err := ValidateAspectRatio(ratio); err != nil {
			t.Fatalf("ratio %q rejected: %v", ratio, err)
		}
	}
	if err := ValidateAspectRatio("32:9"); err == nil {
		t.Fatalf("unsupported ratio accepted")
	}
	if err := ValidateAspectRatio(""); err == nil {
		t.Fatalf("empty ratio accepted")
	}
}

func TestValidateNumberOfImagesBounds(t *testing.T) {
	if err := ValidateNumberOfImages(1); err != nil {
		t.Fatalf("count 1 rejected: %v", err)
	}
	if err := ValidateNumberOfImages(catalog.MaxImagesPerRequest); err != nil {
		t.Fatalf("count at max rejected: %v", err)
	}
	if err := ValidateNumberOfImages(0); err == nil {
		t.Fatalf("count 0 accepted")
	}
	if err := ValidateNumberOfImages(catalog.MaxImagesPerRequest + 1); err == nil {
		t.Fatalf("count above max accepted")
	}
}

func TestValidateImageFormat(t *testing.T) {
	for _, format := range []string{"png", "jpeg", "jpg", "webp", "PNG", "Jpeg"} {
		if err := ValidateImageFormat(format); err != nil {
			t.Fatalf("format %q rejected: %v", format, err)
		}
	}
	err := ValidateImageFormat("gif")
	if err == nil {
		t.Fatalf("gif accepted")
	}
	if !strings.Contains(err.Error(), "jpeg, jpg, png, webp") {
		t.Fatalf("error %q does not list formats in fixed order", err.Error())
	}
}

func TestValidatePersonGeneration(t *testing.T) {
	for _, policy := range catalog.PersonGenerationOptions {
		if err := ValidatePersonGeneration(policy); err != nil {
			t.Fatalf("policy %q rejected: %v", policy, err)
		}
	}
	if err := ValidatePersonGeneration("allow_minors"); err == nil {
		t.Fatalf("unknown policy accepted")
	}
}

func TestValidateSeed(t *testing.T) {
	if err := ValidateSeed(nil); err != nil {
		t.Fatalf("nil seed rejected: %v", err)
	}
	zero, negative := int64(0), int64(-1)
	if err := ValidateSeed(&zero); err != nil {
		t.Fatalf("zero seed rejected: %v", err)
	}
	if err := ValidateSeed(&negative); err == nil {
		t.Fatalf("negative seed accepted")
	}
}

func TestValidateFilePath(t *testing.T) {
	dir := t.TempDir()
	if err := ValidateFilePath(dir); err == nil {
		t.Fatalf("directory accepted as file")
	}
	if err := ValidateFilePath(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("missing file accepted")
	}
	path := filepath.Join(dir, "present.png")
	if err := os.WriteFile(path, []byte{0x89}, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := ValidateFilePath(path); err != nil {
		t.Fatalf("existing file rejected: %v", err)
	}
}

func TestValidateBase64Image(t *testing.T) {
	if err := ValidateBase64Image(""); err == nil {
		t.Fatalf("empty payload accepted")
	}
	if err := ValidateBase64Image("not base64!!"); err == nil {
		t.Fatalf("invalid base64 accepted")
	}
	if err := ValidateBase64Image(base64.StdEncoding.EncodeToString(nil)); err == nil {
		t.Fatalf("empty decoded payload accepted")
	}
	if err := ValidateBase64Image(base64.StdEncoding.EncodeToString([]byte{1, 2, 3})); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestValidatePromptsList(t *testing.T) {
	if err := ValidatePromptsList(nil); err == nil {
		t.Fatalf("empty list accepted")
	}
	if err := ValidatePromptsList([]string{"a", "b"}); err != nil {
		t.Fatalf("valid list rejected: %v", err)
	}
	err := ValidatePromptsList([]string{"a", "", "c"})
	if err == nil {
		t.Fatalf("list with empty prompt accepted")
	}
	if !strings.Contains(err.Error(), "index 1") {
		t.Fatalf("error %q does not name the failing index", err.Error())
	}
}

func TestValidateBatchSize(t *testing.T) {
	if err := ValidateBatchSize(1, catalog.MaxBatchSize); err != nil {
		t.Fatalf("size 1 rejected: %v", err)
	}
	if err := ValidateBatchSize(catalog.MaxBatchSize, catalog.MaxBatchSize); err != nil {
		t.Fatalf("size at max rejected: %v", err)
	}
	if err := ValidateBatchSize(0, catalog.MaxBatchSize); err == nil {
		t.Fatalf("size 0 accepted")
	}
	if err := ValidateBatchSize(catalog.MaxBatchSize+1, catalog.MaxBatchSize); err == nil {
		t.Fatalf("size above max accepted")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"a red fox in snow", "a_red_fox_in_snow"},
		{"hello, world!", "hello_world"},
		{"__trimmed__", "trimmed"},
		{"...", "image"},
		{"", "image"},
		{"keep-dashes-123", "keep-dashes-123"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFilenameIdempotent(t *testing.T) {
	for _, in := range []string{"a red fox", "!!!", "already_safe", "x  y\tz"} {
		once := SanitizeFilename(in)
		if twice := SanitizeFilename(once); twice != once {
			t.Fatalf("SanitizeFilename not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}
