package tools

import (
	"encoding/base64"

	"imageserver/internal/core"
)

// GetImageResponse returns a previously generated image by filename.
type GetImageResponse struct {
	Success     bool   `json:"success"`
	Filename    string `json:"filename"`
	ImageBase64 string `json:"image_base64"`
	Size        int    `json:"size"`
}

// GetImage loads one image from the output directory and returns it inline
// as base64. The filename must not escape the output directory.
func (t *Toolbox) GetImage(filename string) (*GetImageResponse, error) {
	if filename == "" {
		return nil, core.Validationf("Filename cannot be empty")
	}
	data, err := t.store.Read(filename)
	if err != nil {
		return nil, core.ImageProcessing("Image not found: "+filename, err)
	}
	return &GetImageResponse{
		Success:     true,
		Filename:    filename,
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		Size:        len(data),
	}, nil
}
