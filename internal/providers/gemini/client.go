// Package gemini wraps the generateContent API used by the Gemini image
// family. It serves both image generation (including edits with an inline
// reference image) and the text calls behind prompt enhancement.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"imageserver/internal/catalog"
	"imageserver/internal/core"
	"imageserver/internal/infra"
)

// Options configures the Gemini client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the generateContent endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// ImageRequest captures the inputs for one image generation call.
type ImageRequest struct {
	Prompt      string
	Model       string
	InputImage  string // base64, optional reference image for editing
	AspectRatio string
}

// TextRequest captures the inputs for one text generation call.
type TextRequest struct {
	Prompt            string
	Model             string
	SystemInstruction string
}

// ImageResponse is the normalized result: every inline image payload from
// the response in response order, still base64 encoded.
type ImageResponse struct {
	Images []string
	Model  string
	Raw    json.RawMessage
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"system_instruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
	// The API has used both spellings historically; requests send the
	// snake_case form, responses may carry either.
	InlineData      *inlineData `json:"inline_data,omitempty"`
	InlineDataCamel *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type,omitempty"`
	Data     string `json:"data,omitempty"`
}

type generationConfig struct {
	ResponseModalities []string     `json:"responseModalities,omitempty"`
	ImageConfig        *imageConfig `json:"imageConfig,omitempty"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// NewClient constructs a Gemini client with sane defaults and injected
// dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = catalog.GeminiAPIBase
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:     strings.TrimSpace(opts.APIKey),
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

// GenerateImage sends one generateContent request and returns every inline
// image payload found in the response. A 2xx response without any image data
// is an APIError, not a success.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	model := req.Model
	if model == "" {
		model = catalog.DefaultGeminiModel
	}

	var parts []part
	if req.InputImage != "" {
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: "image/png",
			Data:     req.InputImage,
		}})
	}
	promptText := req.Prompt
	if req.AspectRatio != "" {
		promptText = req.Prompt + ". Aspect ratio: " + req.AspectRatio
	}
	parts = append(parts, part{Text: promptText})

	cfg := &generationConfig{ResponseModalities: []string{"Image"}}
	if req.AspectRatio != "" {
		cfg.ImageConfig = &imageConfig{AspectRatio: req.AspectRatio}
	}

	payload := generateRequest{
		Contents:         []content{{Parts: parts}},
		GenerationConfig: cfg,
	}

	raw, err := c.invoke(ctx, model, payload)
	if err != nil {
		return nil, err
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, core.APIWrap("Gemini API request failed", err)
	}
	images := extractImages(decoded)
	if len(images) == 0 {
		c.logger.Error().Str("model", model).Msg("gemini: response carried no inline image data")
		return nil, core.APIWrap("No image data found in Gemini API response", nil)
	}

	c.logger.Debug().Str("model", model).Int("images", len(images)).Msg("gemini: generated images")
	return &ImageResponse{Images: images, Model: model, Raw: raw}, nil
}

// GenerateText sends a text-only generateContent request and returns the
// concatenated text parts of the first candidate.
func (c *Client) GenerateText(ctx context.Context, req TextRequest) (string, error) {
	model := req.Model
	if model == "" {
		model = catalog.DefaultEnhancementModel
	}

	payload := generateRequest{
		Contents: []content{{Parts: []part{{Text: req.Prompt}}}},
	}
	if req.SystemInstruction != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: req.SystemInstruction}}}
	}

	raw, err := c.invoke(ctx, model, payload)
	if err != nil {
		return "", err
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", core.APIWrap("Gemini text generation failed", err)
	}
	return extractText(decoded), nil
}

func (c *Client) invoke(ctx context.Context, model string, payload generateRequest) (json.RawMessage, error) {
	endpoint := c.baseURL + "/models/" + url.PathEscape(catalog.UpstreamID(model)) + ":generateContent"
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, core.APIWrap("Gemini API request failed", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, core.APIWrap("Gemini API request failed", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, core.APIWrap("Gemini API request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.APIWrap("Gemini API request failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().Int("status", resp.StatusCode).Str("model", model).Msg("gemini: upstream request failed")
		return nil, core.MapUpstreamStatus(resp.StatusCode, string(raw))
	}
	return raw, nil
}

// Close releases the underlying transport. Safe to call once the owning
// service is done with the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

func extractImages(resp generateResponse) []string {
	var images []string
	for _, candidate := range resp.Candidates {
		for _, p := range candidate.Content.Parts {
			data := p.InlineData
			if data == nil {
				data = p.InlineDataCamel
			}
			if data != nil && data.Data != "" {
				images = append(images, data.Data)
			}
		}
	}
	return images
}

func extractText(resp generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}
