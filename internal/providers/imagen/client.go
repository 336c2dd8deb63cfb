// Package imagen wraps the predict API used by the Imagen model family.
package imagen

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

// Options configures the Imagen client.
type Options struct {
	APIKey         string
	BaseURL        string
	HTTPClient     *http.Client
	Logger         *infra.Logger
	RequestTimeout time.Duration
}

// Client performs HTTP calls to the predict endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *infra.Logger
}

// ImageRequest captures the inputs for one predict call.
type ImageRequest struct {
	Prompt           string
	Model            string
	NumberOfImages   int
	AspectRatio      string
	OutputMimeType   string
	PersonGeneration string
	NegativePrompt   string
	Seed             *int64
}

// ImageResponse is the normalized result: every base64 prediction payload
// in response order.
type ImageResponse struct {
	Images []string
	Model  string
	Raw    json.RawMessage
}

type predictRequest struct {
	Instances  []instance `json:"instances"`
	Parameters parameters `json:"parameters"`
}

type instance struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
}

type parameters struct {
	OutputMimeType   string `json:"outputMimeType,omitempty"`
	SampleCount      int    `json:"sampleCount,omitempty"`
	PersonGeneration string `json:"personGeneration,omitempty"`
	AspectRatio      string `json:"aspectRatio,omitempty"`
	Seed             *int64 `json:"seed,omitempty"`
}

type predictResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
	} `json:"predictions"`
}

// NewClient constructs an Imagen client with sane defaults and injected
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
		baseURL = catalog.ImagenAPIBase
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

// GenerateImage sends one predict request and returns every base64 payload
// from the predictions array. A 2xx response without predictions is an
// APIError, not a success.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*ImageResponse, error) {
	model := req.Model
	if model == "" {
		model = catalog.DefaultImagenModel
	}
	sampleCount := req.NumberOfImages
	if sampleCount < 1 {
		sampleCount = 1
	}
	mimeType := req.OutputMimeType
	if mimeType == "" {
		mimeType = "image/png"
	}
	personGeneration := req.PersonGeneration
	if personGeneration == "" {
		personGeneration = "allow_adult"
	}
	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	payload := predictRequest{
		Instances: []instance{{
			Prompt:         req.Prompt,
			NegativePrompt: req.NegativePrompt,
		}},
		Parameters: parameters{
			OutputMimeType:   mimeType,
			SampleCount:      sampleCount,
			PersonGeneration: personGeneration,
			AspectRatio:      aspectRatio,
			Seed:             req.Seed,
		},
	}

	endpoint := c.baseURL + "/" + catalog.UpstreamID(model) + ":predict?key=" + url.QueryEscape(c.apiKey)
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, core.APIWrap("Imagen API request failed", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, core.APIWrap("Imagen API request failed", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, core.APIWrap("Imagen API request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.APIWrap("Imagen API request failed", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error().Int("status", resp.StatusCode).Str("model", model).Msg("imagen: upstream request failed")
		return nil, core.MapUpstreamStatus(resp.StatusCode, string(raw))
	}

	var decoded predictResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, core.APIWrap("Imagen API request failed", err)
	}
	var images []string
	for _, prediction := range decoded.Predictions {
		if prediction.BytesBase64Encoded != "" {
			images = append(images, prediction.BytesBase64Encoded)
		}
	}
	if len(images) == 0 {
		c.logger.Error().Str("model", model).Msg("imagen: response carried no predictions")
		return nil, core.APIWrap("No image data found in Imagen API response", nil)
	}

	c.logger.Debug().Str("model", model).Int("images", len(images)).Msg("imagen: generated images")
	return &ImageResponse{Images: images, Model: model, Raw: raw}, nil
}

// Close releases the underlying transport.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
