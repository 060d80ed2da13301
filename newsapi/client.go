package newsapi

import (
	"context"
	"net/http"
	"time"

	"newsdesk/config"
)

// Source produces a decoded upstream response for one batch request
type Source interface {
	Fetch(ctx context.Context, p Params) (Response, error)
}

// GeneratorClient talks to the remote article generator API
type GeneratorClient struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewGeneratorClient creates a generator client. An empty baseURL or apiKey
// uses the public endpoint and its key.
func NewGeneratorClient(baseURL, apiKey string, timeout time.Duration) *GeneratorClient {
	if baseURL == "" {
		baseURL = config.DefaultAPIURL
	}
	if apiKey == "" {
		apiKey = config.DefaultAPIKey
	}
	if timeout <= 0 {
		timeout = config.DefaultAPITimeout
	}
	return &GeneratorClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// generateRequest is the POST body understood by the generator
type generateRequest struct {
	Category   string `json:"category"`
	Count      int    `json:"count"`
	MinLength  int    `json:"min_length"`
	MaxLength  int    `json:"max_length"`
	ImgWidth   int    `json:"img_width"`
	ImgHeight  int    `json:"img_height"`
	ImgQuality int    `json:"img_quality"`
}

// Fetch issues a single POST to the generator, bounded by the client timeout
func (c *GeneratorClient) Fetch(ctx context.Context, p Params) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := generateRequest{
		Category:   string(p.Category),
		Count:      p.Count,
		MinLength:  p.MinLength,
		MaxLength:  p.MaxLength,
		ImgWidth:   p.ImgWidth,
		ImgHeight:  p.ImgHeight,
		ImgQuality: p.ImgQuality,
	}

	body, err := c.doJSONRequest(ctx, http.MethodPost, "/", payload)
	if err != nil {
		return Response{}, err
	}
	return DecodeResponse(body)
}
