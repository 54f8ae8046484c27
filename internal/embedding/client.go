package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/facegate/facegate/internal/vectormath"
)

const (
	defaultModelURL = "http://localhost:8000"
	// ModelDim is the embedding length produced by the model in use.
	ModelDim = 512
)

// Client computes face embeddings by posting the normalized pixel tensor to
// the inference server.
type Client struct {
	baseURL string
	dim     int
	client  *http.Client
}

// NewClient creates an inference client expecting dim-length embeddings.
// An empty baseURL or non-positive dim falls back to the local defaults.
func NewClient(baseURL string, dim int) *Client {
	if baseURL == "" {
		baseURL = defaultModelURL
	}
	if dim <= 0 {
		dim = ModelDim
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		dim:     dim,
		client:  &http.Client{},
	}
}

// inferRequest is the JSON body of an inference call. Shape is NHWC.
type inferRequest struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// inferResponse is the inference server's reply.
type inferResponse struct {
	Dim       int       `json:"dim"`
	Embedding []float32 `json:"embedding"`
}

// Infer sends the normalized size x size x 3 tensor to the model and returns
// the L2-normalized embedding vector.
func (c *Client) Infer(ctx context.Context, tensor []float32, size int) ([]float32, error) {
	if len(tensor) != size*size*3 {
		return nil, fmt.Errorf("tensor length %d does not match shape 1x%dx%dx3", len(tensor), size, size)
	}

	body, err := json.Marshal(inferRequest{
		Shape: []int{1, size, size, 3},
		Data:  tensor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/embed/face", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var inferResp inferResponse
	if err := json.Unmarshal(respBody, &inferResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(inferResp.Embedding) == 0 {
		return nil, errors.New("empty embedding returned")
	}
	if len(inferResp.Embedding) != c.dim {
		return nil, fmt.Errorf("embedding has %d values, model is configured for %d", len(inferResp.Embedding), c.dim)
	}

	// The model's raw output is not guaranteed to be unit length.
	normalized, err := vectormath.NormalizeL2(inferResp.Embedding)
	if err != nil {
		return nil, fmt.Errorf("normalizing embedding: %w", err)
	}
	return normalized, nil
}
