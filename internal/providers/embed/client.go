// Package embed provides the embedding collaborator: a client for a
// local embedding server exposing the OpenAI-compatible endpoint.
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sandevgo/commandecho/internal/config"
	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/pkg/retry"
)

const embedTimeout = 15 * time.Second

type Client struct {
	client  *http.Client
	baseURL string
	retrier *retry.Retrier
}

func NewClient(cfg *config.MemoryConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: embedTimeout,
		},
		baseURL: cfg.EmbedBaseURL,
		retrier: retry.NewDefaultRetrier(),
	}
}

// Embed retries transient failures; a local embedding server hiccups
// when it is mid-load. Exhausted retries wrap core.ErrEmbedding so
// callers can degrade instead of failing the turn.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	var vec []float32

	err := c.retrier.Do(ctx, func() error {
		var opErr error
		vec, opErr = c.embedOnce(ctx, text)
		return opErr
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrEmbedding, err)
	}
	return vec, nil
}

func (c *Client) embedOnce(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(map[string]any{"input": text})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(result.Data) == 0 || len(result.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding in response")
	}
	return result.Data[0].Embedding, nil
}
