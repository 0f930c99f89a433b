// Package llm provides the text-completion collaborator: a client for
// a llama.cpp server running on the local machine.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/sandevgo/commandecho/internal/config"
	"github.com/sandevgo/commandecho/internal/core"
)

const completionTimeout = 60 * time.Second

type Local struct {
	baseClient
}

// NewLocal verifies the configured model file exists before anything
// else: serving without a model is a configuration error, caught at
// startup rather than on the first chat turn.
func NewLocal(cfg *config.LLMConfig) (*Local, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("model file not found at %s: %w", cfg.ModelPath, err)
	}

	return &Local{
		baseClient: newBaseClient(cfg.BaseURL, completionTimeout),
	}, nil
}

func (l *Local) Complete(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	payload := map[string]any{
		"prompt":      prompt,
		"max_tokens":  maxTokens,
		"temperature": temperature,
		"stop":        []string{"User:", "\n\n"},
	}

	resp, err := l.doRequest(ctx, http.MethodPost, "/v1/completions", payload)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	return parseCompletion(resp)
}

func parseCompletion(resp *http.Response) (string, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: http %d: %s", core.ErrModelUnavailable, resp.StatusCode, string(data))
	}

	var result struct {
		Choices []struct {
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("empty choices: %s", string(data))
	}
	return result.Choices[0].Text, nil
}
