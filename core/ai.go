package core

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

// ErrEmptyCompletion is returned when a language model answers with no text.
var ErrEmptyCompletion = errors.New("language model returned an empty response")

type (
	// AIProvider is any language model backend able to complete a prompt.
	AIProvider interface {
		ID() string
		Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	}

	CompletionRequest struct {
		System      string  `json:"system"`
		Prompt      string  `json:"prompt"`
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"top_p"`
	}

	CompletionResponse struct {
		Text  string `json:"text"`
		Model string `json:"model"`
	}
)

// WithDefaults fills unset sampling parameters from conf.
func (req CompletionRequest) WithDefaults(conf AIConfig) CompletionRequest {
	if req.MaxTokens == 0 {
		req.MaxTokens = conf.MaxTokens
	}
	if req.Temperature == 0 {
		req.Temperature = conf.Temperature
	}
	if req.TopP == 0 {
		req.TopP = conf.TopP
	}
	return req
}

// CompleteText runs a completion with conf's sampling defaults and returns the trimmed reply.
// A blank reply is reported as ErrEmptyCompletion.
func CompleteText(ctx context.Context, p AIProvider, conf AIConfig, system, prompt string) (string, error) {
	res, err := p.Complete(ctx, CompletionRequest{System: system, Prompt: prompt}.WithDefaults(conf))
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(res.Text)
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
