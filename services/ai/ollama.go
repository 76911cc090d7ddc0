package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
)

var safeModelName = regexp.MustCompile(`^[a-zA-Z0-9:._-]+$`)

// OllamaProvider talks to a local Ollama server.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

var _ core.AIProvider = (*OllamaProvider)(nil)

func NewOllamaProvider(baseURL, model string, client *http.Client) *OllamaProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

func (p *OllamaProvider) ID() string {
	return "ollama:" + p.model
}

type (
	ollamaRequest struct {
		Model   string        `json:"model"`
		Prompt  string        `json:"prompt"`
		System  string        `json:"system,omitempty"`
		Stream  bool          `json:"stream"`
		Options ollamaOptions `json:"options"`
	}

	ollamaOptions struct {
		NumPredict  int     `json:"num_predict,omitempty"`
		Temperature float64 `json:"temperature"`
		TopP        float64 `json:"top_p,omitempty"`
	}

	ollamaResponse struct {
		Model    string `json:"model"`
		Response string `json:"response"`
		Done     bool   `json:"done"`
		Error    string `json:"error"`
	}
)

func (p *OllamaProvider) Complete(ctx context.Context, req core.CompletionRequest) (*core.CompletionResponse, error) {
	if !safeModelName.MatchString(p.model) {
		return nil, errors.Errorf("invalid model name: %q", p.model)
	}

	body, err := json.Marshal(ollamaRequest{
		Model:  p.model,
		Prompt: req.Prompt,
		System: req.System,
		Options: ollamaOptions{
			NumPredict:  req.MaxTokens,
			Temperature: req.Temperature,
			TopP:        req.TopP,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding ollama request")
	}

	hReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building ollama request")
	}
	hReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(hReq)
	if err != nil {
		return nil, errors.Wrap(err, "calling ollama")
	}
	defer resp.Body.Close()

	var oResp ollamaResponse
	if err := json.NewDecoder(resp.Body).Decode(&oResp); err != nil {
		return nil, errors.Wrap(err, "decoding ollama response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama: status %d: %s", resp.StatusCode, oResp.Error)
	}

	text := strings.TrimSpace(oResp.Response)
	if text == "" {
		return nil, core.ErrEmptyCompletion
	}
	return &core.CompletionResponse{Text: text, Model: p.model}, nil
}
