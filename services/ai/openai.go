package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
)

// OpenAIProvider calls any OpenAI compatible chat completions endpoint (llama.cpp server, LocalAI, vLLM...).
type OpenAIProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

var _ core.AIProvider = (*OpenAIProvider)(nil)

func NewOpenAIProvider(baseURL, apiKey, model string, client *http.Client) *OpenAIProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAIProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  client,
	}
}

func (p *OpenAIProvider) ID() string {
	return "openai:" + p.model
}

type (
	chatMessage struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}

	chatRequest struct {
		Model       string        `json:"model"`
		Messages    []chatMessage `json:"messages"`
		MaxTokens   int           `json:"max_tokens,omitempty"`
		Temperature float64       `json:"temperature"`
		TopP        float64       `json:"top_p,omitempty"`
	}

	chatResponse struct {
		Model   string `json:"model"`
		Choices []struct {
			Message chatMessage `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
)

func (p *OpenAIProvider) Complete(ctx context.Context, req core.CompletionRequest) (*core.CompletionResponse, error) {
	messages := make([]chatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding chat request")
	}

	hReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "building chat request")
	}
	hReq.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		hReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(hReq)
	if err != nil {
		return nil, errors.Wrap(err, "calling chat completions")
	}
	defer resp.Body.Close()

	var cResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return nil, errors.Wrap(err, "decoding chat response")
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if cResp.Error != nil {
			msg = cResp.Error.Message
		}
		return nil, fmt.Errorf("chat completions: status %d: %s", resp.StatusCode, msg)
	}
	if len(cResp.Choices) == 0 {
		return nil, core.ErrEmptyCompletion
	}

	text := strings.TrimSpace(cResp.Choices[0].Message.Content)
	if text == "" {
		return nil, core.ErrEmptyCompletion
	}
	return &core.CompletionResponse{Text: text, Model: p.model}, nil
}
