package aisvc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myousuf-code/StudyWiseAI/core"
)

func TestOllamaProvider_Complete(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ollamaResponse{Model: got.Model, Response: "  Study daily.  ", Done: true})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL+"/", "orca-mini-3b-gguf2-q4_0", srv.Client())
	res, err := p.Complete(context.Background(), core.CompletionRequest{
		System: "be brief", Prompt: "how?", MaxTokens: 800, Temperature: .7, TopP: .9,
	})
	require.NoError(t, err)
	assert.Equal(t, "Study daily.", res.Text)
	assert.Equal(t, "ollama:orca-mini-3b-gguf2-q4_0", p.ID())

	assert.False(t, got.Stream)
	assert.Equal(t, "be brief", got.System)
	assert.Equal(t, "how?", got.Prompt)
	assert.Equal(t, 800, got.Options.NumPredict)
	assert.Equal(t, .9, got.Options.TopP)
}

func TestOllamaProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		model   string
		status  int
		resp    ollamaResponse
		wantErr error
	}{
		{name: "invalid model name", model: "bad model;", status: http.StatusOK},
		{name: "server error", model: "llama3", status: http.StatusInternalServerError, resp: ollamaResponse{Error: "model not loaded"}},
		{name: "empty response", model: "llama3", status: http.StatusOK, resp: ollamaResponse{Response: "   "}, wantErr: core.ErrEmptyCompletion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.resp)
			}))
			defer srv.Close()

			_, err := NewOllamaProvider(srv.URL, tt.model, nil).Complete(context.Background(), core.CompletionRequest{Prompt: "hi"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			}
		})
	}
}

func TestOllamaProvider_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewOllamaProvider("http://127.0.0.1:1", "llama3", nil).Complete(ctx, core.CompletionRequest{Prompt: "hi"})
	assert.Error(t, err)
}
