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

func TestOpenAIProvider_Complete(t *testing.T) {
	var (
		got  chatRequest
		auth string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"model":"phi3","choices":[{"message":{"role":"assistant","content":"Use flashcards.\n"}}]}`))
	}))
	defer srv.Close()

	tests := []struct {
		name     string
		apiKey   string
		system   string
		wantAuth string
		wantMsgs int
	}{
		{name: "with system and key", apiKey: "sk-local", system: "tutor", wantAuth: "Bearer sk-local", wantMsgs: 2},
		{name: "no system, no key", wantMsgs: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewOpenAIProvider(srv.URL, tt.apiKey, "phi3", nil)
			res, err := p.Complete(context.Background(), core.CompletionRequest{System: tt.system, Prompt: "how to memorize?"})
			require.NoError(t, err)
			assert.Equal(t, "Use flashcards.", res.Text)
			assert.Equal(t, tt.wantAuth, auth)
			require.Len(t, got.Messages, tt.wantMsgs)
			assert.Equal(t, "user", got.Messages[tt.wantMsgs-1].Role)
			assert.Equal(t, "how to memorize?", got.Messages[tt.wantMsgs-1].Content)
		})
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "api error", status: http.StatusBadRequest, body: `{"error":{"message":"context too long"}}`, wantMsg: "context too long"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: core.ErrEmptyCompletion},
		{name: "blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":" "}}]}`, wantErr: core.ErrEmptyCompletion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOpenAIProvider(srv.URL, "", "phi3", nil).Complete(context.Background(), core.CompletionRequest{Prompt: "hi"})
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
