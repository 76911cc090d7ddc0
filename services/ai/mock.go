package aisvc

import (
	"context"
	"strings"
	"sync"

	"github.com/myousuf-code/StudyWiseAI/core"
)

// CompleteFunc answers a completion request.
type CompleteFunc func(ctx context.Context, req core.CompletionRequest) (string, error)

// MockProvider is an in-process provider for tests and offline development.
type MockProvider struct {
	mu    sync.Mutex
	fn    CompleteFunc
	calls []core.CompletionRequest
}

var _ core.AIProvider = (*MockProvider)(nil)

// NewMockProvider answers with fn; a nil fn echoes a short canned answer.
func NewMockProvider(fn CompleteFunc) *MockProvider {
	if fn == nil {
		fn = func(_ context.Context, req core.CompletionRequest) (string, error) {
			return "This is a mock answer to: " + firstLine(req.Prompt), nil
		}
	}
	return &MockProvider{fn: fn}
}

func (p *MockProvider) ID() string { return "mock" }

func (p *MockProvider) Complete(ctx context.Context, req core.CompletionRequest) (*core.CompletionResponse, error) {
	p.mu.Lock()
	p.calls = append(p.calls, req)
	fn := p.fn
	p.mu.Unlock()

	text, err := fn(ctx, req)
	if err != nil {
		return nil, err
	}
	return &core.CompletionResponse{Text: text, Model: "mock"}, nil
}

// SetFunc swaps the answering function.
func (p *MockProvider) SetFunc(fn CompleteFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fn = fn
}

// Calls returns the requests received so far.
func (p *MockProvider) Calls() []core.CompletionRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]core.CompletionRequest(nil), p.calls...)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
