package aisvc

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"

	"github.com/myousuf-code/StudyWiseAI/core"
)

// LimitedProvider caps the number of in-flight completions; a local model serves one prompt at a time at best.
type LimitedProvider struct {
	inner core.AIProvider
	sem   *semaphore.Weighted
}

var _ core.AIProvider = (*LimitedProvider)(nil)

func NewLimitedProvider(inner core.AIProvider, maxConcurrent int) *LimitedProvider {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &LimitedProvider{inner: inner, sem: semaphore.NewWeighted(int64(maxConcurrent))}
}

func (p *LimitedProvider) ID() string {
	return p.inner.ID()
}

func (p *LimitedProvider) Complete(ctx context.Context, req core.CompletionRequest) (*core.CompletionResponse, error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "waiting for a free model slot")
	}
	defer p.sem.Release(1)
	return p.inner.Complete(ctx, req)
}
