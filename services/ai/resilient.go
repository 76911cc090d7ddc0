package aisvc

import (
	"context"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/myousuf-code/StudyWiseAI/core"
)

const defaultTimeout = 2 * time.Minute

// ResilientProvider retries failed completions with exponential backoff.
// Each attempt gets its own deadline and all attempts share an overall one.
type ResilientProvider struct {
	inner          core.AIProvider
	maxAttempts    int
	initialDelay   time.Duration
	attemptTimeout time.Duration
	timeout        time.Duration
}

var _ core.AIProvider = (*ResilientProvider)(nil)

func NewResilientProvider(inner core.AIProvider, maxAttempts int, initialDelay, attemptTimeout, timeout time.Duration) *ResilientProvider {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if attemptTimeout <= 0 || attemptTimeout > timeout {
		attemptTimeout = timeout
	}
	return &ResilientProvider{
		inner:          inner,
		maxAttempts:    maxAttempts,
		initialDelay:   initialDelay,
		attemptTimeout: attemptTimeout,
		timeout:        timeout,
	}
}

// AttemptTimeout splits an overall budget evenly between attempts.
func AttemptTimeout(total time.Duration, attempts int) time.Duration {
	if attempts < 1 {
		attempts = 1
	}
	return total / time.Duration(attempts)
}

func (p *ResilientProvider) ID() string {
	return p.inner.ID()
}

func (p *ResilientProvider) Complete(ctx context.Context, req core.CompletionRequest) (*core.CompletionResponse, error) {
	r := retry.New[*core.CompletionResponse](retry.Config{
		MaxAttempts:   p.maxAttempts,
		InitialDelay:  p.initialDelay,
		BackoffPolicy: retry.BackoffExponential,
	})
	t := timeout.New[*core.CompletionResponse](timeout.Config{
		DefaultTimeout: p.timeout,
	})

	return t.Execute(ctx, p.timeout, func(ctx context.Context) (*core.CompletionResponse, error) {
		return r.Do(ctx, func(ctx context.Context) (*core.CompletionResponse, error) {
			return t.Execute(ctx, p.attemptTimeout, func(ctx context.Context) (*core.CompletionResponse, error) {
				return p.inner.Complete(ctx, req)
			})
		})
	})
}
