package aisvc

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/myousuf-code/StudyWiseAI/core"
)

const retryInitialDelay = 500 * time.Millisecond

// New builds the configured provider chain: cache -> concurrency limit -> retry/timeout -> backend.
// The returned closer releases the Redis connection, if any.
func New(ctx context.Context, conf *core.Config, logger core.Logger) (core.AIProvider, func() error, error) {
	closer := func() error { return nil }

	// conf.AI.Timeout bounds a whole completion, retries included
	attemptTimeout := AttemptTimeout(conf.AI.Timeout, conf.AI.MaxRetries)

	var backend core.AIProvider
	client := &http.Client{Timeout: attemptTimeout}
	switch conf.AI.Provider {
	case "ollama":
		backend = NewOllamaProvider(conf.AI.BaseURL, conf.AI.Model, client)
	case "openai":
		backend = NewOpenAIProvider(conf.AI.BaseURL, conf.AI.APIKey, conf.AI.Model, client)
	case "mock":
		return NewMockProvider(nil), closer, nil
	default:
		return nil, closer, errors.Errorf("unknown AI provider %q", conf.AI.Provider)
	}

	var provider core.AIProvider = NewResilientProvider(backend, conf.AI.MaxRetries, retryInitialDelay, attemptTimeout, conf.AI.Timeout)
	provider = NewLimitedProvider(provider, conf.AI.MaxConcurrent)

	if conf.Redis.URL != "" {
		rdb, err := NewRedisClient(ctx, conf.Redis.URL)
		if err != nil {
			// the cache is optional
			logger.Warn("AI completion cache disabled", err)
			return provider, closer, nil
		}
		provider = NewCachedProvider(provider, rdb, conf.Redis.CacheTTL, logger)
		closer = rdb.Close
	}
	return provider, closer, nil
}
