package providers

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Chain tries providers in order. Unconfigured providers are skipped and a
// failing provider hands over to the next one, so callers never learn which
// backend answered.
type Chain struct {
	providers []Provider
	logger    *logrus.Logger
}

func NewChain(logger *logrus.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Configured() bool {
	for _, p := range c.providers {
		if p.Configured() {
			return true
		}
	}
	return false
}

func (c *Chain) Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error) {
	var lastErr error
	for _, p := range c.providers {
		if !p.Configured() {
			continue
		}
		results, err := p.Search(ctx, query, opts)
		if err == nil {
			return results, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.WithFields(logrus.Fields{
			"provider": p.Name(),
			"error":    err.Error(),
		}).Warn("gif provider failed, falling back")
		lastErr = err
	}
	if lastErr == nil {
		return nil, ErrProviderUnavailable
	}
	return nil, lastErr
}
