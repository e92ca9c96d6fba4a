package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/anonto42/gif-feed/backend/internal/providers"
	"github.com/sirupsen/logrus"
)

const (
	MaxAcquireAttempts = 10
	acquireBatchSize   = 5
	// offsets are drawn from [0, acquireOffsetSpan) to spread attempts over the result list
	acquireOffsetSpan = 50
)

// RandSource yields pseudo-random ints in [0, n).
type RandSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.Intn(n) }

// AcquireOptions carries the provider knobs a caller may tune.
type AcquireOptions struct {
	ContentFilter string
	Locale        string
}

// Acquirer finds a GIF whose URL the caller does not know yet.
type Acquirer struct {
	provider    providers.Provider
	rand        RandSource
	maxAttempts int
	logger      *logrus.Logger
}

// NewAcquirer builds an Acquirer. A nil rnd uses the global math/rand source.
func NewAcquirer(provider providers.Provider, rnd RandSource, logger *logrus.Logger) *Acquirer {
	if rnd == nil {
		rnd = globalRand{}
	}
	return &Acquirer{
		provider:    provider,
		rand:        rnd,
		maxAttempts: MaxAcquireAttempts,
		logger:      logger,
	}
}

// Acquire runs up to MaxAcquireAttempts sequential searches, each at a random
// offset, and returns the first result whose URL is not in known.
// Provider failures abort immediately; retrying those is the provider chain's job.
func (a *Acquirer) Acquire(ctx context.Context, query string, known map[string]struct{}, opts AcquireOptions) (*providers.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}

	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		offset := a.rand.IntN(acquireOffsetSpan)
		results, err := a.provider.Search(ctx, query, providers.SearchOptions{
			Limit:         acquireBatchSize,
			Offset:        offset,
			ContentFilter: opts.ContentFilter,
			Locale:        opts.Locale,
		})
		if err != nil {
			return nil, fmt.Errorf("acquire attempt %d: %w", attempt, err)
		}

		for _, r := range results {
			if _, seen := known[r.URL]; !seen {
				return &r, nil
			}
		}

		a.logger.WithFields(logrus.Fields{
			"query":   query,
			"attempt": attempt,
			"offset":  offset,
			"results": len(results),
		}).Debug("no unseen gif in batch")
	}

	return nil, ErrNotFoundAfterRetries
}
