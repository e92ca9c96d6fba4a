// Package providers talks to third-party GIF search services and normalizes
// their responses into Result records.
package providers

import (
	"context"
	"errors"
	"fmt"
)

var ErrProviderUnavailable = errors.New("gif provider unavailable")

// Result is a provider-agnostic search hit.
type Result struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	PreviewURL string `json:"previewUrl"`
	Title      string `json:"title"`
}

// SearchOptions are translated into each provider's own query parameters.
type SearchOptions struct {
	Limit         int
	ContentFilter string // off, low, medium, high
	Locale        string // e.g. en_US
	Country       string
	Random        bool
	Offset        int
	// Cursor is an opaque pagination token and wins over Offset when set.
	Cursor string
}

// Provider is a single GIF search backend.
type Provider interface {
	Name() string
	// Configured reports whether the provider has the credential it needs.
	Configured() bool
	// Search returns an empty slice, not an error, when nothing matched.
	Search(ctx context.Context, query string, opts SearchOptions) ([]Result, error)
}

// UpstreamError is returned when a provider answers with a non-success status.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Provider, e.StatusCode)
}

const (
	defaultLimit         = 20
	maxLimit             = 50
	defaultContentFilter = "low"
	defaultLocale        = "en_US"
	defaultCountry       = "US"
)

func (o SearchOptions) withDefaults() SearchOptions {
	if o.Limit <= 0 {
		o.Limit = defaultLimit
	}
	if o.Limit > maxLimit {
		o.Limit = maxLimit
	}
	if o.ContentFilter == "" {
		o.ContentFilter = defaultContentFilter
	}
	if o.Locale == "" {
		o.Locale = defaultLocale
	}
	if o.Country == "" {
		o.Country = defaultCountry
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
	return o
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
