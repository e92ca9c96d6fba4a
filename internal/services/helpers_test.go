package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/providers"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return epoch.Add(time.Duration(sec) * time.Second) }

// scriptedProvider returns batches[i] on the i-th call, repeating the last one.
type scriptedProvider struct {
	batches [][]providers.Result
	err     error
	calls   []providers.SearchOptions
	queries []string
}

func (p *scriptedProvider) Name() string     { return "scripted" }
func (p *scriptedProvider) Configured() bool { return true }
func (p *scriptedProvider) Search(_ context.Context, query string, opts providers.SearchOptions) ([]providers.Result, error) {
	p.calls = append(p.calls, opts)
	p.queries = append(p.queries, query)
	if p.err != nil {
		return nil, p.err
	}
	if len(p.batches) == 0 {
		return []providers.Result{}, nil
	}
	i := min(len(p.calls)-1, len(p.batches)-1)
	return p.batches[i], nil
}

// seqRand cycles through fixed values.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

func results(urls ...string) []providers.Result {
	out := make([]providers.Result, len(urls))
	for i, u := range urls {
		out[i] = providers.Result{ID: u, URL: u, PreviewURL: u, Title: "t-" + u}
	}
	return out
}

func seedUser(t *testing.T, repo *repositories.MemoryUserRepository, id, name string, stamps ...int) {
	t.Helper()
	ctx := context.Background()
	_, err := repo.UpsertUser(ctx, id, name, id+"@example.com")
	require.NoError(t, err)
	for _, s := range stamps {
		_, err := repo.AppendGif(ctx, id, models.Gif{
			URL:       "https://media.example/" + id + "/" + at(s).Format("150405") + ".gif",
			DateAdded: at(s),
		})
		require.NoError(t, err)
	}
}

func follow(t *testing.T, repo *repositories.MemoryUserRepository, self string, targets ...string) {
	t.Helper()
	for _, target := range targets {
		_, err := repo.AddFollow(context.Background(), self, target)
		require.NoError(t, err)
	}
}
