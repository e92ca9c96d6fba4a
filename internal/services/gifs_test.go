package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/providers"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func newGifService(t *testing.T, p providers.Provider) (*GifService, *repositories.MemoryUserRepository) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	repo := repositories.NewMemoryUserRepository()
	seedUser(t, repo, "u1", "Una")
	sessions := repositories.NewMemorySessionStore(time.Hour)
	return NewGifService(repo, sessions, p, NewAcquirer(p, &seqRand{vals: []int{0}}, logger), logger), repo
}

func TestGifServiceAcquire(t *testing.T) {
	ctx := context.Background()

	t.Run("skips urls already in the collection", func(t *testing.T) {
		p := &scriptedProvider{batches: [][]providers.Result{results("https://g/1", "https://g/2")}}
		svc, _ := newGifService(t, p)
		_, err := svc.Save(ctx, "u1", "https://g/1", "")
		require.NoError(t, err)

		res, err := svc.Acquire(ctx, "u1", models.AcquireGifRequest{Query: "cats"})
		require.NoError(t, err)
		require.Equal(t, "https://g/2", res.Gif.URL)
		require.Nil(t, res.Saved)
	})

	t.Run("session remembers what it already surfaced", func(t *testing.T) {
		p := &scriptedProvider{batches: [][]providers.Result{results("https://g/1", "https://g/2")}}
		svc, _ := newGifService(t, p)
		req := models.AcquireGifRequest{Query: "cats", SessionID: "tab-1"}

		first, err := svc.Acquire(ctx, "u1", req)
		require.NoError(t, err)
		second, err := svc.Acquire(ctx, "u1", req)
		require.NoError(t, err)
		require.NotEqual(t, first.Gif.URL, second.Gif.URL)

		_, err = svc.Acquire(ctx, "u1", req)
		require.ErrorIs(t, err, ErrNotFoundAfterRetries)

		other, err := svc.Acquire(ctx, "u1", models.AcquireGifRequest{Query: "cats", SessionID: "tab-2"})
		require.NoError(t, err)
		require.Equal(t, "https://g/1", other.Gif.URL)
	})

	t.Run("save appends the surfaced gif", func(t *testing.T) {
		p := &scriptedProvider{batches: [][]providers.Result{results("https://g/9")}}
		svc, repo := newGifService(t, p)

		res, err := svc.Acquire(ctx, "u1", models.AcquireGifRequest{Query: "cats", Save: true})
		require.NoError(t, err)
		require.NotNil(t, res.Saved)
		require.Equal(t, "https://g/9", res.Saved.URL)
		require.Equal(t, "t-https://g/9", res.Saved.Title)

		u, err := repo.FindUserByID(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, u.Gifs, 1)

		_, err = svc.Acquire(ctx, "u1", models.AcquireGifRequest{Query: "cats"})
		require.ErrorIs(t, err, ErrNotFoundAfterRetries)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newGifService(t, &scriptedProvider{})
		_, err := svc.Acquire(ctx, "ghost", models.AcquireGifRequest{Query: "cats"})
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("blank query", func(t *testing.T) {
		p := &scriptedProvider{}
		svc, _ := newGifService(t, p)
		_, err := svc.Acquire(ctx, "u1", models.AcquireGifRequest{Query: " "})
		require.ErrorIs(t, err, ErrInvalidQuery)
		require.Empty(t, p.calls)
	})
}

func TestGifServiceCollection(t *testing.T) {
	ctx := context.Background()
	svc, repo := newGifService(t, &scriptedProvider{})
	clock := epoch
	repo.WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	_, err := svc.Save(ctx, "u1", "  ", "x")
	require.ErrorIs(t, err, ErrInvalidURL)

	older, err := svc.Save(ctx, "u1", "https://g/old", " first ")
	require.NoError(t, err)
	require.Equal(t, "first", older.Title)
	newer, err := svc.Save(ctx, "u1", "https://g/new", "")
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, newer.ID, list[0].ID)
	require.Equal(t, older.ID, list[1].ID)
	require.Zero(t, list[0].Likes)

	require.NoError(t, svc.Delete(ctx, "u1", older.ID.Hex()))
	require.ErrorIs(t, svc.Delete(ctx, "u1", older.ID.Hex()), ErrGifNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "u1", "not-an-object-id"), ErrGifNotFound)

	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestGifServiceSearch(t *testing.T) {
	p := &scriptedProvider{batches: [][]providers.Result{results("https://g/1")}}
	svc, _ := newGifService(t, p)

	res, err := svc.Search(context.Background(), " dogs ", 12)
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, "dogs", p.queries[0])
	require.Equal(t, 12, p.calls[0].Limit)

	_, err = svc.Search(context.Background(), "", 12)
	require.ErrorIs(t, err, ErrInvalidQuery)
}
