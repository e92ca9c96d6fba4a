package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func stamps(items []models.FeedItem) []time.Time {
	out := make([]time.Time, len(items))
	for i, it := range items {
		out[i] = it.DateAdded
	}
	return out
}

func TestGetFeedScenario(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seedUser(t, repo, "A", "Alice")
	seedUser(t, repo, "B", "Bob", 5, 3)
	seedUser(t, repo, "C", "Cleo", 4, 2)
	follow(t, repo, "A", "B", "C")
	svc := NewFeedService(repo)
	ctx := context.Background()

	first, err := svc.GetFeed(ctx, "A", 1, 2)
	require.NoError(t, err)
	require.Equal(t, []time.Time{at(5), at(4)}, stamps(first.Items))
	require.Equal(t, "B", first.Items[0].OwnerID)
	require.Equal(t, "Bob", first.Items[0].OwnerName)
	require.Equal(t, "Cleo", first.Items[1].OwnerName)
	require.True(t, first.HasMore)
	require.Equal(t, 4, first.Total)

	second, err := svc.GetFeed(ctx, "A", 2, 2)
	require.NoError(t, err)
	require.Equal(t, []time.Time{at(3), at(2)}, stamps(second.Items))
	require.False(t, second.HasMore)
}

func TestGetFeedPagination(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seedUser(t, repo, "reader", "Reader")
	var s1, s2 []int
	for i := 0; i < 10; i++ {
		s1 = append(s1, i*2)
		s2 = append(s2, i*2+1)
	}
	seedUser(t, repo, "u1", "U1", s1...)
	seedUser(t, repo, "u2", "U2", s2...)
	follow(t, repo, "reader", "u1", "u2")
	svc := NewFeedService(repo)
	ctx := context.Background()

	t.Run("exact multiple of page size ends without hasMore", func(t *testing.T) {
		p2, err := svc.GetFeed(ctx, "reader", 2, 10)
		require.NoError(t, err)
		require.Len(t, p2.Items, 10)
		require.False(t, p2.HasMore)
		require.Equal(t, 20, p2.Total)
	})

	t.Run("consecutive pages concatenate to a larger page", func(t *testing.T) {
		p1, err := svc.GetFeed(ctx, "reader", 1, 10)
		require.NoError(t, err)
		p2, err := svc.GetFeed(ctx, "reader", 2, 10)
		require.NoError(t, err)
		whole, err := svc.GetFeed(ctx, "reader", 1, 20)
		require.NoError(t, err)

		seen := map[primitive.ObjectID]bool{}
		for _, it := range p1.Items {
			seen[it.GifID] = true
		}
		for _, it := range p2.Items {
			require.False(t, seen[it.GifID], "pages overlap")
		}
		require.Equal(t, whole.Items, append(append([]models.FeedItem{}, p1.Items...), p2.Items...))
	})

	t.Run("sorted newest first", func(t *testing.T) {
		whole, err := svc.GetFeed(ctx, "reader", 1, 20)
		require.NoError(t, err)
		for i := 1; i < len(whole.Items); i++ {
			require.False(t, whole.Items[i].DateAdded.After(whole.Items[i-1].DateAdded))
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		p, err := svc.GetFeed(ctx, "reader", 5, 10)
		require.NoError(t, err)
		require.Empty(t, p.Items)
		require.False(t, p.HasMore)
	})
}

func TestGetFeedTieBreakIsDeterministic(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	ctx := context.Background()
	seedUser(t, repo, "reader", "Reader")
	for _, id := range []string{"zed", "amy", "kim"} {
		seedUser(t, repo, id, id)
		for _, hex := range []string{"000000000000000000000002", "000000000000000000000001"} {
			oid, err := primitive.ObjectIDFromHex(hex)
			require.NoError(t, err)
			_, err = repo.AppendGif(ctx, id, models.Gif{ID: oid, URL: "https://media.example/" + id + hex, DateAdded: at(1)})
			require.NoError(t, err)
		}
	}
	follow(t, repo, "reader", "zed", "kim", "amy")
	svc := NewFeedService(repo)

	page, err := svc.GetFeed(ctx, "reader", 1, 50)
	require.NoError(t, err)
	var order []string
	for _, it := range page.Items {
		order = append(order, it.OwnerID+"/"+it.GifID.Hex()[23:])
	}
	require.Equal(t, []string{"amy/1", "amy/2", "kim/1", "kim/2", "zed/1", "zed/2"}, order)

	for i := 0; i < 5; i++ {
		again, err := svc.GetFeed(ctx, "reader", 1, 50)
		require.NoError(t, err)
		require.Equal(t, page.Items, again.Items)
	}
}

type countingRepo struct {
	*repositories.MemoryUserRepository
	batchCalls int
}

func (r *countingRepo) FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	r.batchCalls++
	return r.MemoryUserRepository.FindUsersByIDs(ctx, ids)
}

func TestGetFeedEdgeCases(t *testing.T) {
	ctx := context.Background()

	t.Run("no follows means empty page and no batch fetch", func(t *testing.T) {
		mem := repositories.NewMemoryUserRepository()
		seedUser(t, mem, "loner", "Loner")
		repo := &countingRepo{MemoryUserRepository: mem}

		page, err := NewFeedService(repo).GetFeed(ctx, "loner", 1, 10)
		require.NoError(t, err)
		require.Empty(t, page.Items)
		require.False(t, page.HasMore)
		require.Zero(t, repo.batchCalls)
	})

	t.Run("followees are fetched in one batch and deleted ones skipped", func(t *testing.T) {
		mem := repositories.NewMemoryUserRepository()
		seedUser(t, mem, "reader", "Reader")
		seedUser(t, mem, "kept", "Kept", 1, 2)
		seedUser(t, mem, "gone", "Gone", 3)
		follow(t, mem, "reader", "kept", "gone")
		mem.DeleteUser("gone")
		repo := &countingRepo{MemoryUserRepository: mem}

		page, err := NewFeedService(repo).GetFeed(ctx, "reader", 1, 10)
		require.NoError(t, err)
		require.Equal(t, 1, repo.batchCalls)
		require.Len(t, page.Items, 2)
		for _, it := range page.Items {
			require.Equal(t, "kept", it.OwnerID)
		}
	})

	t.Run("unknown requester", func(t *testing.T) {
		_, err := NewFeedService(repositories.NewMemoryUserRepository()).GetFeed(ctx, "ghost", 1, 10)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("pagination bounds", func(t *testing.T) {
		svc := NewFeedService(repositories.NewMemoryUserRepository())
		for _, tc := range []struct{ page, size int }{{0, 10}, {1, 0}, {1, 51}, {-1, 5}} {
			_, err := svc.GetFeed(ctx, "anyone", tc.page, tc.size)
			require.ErrorIs(t, err, ErrInvalidPagination)
		}
	})
}
