package services

import (
	"context"
	"testing"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
	"github.com/stretchr/testify/require"
)

func TestFollowService(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryUserRepository()
	seedUser(t, repo, "A", "Alice")
	seedUser(t, repo, "B", "Bob")
	seedUser(t, repo, "C", "Cleo")
	svc := NewFollowService(repo)

	t.Run("following twice keeps a single edge", func(t *testing.T) {
		first, err := svc.Follow(ctx, "A", "B")
		require.NoError(t, err)
		require.True(t, first.Changed)
		require.True(t, first.Following)

		second, err := svc.Follow(ctx, "A", "B")
		require.NoError(t, err)
		require.False(t, second.Changed)

		a, err := repo.FindUserByID(ctx, "A")
		require.NoError(t, err)
		require.Equal(t, []string{"B"}, a.Following)
	})

	t.Run("self follow is rejected and leaves the set alone", func(t *testing.T) {
		_, err := svc.Follow(ctx, "A", "A")
		require.ErrorIs(t, err, ErrSelfFollow)
		_, err = svc.Unfollow(ctx, "A", "A")
		require.ErrorIs(t, err, ErrSelfFollow)

		a, err := repo.FindUserByID(ctx, "A")
		require.NoError(t, err)
		require.NotContains(t, a.Following, "A")
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := svc.Follow(ctx, "A", "nobody")
		require.ErrorIs(t, err, ErrTargetNotFound)
	})

	t.Run("unfollow reports whether anything changed", func(t *testing.T) {
		res, err := svc.Unfollow(ctx, "A", "C")
		require.NoError(t, err)
		require.False(t, res.Changed)

		res, err = svc.Unfollow(ctx, "A", "B")
		require.NoError(t, err)
		require.True(t, res.Changed)
		require.False(t, res.Following)

		a, err := repo.FindUserByID(ctx, "A")
		require.NoError(t, err)
		require.Empty(t, a.Following)
	})

	t.Run("dangling edge can still be removed", func(t *testing.T) {
		seedUser(t, repo, "D", "Dana")
		_, err := svc.Follow(ctx, "A", "D")
		require.NoError(t, err)
		repo.DeleteUser("D")

		res, err := svc.Unfollow(ctx, "A", "D")
		require.NoError(t, err)
		require.True(t, res.Changed)
	})
}

func TestListFollowing(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryUserRepository()
	seedUser(t, repo, "A", "Alice")
	seedUser(t, repo, "B", "Bob")
	seedUser(t, repo, "C", "Cleo")
	seedUser(t, repo, "X", "Gone")
	follow(t, repo, "A", "C", "X", "B")
	repo.DeleteUser("X")

	list, err := NewFollowService(repo).ListFollowing(ctx, "A")
	require.NoError(t, err)
	require.Equal(t, []models.UserCompact{{ID: "C", Name: "Cleo"}, {ID: "B", Name: "Bob"}}, list)

	_, err = NewFollowService(repo).ListFollowing(ctx, "nobody")
	require.ErrorIs(t, err, ErrUserNotFound)
}
