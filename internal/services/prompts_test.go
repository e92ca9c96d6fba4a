package services

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
	"github.com/stretchr/testify/require"
)

func TestPromptService(t *testing.T) {
	ctx := context.Background()
	svc := NewPromptService(repositories.NewMemoryPromptRepository())
	tick := 0
	svc.now = func() time.Time {
		tick++
		return at(tick)
	}

	empty, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	morning, err := svc.Create(ctx, "u1", models.CreatePromptRequest{Title: "Morning", SearchQuery: "coffee"})
	require.NoError(t, err)
	evening, err := svc.Create(ctx, "u1", models.CreatePromptRequest{Title: "Evening", SearchQuery: "sunset"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, "u2", models.CreatePromptRequest{Title: "Other", SearchQuery: "dogs"})
	require.NoError(t, err)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, evening.ID, list[0].ID)

	used, err := svc.Use(ctx, "u1", morning.ID)
	require.NoError(t, err)
	require.True(t, used.LastUsed.After(used.CreatedAt))

	list, err = svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, morning.ID, list[0].ID)

	updated, err := svc.Update(ctx, "u1", evening.ID, models.UpdatePromptRequest{SearchQuery: "night sky"})
	require.NoError(t, err)
	require.Equal(t, "Evening", updated.Title)
	require.Equal(t, "night sky", updated.SearchQuery)

	_, err = svc.Use(ctx, "u2", morning.ID)
	require.ErrorIs(t, err, ErrPromptNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "u2", morning.ID), ErrPromptNotFound)

	require.NoError(t, svc.Delete(ctx, "u1", morning.ID))
	_, err = svc.Use(ctx, "u1", morning.ID)
	require.ErrorIs(t, err, ErrPromptNotFound)
}
