package services

import (
	"context"
	"slices"
	"strings"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
)

const MaxPageSize = 50

// FeedService merges the collections of followed users into one recency-ordered feed.
type FeedService struct {
	userRepository repositories.UserRepository
}

func NewFeedService(userRepo repositories.UserRepository) *FeedService {
	return &FeedService{userRepository: userRepo}
}

// GetFeed returns one page of the requester's feed. page is 1-based.
func (s *FeedService) GetFeed(ctx context.Context, userID string, page, pageSize int) (*models.FeedPage, error) {
	if page < 1 || pageSize < 1 || pageSize > MaxPageSize {
		return nil, ErrInvalidPagination
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &models.FeedPage{Items: []models.FeedItem{}, Page: page, PageSize: pageSize}
	if len(user.Following) == 0 {
		return result, nil
	}

	// Followees that no longer exist are simply absent from the batch.
	followed, err := s.userRepository.FindUsersByIDs(ctx, user.Following)
	if err != nil {
		return nil, err
	}

	items := flattenFeed(followed)
	sortFeed(items)

	total := len(items)
	offset := (page - 1) * pageSize
	result.Total = total
	if offset >= total {
		return result, nil
	}
	end := min(offset+pageSize, total)
	result.Items = items[offset:end]
	result.HasMore = end < total
	return result, nil
}

func flattenFeed(users []models.User) []models.FeedItem {
	n := 0
	for _, u := range users {
		n += len(u.Gifs)
	}
	items := make([]models.FeedItem, 0, n)
	for _, u := range users {
		for _, g := range u.Gifs {
			items = append(items, models.FeedItem{
				GifID:     g.ID,
				URL:       g.URL,
				Title:     g.Title,
				DateAdded: g.DateAdded,
				Likes:     g.Likes,
				OwnerID:   u.ID,
				OwnerName: u.Name,
			})
		}
	}
	return items
}

// sortFeed orders newest first; equal timestamps fall back to owner id then
// gif id so that pages are stable across requests.
func sortFeed(items []models.FeedItem) {
	slices.SortFunc(items, func(a, b models.FeedItem) int {
		if c := b.DateAdded.Compare(a.DateAdded); c != 0 {
			return c
		}
		if c := strings.Compare(a.OwnerID, b.OwnerID); c != 0 {
			return c
		}
		return strings.Compare(a.GifID.Hex(), b.GifID.Hex())
	})
}
