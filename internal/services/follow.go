package services

import (
	"context"
	"errors"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
)

// FollowService maintains the following set stored on the follower's document.
type FollowService struct {
	userRepository repositories.UserRepository
}

func NewFollowService(userRepo repositories.UserRepository) *FollowService {
	return &FollowService{userRepository: userRepo}
}

// Follow adds targetID to selfID's following set. Following twice is a no-op
// reported with Changed=false.
func (s *FollowService) Follow(ctx context.Context, selfID, targetID string) (*models.FollowResult, error) {
	if selfID == targetID {
		return nil, ErrSelfFollow
	}
	if _, err := s.userRepository.FindUserByID(ctx, targetID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, err
	}

	changed, err := s.userRepository.AddFollow(ctx, selfID, targetID)
	if err != nil {
		return nil, err
	}
	return &models.FollowResult{TargetID: targetID, Following: true, Changed: changed}, nil
}

// Unfollow removes targetID from the following set. The target does not have
// to exist any more, so dangling edges to deleted accounts can be cleaned up.
func (s *FollowService) Unfollow(ctx context.Context, selfID, targetID string) (*models.FollowResult, error) {
	if selfID == targetID {
		return nil, ErrSelfFollow
	}

	changed, err := s.userRepository.RemoveFollow(ctx, selfID, targetID)
	if err != nil {
		return nil, err
	}
	return &models.FollowResult{TargetID: targetID, Following: false, Changed: changed}, nil
}

// ListFollowing returns the profiles the user follows, skipping deleted accounts.
func (s *FollowService) ListFollowing(ctx context.Context, selfID string) ([]models.UserCompact, error) {
	user, err := s.userRepository.FindUserByID(ctx, selfID)
	if err != nil {
		return nil, err
	}
	followed, err := s.userRepository.FindUsersByIDs(ctx, user.Following)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.UserCompact, len(followed))
	for i := range followed {
		byID[followed[i].ID] = followed[i].ToCompact()
	}
	out := make([]models.UserCompact, 0, len(followed))
	for _, id := range user.Following {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
