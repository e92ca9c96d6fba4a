package services

import (
	"context"
	"strings"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
)

const userSearchLimit = 20

type UserService struct {
	userRepository repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepository: userRepo}
}

// Register creates or refreshes the profile document for an authenticated identity.
// The display name falls back to the local part of the email.
func (s *UserService) Register(ctx context.Context, id, email, name string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	return s.userRepository.UpsertUser(ctx, id, name, strings.ToLower(email))
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.userRepository.FindUserByID(ctx, id)
}

func (s *UserService) Search(ctx context.Context, query string) ([]models.UserCompact, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	users, err := s.userRepository.SearchUsers(ctx, query, userSearchLimit)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out, nil
}
