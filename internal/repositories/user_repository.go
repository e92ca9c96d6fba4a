package repositories

import (
	"context"
	"errors"

	"github.com/anonto42/gif-feed/backend/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered to another user")
)

// UserRepository defines the document operations the services rely on.
// Every mutation touches exactly one user document.
type UserRepository interface {
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	// FindUsersByIDs loads many users in one round trip. Unknown ids are omitted.
	FindUsersByIDs(ctx context.Context, ids []string) ([]models.User, error)
	UpsertUser(ctx context.Context, id, name, email string) (*models.User, error)
	SearchUsers(ctx context.Context, query string, limit int64) ([]models.User, error)
	// AppendGif assigns the id and the timestamp when they are zero.
	AppendGif(ctx context.Context, userID string, gif models.Gif) (*models.Gif, error)
	DeleteGif(ctx context.Context, userID, gifID string) (bool, error)
	AddFollow(ctx context.Context, userID, targetID string) (bool, error)
	RemoveFollow(ctx context.Context, userID, targetID string) (bool, error)
}
