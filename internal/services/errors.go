package services

import (
	"errors"

	"github.com/anonto42/gif-feed/backend/internal/repositories"
)

var (
	ErrInvalidQuery      = errors.New("search query must not be empty")
	ErrInvalidURL        = errors.New("gif url must not be empty")
	ErrInvalidPagination = errors.New("page must be >= 1 and page size within [1,50]")
	ErrEmailRequired     = errors.New("identity has no email address")

	// ErrNotFoundAfterRetries is a normal negative outcome of acquisition,
	// not a fault.
	ErrNotFoundAfterRetries = errors.New("no new gif found after retries")

	ErrUserNotFound   = repositories.ErrUserNotFound
	ErrTargetNotFound = errors.New("target user not found")
	ErrSelfFollow     = errors.New("users cannot follow themselves")
	ErrGifNotFound    = errors.New("gif not found")
	ErrPromptNotFound = repositories.ErrPromptNotFound
)
