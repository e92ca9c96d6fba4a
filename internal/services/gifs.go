package services

import (
	"context"
	"slices"
	"strings"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/providers"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
	"github.com/sirupsen/logrus"
)

// GifService manages a user's collection and ties acquisition to it.
type GifService struct {
	userRepository repositories.UserRepository
	sessions       repositories.SessionStore
	provider       providers.Provider
	acquirer       *Acquirer
	logger         *logrus.Logger
}

func NewGifService(
	userRepo repositories.UserRepository,
	sessions repositories.SessionStore,
	provider providers.Provider,
	acquirer *Acquirer,
	logger *logrus.Logger,
) *GifService {
	return &GifService{
		userRepository: userRepo,
		sessions:       sessions,
		provider:       provider,
		acquirer:       acquirer,
		logger:         logger,
	}
}

// AcquireResult is the surfaced GIF plus the saved record when Save was requested.
type AcquireResult struct {
	Gif   providers.Result `json:"gif"`
	Saved *models.Gif      `json:"saved,omitempty"`
}

// Acquire finds a GIF unknown to the user: neither saved in the collection nor
// already surfaced in the given client session.
func (s *GifService) Acquire(ctx context.Context, userID string, req models.AcquireGifRequest) (*AcquireResult, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrInvalidQuery
	}

	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	known := user.GifURLs()

	key := sessionKey(userID, req.SessionID)
	if key != "" {
		seen, err := s.sessions.SeenURLs(ctx, key)
		if err != nil {
			return nil, err
		}
		for u := range seen {
			known[u] = struct{}{}
		}
	}

	res, err := s.acquirer.Acquire(ctx, req.Query, known, AcquireOptions{
		ContentFilter: req.ContentFilter,
		Locale:        req.Locale,
	})
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := s.sessions.MarkSeen(ctx, key, res.URL); err != nil {
			return nil, err
		}
	}

	out := &AcquireResult{Gif: *res}
	if req.Save {
		saved, err := s.userRepository.AppendGif(ctx, userID, models.Gif{URL: res.URL, Title: res.Title})
		if err != nil {
			return nil, err
		}
		out.Saved = saved
	}
	return out, nil
}

// Save stores a direct URL in the user's collection.
func (s *GifService) Save(ctx context.Context, userID, url, title string) (*models.Gif, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrInvalidURL
	}
	return s.userRepository.AppendGif(ctx, userID, models.Gif{URL: url, Title: strings.TrimSpace(title)})
}

// List returns the user's GIFs, newest first.
func (s *GifService) List(ctx context.Context, userID string) ([]models.Gif, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	gifs := slices.Clone(user.Gifs)
	if gifs == nil {
		gifs = []models.Gif{}
	}
	slices.SortStableFunc(gifs, func(a, b models.Gif) int {
		return b.DateAdded.Compare(a.DateAdded)
	})
	return gifs, nil
}

func (s *GifService) Delete(ctx context.Context, userID, gifID string) error {
	removed, err := s.userRepository.DeleteGif(ctx, userID, gifID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrGifNotFound
	}
	return nil
}

// Search is a plain provider search used by the browse page.
func (s *GifService) Search(ctx context.Context, query string, limit int) ([]providers.Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrInvalidQuery
	}
	return s.provider.Search(ctx, query, providers.SearchOptions{Limit: limit})
}

func sessionKey(userID, sessionID string) string {
	if sessionID == "" {
		return ""
	}
	return "acq:seen:" + userID + ":" + sessionID
}
