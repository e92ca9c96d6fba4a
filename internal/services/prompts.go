package services

import (
	"context"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"github.com/anonto42/gif-feed/backend/internal/repositories"
)

type PromptService struct {
	promptRepository repositories.PromptRepository
	now              func() time.Time
}

func NewPromptService(promptRepo repositories.PromptRepository) *PromptService {
	return &PromptService{
		promptRepository: promptRepo,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *PromptService) List(ctx context.Context, userID string) ([]models.Prompt, error) {
	prompts, err := s.promptRepository.GetPromptsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if prompts == nil {
		prompts = []models.Prompt{}
	}
	return prompts, nil
}

func (s *PromptService) Create(ctx context.Context, userID string, req models.CreatePromptRequest) (*models.Prompt, error) {
	now := s.now()
	prompt := &models.Prompt{
		UserID:      userID,
		Title:       req.Title,
		SearchQuery: req.SearchQuery,
		CreatedAt:   now,
		LastUsed:    now,
	}
	if err := s.promptRepository.CreatePrompt(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// Update changes the provided fields and counts as a use of the prompt.
func (s *PromptService) Update(ctx context.Context, userID string, id uint, req models.UpdatePromptRequest) (*models.Prompt, error) {
	prompt, err := s.promptRepository.GetPrompt(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if req.Title != "" {
		prompt.Title = req.Title
	}
	if req.SearchQuery != "" {
		prompt.SearchQuery = req.SearchQuery
	}
	prompt.LastUsed = s.now()
	if err := s.promptRepository.UpdatePrompt(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// Use bumps lastUsed so the prompt moves to the top of the list.
func (s *PromptService) Use(ctx context.Context, userID string, id uint) (*models.Prompt, error) {
	prompt, err := s.promptRepository.GetPrompt(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	prompt.LastUsed = s.now()
	if err := s.promptRepository.UpdatePrompt(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

func (s *PromptService) Delete(ctx context.Context, userID string, id uint) error {
	return s.promptRepository.DeletePrompt(ctx, id, userID)
}
