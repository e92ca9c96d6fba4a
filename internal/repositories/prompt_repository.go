package repositories

import (
	"context"
	"errors"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"gorm.io/gorm"
)

var ErrPromptNotFound = errors.New("prompt not found")

// PromptRepository defines the interface for saved prompt operations.
// Every method is scoped to the owning user.
type PromptRepository interface {
	CreatePrompt(ctx context.Context, prompt *models.Prompt) error
	GetPromptsByUserID(ctx context.Context, userID string) ([]models.Prompt, error)
	GetPrompt(ctx context.Context, id uint, userID string) (*models.Prompt, error)
	UpdatePrompt(ctx context.Context, prompt *models.Prompt) error
	DeletePrompt(ctx context.Context, id uint, userID string) error
}

// PostgresPromptRepository implements PromptRepository for PostgreSQL
type PostgresPromptRepository struct {
	db *gorm.DB
}

// NewPostgresPromptRepository creates a new PostgresPromptRepository
func NewPostgresPromptRepository(db *gorm.DB) *PostgresPromptRepository {
	return &PostgresPromptRepository{db: db}
}

func (r *PostgresPromptRepository) CreatePrompt(ctx context.Context, prompt *models.Prompt) error {
	return r.db.WithContext(ctx).Create(prompt).Error
}

// GetPromptsByUserID lists the user's prompts, most recently used first.
func (r *PostgresPromptRepository) GetPromptsByUserID(ctx context.Context, userID string) ([]models.Prompt, error) {
	var prompts []models.Prompt
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("last_used DESC").Order("id DESC").Find(&prompts).Error
	return prompts, err
}

func (r *PostgresPromptRepository) GetPrompt(ctx context.Context, id uint, userID string) (*models.Prompt, error) {
	var prompt models.Prompt
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&prompt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return &prompt, nil
}

func (r *PostgresPromptRepository) UpdatePrompt(ctx context.Context, prompt *models.Prompt) error {
	return r.db.WithContext(ctx).Save(prompt).Error
}

func (r *PostgresPromptRepository) DeletePrompt(ctx context.Context, id uint, userID string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.Prompt{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPromptNotFound
	}
	return nil
}

// MemoryPromptRepository keeps prompts in process when no PostgreSQL is configured.
type MemoryPromptRepository struct {
	mu      sync.Mutex
	nextID  uint
	prompts map[uint]models.Prompt
}

func NewMemoryPromptRepository() *MemoryPromptRepository {
	return &MemoryPromptRepository{prompts: make(map[uint]models.Prompt)}
}

func (r *MemoryPromptRepository) CreatePrompt(_ context.Context, prompt *models.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	prompt.ID = r.nextID
	now := time.Now().UTC()
	if prompt.CreatedAt.IsZero() {
		prompt.CreatedAt = now
	}
	if prompt.LastUsed.IsZero() {
		prompt.LastUsed = now
	}
	r.prompts[prompt.ID] = *prompt
	return nil
}

func (r *MemoryPromptRepository) GetPromptsByUserID(_ context.Context, userID string) ([]models.Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var prompts []models.Prompt
	for _, p := range r.prompts {
		if p.UserID == userID {
			prompts = append(prompts, p)
		}
	}
	sort.Slice(prompts, func(i, j int) bool {
		if !prompts[i].LastUsed.Equal(prompts[j].LastUsed) {
			return prompts[i].LastUsed.After(prompts[j].LastUsed)
		}
		return prompts[i].ID > prompts[j].ID
	})
	return slices.Clip(prompts), nil
}

func (r *MemoryPromptRepository) GetPrompt(_ context.Context, id uint, userID string) (*models.Prompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prompts[id]
	if !ok || p.UserID != userID {
		return nil, ErrPromptNotFound
	}
	return &p, nil
}

func (r *MemoryPromptRepository) UpdatePrompt(_ context.Context, prompt *models.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.prompts[prompt.ID]; !ok {
		return ErrPromptNotFound
	}
	r.prompts[prompt.ID] = *prompt
	return nil
}

func (r *MemoryPromptRepository) DeletePrompt(_ context.Context, id uint, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.prompts[id]
	if !ok || p.UserID != userID {
		return ErrPromptNotFound
	}
	delete(r.prompts, id)
	return nil
}
