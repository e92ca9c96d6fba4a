package repositories

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/gif-feed/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepository is an arena-style UserRepository: user id -> owned
// document. It backs local runs without MONGO_URI and the service tests.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*models.User
	now   func() time.Time
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]*models.User),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the clock used to stamp saved GIFs.
func (r *MemoryUserRepository) WithClock(now func() time.Time) *MemoryUserRepository {
	r.now = now
	return r
}

func (r *MemoryUserRepository) FindUserByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) FindUsersByIDs(_ context.Context, ids []string) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if u, ok := r.users[id]; ok {
			users = append(users, *cloneUser(u))
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) UpsertUser(_ context.Context, id, name, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for otherID, other := range r.users {
		if otherID != id && strings.EqualFold(other.Email, email) {
			return nil, ErrEmailTaken
		}
	}

	u, ok := r.users[id]
	if !ok {
		u = &models.User{ID: id, Gifs: []models.Gif{}, Following: []string{}}
		r.users[id] = u
	}
	u.Name = name
	u.Email = email
	return cloneUser(u), nil
}

func (r *MemoryUserRepository) SearchUsers(_ context.Context, query string, limit int64) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var users []models.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.Name), q) || strings.Contains(strings.ToLower(u.Email), q) {
			c := cloneUser(u)
			c.Gifs = nil
			users = append(users, *c)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	if limit > 0 && int64(len(users)) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r *MemoryUserRepository) AppendGif(_ context.Context, userID string, gif models.Gif) (*models.Gif, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if gif.ID.IsZero() {
		gif.ID = primitive.NewObjectID()
	}
	if gif.DateAdded.IsZero() {
		gif.DateAdded = r.now()
	}
	u.Gifs = append(u.Gifs, gif)
	return &gif, nil
}

func (r *MemoryUserRepository) DeleteGif(_ context.Context, userID, gifID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return false, ErrUserNotFound
	}
	objID, err := primitive.ObjectIDFromHex(gifID)
	if err != nil {
		return false, nil
	}
	idx := slices.IndexFunc(u.Gifs, func(g models.Gif) bool { return g.ID == objID })
	if idx < 0 {
		return false, nil
	}
	u.Gifs = slices.Delete(u.Gifs, idx, idx+1)
	return true, nil
}

func (r *MemoryUserRepository) AddFollow(_ context.Context, userID, targetID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return false, ErrUserNotFound
	}
	if slices.Contains(u.Following, targetID) {
		return false, nil
	}
	u.Following = append(u.Following, targetID)
	return true, nil
}

func (r *MemoryUserRepository) RemoveFollow(_ context.Context, userID, targetID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return false, ErrUserNotFound
	}
	idx := slices.Index(u.Following, targetID)
	if idx < 0 {
		return false, nil
	}
	u.Following = slices.Delete(u.Following, idx, idx+1)
	return true, nil
}

// DeleteUser drops a whole document; follow edges pointing at it are left dangling.
func (r *MemoryUserRepository) DeleteUser(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func cloneUser(u *models.User) *models.User {
	c := *u
	c.Gifs = slices.Clone(u.Gifs)
	c.Following = slices.Clone(u.Following)
	return &c
}
