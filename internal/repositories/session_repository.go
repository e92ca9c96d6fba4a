package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore remembers which URLs were already surfaced to a client session.
type SessionStore interface {
	SeenURLs(ctx context.Context, key string) (map[string]struct{}, error)
	MarkSeen(ctx context.Context, key, url string) error
}

// RedisSessionStore keeps one SET per session key, refreshed on every write.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(rdb *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb, ttl: ttl}
}

func (s *RedisSessionStore) SeenURLs(ctx context.Context, key string) (map[string]struct{}, error) {
	members, err := s.rdb.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	urls := make(map[string]struct{}, len(members))
	for _, m := range members {
		urls[m] = struct{}{}
	}
	return urls, nil
}

func (s *RedisSessionStore) MarkSeen(ctx context.Context, key, url string) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, key, url)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	return err
}

// MemorySessionStore is the in-process SessionStore.
type MemorySessionStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*memorySession
	now      func() time.Time
}

type memorySession struct {
	urls      map[string]struct{}
	expiresAt time.Time
}

func NewMemorySessionStore(ttl time.Duration) *MemorySessionStore {
	return &MemorySessionStore{
		ttl:      ttl,
		sessions: make(map[string]*memorySession),
		now:      time.Now,
	}
}

func (s *MemorySessionStore) SeenURLs(_ context.Context, key string) (map[string]struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(key)
	urls := make(map[string]struct{})
	if sess != nil {
		for u := range sess.urls {
			urls[u] = struct{}{}
		}
	}
	return urls, nil
}

func (s *MemorySessionStore) MarkSeen(_ context.Context, key, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(key)
	if sess == nil {
		sess = &memorySession{urls: make(map[string]struct{})}
		s.sessions[key] = sess
	}
	sess.urls[url] = struct{}{}
	sess.expiresAt = s.now().Add(s.ttl)
	return nil
}

// live returns the session for key, dropping it when expired. Caller holds mu.
func (s *MemorySessionStore) live(key string) *memorySession {
	sess, ok := s.sessions[key]
	if !ok {
		return nil
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, key)
		return nil
	}
	return sess
}
