package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"librarylens/pkg/jwt"

	"github.com/redis/go-redis/v9"
)

// TokenStore tracks issued tokens so they can be revoked before they expire.
type TokenStore interface {
	Store(ctx context.Context, tokenType jwt.TokenType, userID int, tokenID string, ttl time.Duration) error
	Exists(ctx context.Context, tokenType jwt.TokenType, userID int, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenType jwt.TokenType, tokenID string) error
	RevokeAll(ctx context.Context, userID int) error
}

func tokenKey(tokenType jwt.TokenType, userID, tokenID string) string {
	return fmt.Sprintf("%s_token:%s:%s", tokenType, userID, tokenID)
}

type redisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) TokenStore {
	return &redisTokenStore{client: client}
}

func (s *redisTokenStore) Store(ctx context.Context, tokenType jwt.TokenType, userID int, tokenID string, ttl time.Duration) error {
	key := tokenKey(tokenType, fmt.Sprint(userID), tokenID)
	return s.client.Set(ctx, key, "valid", ttl).Err()
}

func (s *redisTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID int, tokenID string) (bool, error) {
	key := tokenKey(tokenType, fmt.Sprint(userID), tokenID)
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, tokenID string) error {
	return s.deleteMatching(ctx, tokenKey(tokenType, "*", tokenID))
}

func (s *redisTokenStore) RevokeAll(ctx context.Context, userID int) error {
	uid := fmt.Sprint(userID)
	if err := s.deleteMatching(ctx, tokenKey(jwt.AccessToken, uid, "*")); err != nil {
		return err
	}
	return s.deleteMatching(ctx, tokenKey(jwt.RefreshToken, uid, "*"))
}

func (s *redisTokenStore) deleteMatching(ctx context.Context, pattern string) error {
	iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// memoryTokenStore keeps tokens in process memory for single-node setups
// running without Redis.
type memoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	now    func() time.Time
}

func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{
		tokens: make(map[string]time.Time),
		now:    time.Now,
	}
}

func (s *memoryTokenStore) Store(ctx context.Context, tokenType jwt.TokenType, userID int, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenKey(tokenType, fmt.Sprint(userID), tokenID)] = s.now().Add(ttl)
	return nil
}

func (s *memoryTokenStore) Exists(ctx context.Context, tokenType jwt.TokenType, userID int, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tokenKey(tokenType, fmt.Sprint(userID), tokenID)
	expiresAt, ok := s.tokens[key]
	if !ok {
		return false, nil
	}
	if !s.now().Before(expiresAt) {
		delete(s.tokens, key)
		return false, nil
	}
	return true, nil
}

func (s *memoryTokenStore) Revoke(ctx context.Context, tokenType jwt.TokenType, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := string(tokenType) + "_token:"
	suffix := ":" + tokenID
	for key := range s.tokens {
		if strings.HasPrefix(key, prefix) && strings.HasSuffix(key, suffix) {
			delete(s.tokens, key)
		}
	}
	return nil
}

func (s *memoryTokenStore) RevokeAll(ctx context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := fmt.Sprint(userID)
	for key := range s.tokens {
		if strings.HasPrefix(key, tokenKey(jwt.AccessToken, uid, "")) || strings.HasPrefix(key, tokenKey(jwt.RefreshToken, uid, "")) {
			delete(s.tokens, key)
		}
	}
	return nil
}
