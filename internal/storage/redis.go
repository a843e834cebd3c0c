package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Keys for the two values that survive restarts: the restaurant scope and the
// last issued session token.
const (
	scopeKey        = "reservepro:restaurant_name"
	sessionTokenKey = "reservepro:session_token"

	tokenPrefix = "reservepro:token:"
)

// ScopeStore persists the restaurant scope string under a fixed key. Read at
// startup, written on sign-in, cleared on sign-out.
type ScopeStore struct {
	Client *redis.Client
}

func NewScopeStore(client *redis.Client) *ScopeStore {
	return &ScopeStore{Client: client}
}

func (s *ScopeStore) Save(ctx context.Context, restaurantName string) error {
	return s.Client.Set(ctx, scopeKey, restaurantName, 0).Err()
}

func (s *ScopeStore) Load(ctx context.Context) (string, error) {
	val, err := s.Client.Get(ctx, scopeKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *ScopeStore) Clear(ctx context.Context) error {
	return s.Client.Del(ctx, scopeKey).Err()
}

// TokenStore tracks issued session tokens so sign-out can revoke them, and
// remembers the current token for startup auth restore.
type TokenStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewTokenStore(client *redis.Client, ttl time.Duration) *TokenStore {
	return &TokenStore{Client: client, TTL: ttl}
}

func (s *TokenStore) Issue(ctx context.Context, token string) error {
	if err := s.Client.Set(ctx, tokenPrefix+token, "1", s.TTL).Err(); err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionTokenKey, token, s.TTL).Err()
}

func (s *TokenStore) Valid(ctx context.Context, token string) (bool, error) {
	res, err := s.Client.Exists(ctx, tokenPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

// Current returns the persisted session token, empty when none survives.
func (s *TokenStore) Current(ctx context.Context) (string, error) {
	val, err := s.Client.Get(ctx, sessionTokenKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *TokenStore) Revoke(ctx context.Context, token string) error {
	if err := s.Client.Del(ctx, tokenPrefix+token).Err(); err != nil {
		return err
	}
	return s.Client.Del(ctx, sessionTokenKey).Err()
}
