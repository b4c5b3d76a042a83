package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nearzy/internal/core/cache"
	"nearzy/internal/features/auth/domain"
)

const userKeyPrefix = "auth:"

// CacheUserStore implements ports.UserStore on the session store.
type CacheUserStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheUserStore creates a store whose sign-ins expire after ttl.
func NewCacheUserStore(c cache.Cache, ttl time.Duration) *CacheUserStore {
	return &CacheUserStore{cache: c, ttl: ttl}
}

// Save records user as signed in on sessionID.
func (s *CacheUserStore) Save(ctx context.Context, sessionID string, user *domain.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	if err := s.cache.Set(ctx, userKeyPrefix+sessionID, data, s.ttl); err != nil {
		return fmt.Errorf("failed to save user to cache: %w", err)
	}
	return nil
}

// Get returns the user signed in on sessionID.
func (s *CacheUserStore) Get(ctx context.Context, sessionID string) (*domain.User, error) {
	data, err := s.cache.Get(ctx, userKeyPrefix+sessionID)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user from cache: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}
	return &user, nil
}

// Delete signs sessionID out.
func (s *CacheUserStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.cache.Delete(ctx, userKeyPrefix+sessionID); err != nil {
		return fmt.Errorf("failed to delete user from cache: %w", err)
	}
	return nil
}
