// Package session keeps a single denormalized "current user" snapshot in a
// plain key-value cache outside the structured store. The snapshot only
// bootstraps the UI before the store finishes opening; it is never
// authoritative and must be reconciled against the users collection on load.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/omar-ahmed2/ELKAWERA-main-sub000/club/store"
	"github.com/omar-ahmed2/ELKAWERA-main-sub000/shared/models"
)

// CurrentUserKey is where the snapshot lives in the key-value cache.
const CurrentUserKey = "elkawera:session:current_user"

// Snapshot stores and loads the current-user snapshot.
type Snapshot struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSnapshot creates a snapshot cache with the given TTL.
func NewSnapshot(rdb *redis.Client, ttl time.Duration) *Snapshot {
	return &Snapshot{rdb: rdb, ttl: ttl}
}

// Save caches the user as the device's current user.
func (s *Snapshot) Save(ctx context.Context, user *models.User) error {
	doc, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session snapshot: %w", err)
	}
	if err := s.rdb.Set(ctx, CurrentUserKey, doc, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session snapshot: %w", err)
	}
	return nil
}

// Load returns the cached snapshot, or nil when none is cached.
func (s *Snapshot) Load(ctx context.Context) (*models.User, error) {
	doc, err := s.rdb.Get(ctx, CurrentUserKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session snapshot: %w", err)
	}
	var user models.User
	if err := json.Unmarshal(doc, &user); err != nil {
		return nil, fmt.Errorf("failed to decode session snapshot: %w", err)
	}
	return &user, nil
}

// Clear drops the snapshot. Clearing an absent snapshot succeeds.
func (s *Snapshot) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, CurrentUserKey).Err(); err != nil {
		return fmt.Errorf("failed to clear session snapshot: %w", err)
	}
	return nil
}

// Reconcile resolves the snapshot against the users collection: the stored
// user record wins whenever it exists, and the snapshot is refreshed to
// match. A snapshot pointing at a user the store no longer has is dropped.
func (s *Snapshot) Reconcile(ctx context.Context, engine *store.Engine) (*models.User, error) {
	cached, err := s.Load(ctx)
	if err != nil || cached == nil {
		return nil, err
	}

	user, err := store.Get[models.User](ctx, engine, store.Users, cached.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile session snapshot: %w", err)
	}
	if user == nil {
		log.Printf("INFO: Session snapshot for user %s no longer matches the store; clearing it.", cached.ID)
		if err := s.Clear(ctx); err != nil {
			log.Printf("WARN: Failed to clear stale session snapshot: %v", err)
		}
		return nil, nil
	}

	if err := s.Save(ctx, user); err != nil {
		log.Printf("WARN: Failed to refresh session snapshot for user %s: %v", user.ID, err)
	}
	return user, nil
}
