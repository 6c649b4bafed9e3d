// Package tags stores per-user saved filter snapshots. A user's tags live in
// one Redis key as a JSON list; writes are last-writer-wins.
package tags

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"company-search/internal/common/logger"
)

const keyPrefix = "tags:"

// Tag is one saved filter list entry.
type Tag struct {
	ID             string                 `json:"id"`
	Name           string                 `json:"name"`
	FilterSnapshot map[string]interface{} `json:"filter_snapshot"`
}

// Store is the Redis-backed tag repository.
type Store struct {
	client *redis.Client
	logger logger.Logger
}

func NewStore(client *redis.Client, log logger.Logger) *Store {
	return &Store{
		client: client,
		logger: log.With(map[string]interface{}{"component": "tags"}),
	}
}

func userKey(userID string) string {
	return keyPrefix + userID
}

// List returns a user's tags; a user with no tags gets an empty list.
func (s *Store) List(ctx context.Context, userID string) ([]Tag, error) {
	return s.load(ctx, userID)
}

// Create appends a new tag with a generated id and stores the list back.
func (s *Store) Create(ctx context.Context, userID, name string, snapshot map[string]interface{}) (Tag, error) {
	existing, err := s.load(ctx, userID)
	if err != nil {
		return Tag{}, err
	}

	if snapshot == nil {
		snapshot = map[string]interface{}{}
	}
	tag := Tag{
		ID:             uuid.NewString(),
		Name:           name,
		FilterSnapshot: snapshot,
	}
	if err := s.save(ctx, userID, append(existing, tag)); err != nil {
		return Tag{}, err
	}
	return tag, nil
}

// Delete removes one tag by id. The boolean reports whether it existed.
func (s *Store) Delete(ctx context.Context, userID, tagID string) (bool, error) {
	existing, err := s.load(ctx, userID)
	if err != nil {
		return false, err
	}

	remaining := existing[:0]
	for _, t := range existing {
		if t.ID != tagID {
			remaining = append(remaining, t)
		}
	}
	if len(remaining) == len(existing) {
		return false, nil
	}
	if err := s.save(ctx, userID, remaining); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) load(ctx context.Context, userID string) ([]Tag, error) {
	raw, err := s.client.Get(ctx, userKey(userID)).Result()
	if err == redis.Nil {
		return []Tag{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tags for %q: %w", userID, err)
	}

	var out []Tag
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		// A corrupt value should not brick the user's tag list.
		s.logger.Warn("discarding unreadable tag list", map[string]interface{}{
			"userId": userID,
			"error":  err.Error(),
		})
		return []Tag{}, nil
	}
	return out, nil
}

func (s *Store) save(ctx context.Context, userID string, list []Tag) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode tags for %q: %w", userID, err)
	}
	if err := s.client.Set(ctx, userKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("save tags for %q: %w", userID, err)
	}
	return nil
}
