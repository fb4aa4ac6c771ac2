// Package redisstore keeps pending feedback in Redis so several server
// replicas can share tokens.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// DefaultPrefix namespaces feedback keys.
const DefaultPrefix = "feedback:"

// Store implements domain.FeedbackStore on Redis. Put uses SET NX and Take uses
// GETDEL, so a token is redeemable at most once across processes.
type Store struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

var _ domain.FeedbackStore = (*Store)(nil)

// New wraps rdb. A zero ttl stores keys without expiry.
func New(rdb redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{rdb: rdb, prefix: DefaultPrefix, ttl: ttl, now: time.Now}
}

// NewFromURL parses a redis:// URL and returns a store plus the client so the
// caller can close it.
func NewFromURL(url string, ttl time.Duration) (*Store, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("op=redisstore.NewFromURL: %w", err)
	}
	rdb := redis.NewClient(opts)
	return New(rdb, ttl), rdb, nil
}

func (s *Store) key(token string) string { return s.prefix + token }

// Put stores entry unless the token already exists.
func (s *Store) Put(ctx context.Context, entry domain.PendingFeedback) error {
	if entry.Token == "" {
		return fmt.Errorf("op=redisstore.Put: %w: empty token", domain.ErrInvalidArgument)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("op=redisstore.Put: %w", err)
	}
	ok, err := s.rdb.SetNX(ctx, s.key(entry.Token), payload, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("op=redisstore.Put: %w", err)
	}
	if !ok {
		return fmt.Errorf("op=redisstore.Put: %w", domain.ErrConflict)
	}
	return nil
}

// Take atomically fetches and deletes the entry under token.
func (s *Store) Take(ctx context.Context, token string) (domain.PendingFeedback, error) {
	raw, err := s.rdb.GetDel(ctx, s.key(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.PendingFeedback{}, fmt.Errorf("op=redisstore.Take: %w", domain.ErrNotFound)
	}
	if err != nil {
		return domain.PendingFeedback{}, fmt.Errorf("op=redisstore.Take: %w", err)
	}
	var entry domain.PendingFeedback
	if err := json.Unmarshal(raw, &entry); err != nil {
		return domain.PendingFeedback{}, fmt.Errorf("op=redisstore.Take: decode: %w", err)
	}
	return entry, nil
}

// Len counts keys under the prefix with SCAN.
func (s *Store) Len(ctx context.Context) (int, error) {
	n := 0
	err := s.scan(ctx, func(keys []string) error {
		n += len(keys)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("op=redisstore.Len: %w", err)
	}
	return n, nil
}

// Clear deletes every key under the prefix.
func (s *Store) Clear(ctx context.Context) error {
	err := s.scan(ctx, func(keys []string) error {
		return s.rdb.Del(ctx, keys...).Err()
	})
	if err != nil {
		return fmt.Errorf("op=redisstore.Clear: %w", err)
	}
	return nil
}

// Ping checks connectivity for readiness probes.
func (s *Store) Ping(ctx context.Context) error { return s.rdb.Ping(ctx).Err() }

func (s *Store) scan(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
