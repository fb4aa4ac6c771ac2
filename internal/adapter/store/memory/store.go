// Package memory provides the in-process pending-feedback store.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fairyhunter13/resume-scorer/internal/domain"
)

// Option configures a Store.
type Option func(*Store)

// WithTTL expires entries older than ttl. Zero disables expiry.
func WithTTL(ttl time.Duration) Option { return func(s *Store) { s.ttl = ttl } }

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option { return func(s *Store) { s.now = now } }

// Store is a mutex-guarded map of token to pending feedback.
// Entries live until taken, or until a sweep removes them when a TTL is set.
type Store struct {
	mu      sync.Mutex
	entries map[string]domain.PendingFeedback
	ttl     time.Duration
	now     func() time.Time
}

var _ domain.FeedbackStore = (*Store)(nil)

// New builds an empty store.
func New(opts ...Option) *Store {
	s := &Store{entries: make(map[string]domain.PendingFeedback), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Put inserts entry. A token that is already present yields ErrConflict.
func (s *Store) Put(_ context.Context, entry domain.PendingFeedback) error {
	if entry.Token == "" {
		return fmt.Errorf("op=memory.Put: %w: empty token", domain.ErrInvalidArgument)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.Token]; ok {
		return fmt.Errorf("op=memory.Put: %w", domain.ErrConflict)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	s.entries[entry.Token] = entry
	return nil
}

// Take removes and returns the entry under token.
func (s *Store) Take(_ context.Context, token string) (domain.PendingFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return domain.PendingFeedback{}, fmt.Errorf("op=memory.Take: %w", domain.ErrNotFound)
	}
	delete(s.entries, token)
	if s.expired(entry, s.now()) {
		return domain.PendingFeedback{}, fmt.Errorf("op=memory.Take: %w", domain.ErrNotFound)
	}
	return entry, nil
}

// Len reports the number of pending entries, expired ones included until swept.
func (s *Store) Len(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries), nil
}

// Clear drops every entry.
func (s *Store) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]domain.PendingFeedback)
	return nil
}

// Sweep removes entries expired at now and returns how many were dropped.
func (s *Store) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, token)
			removed++
		}
	}
	return removed
}

// RunPeriodic sweeps every interval until ctx is done. It returns at once when
// no TTL is configured.
func (s *Store) RunPeriodic(ctx context.Context, interval time.Duration) {
	if s.ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("feedback sweeper stopping")
			return
		case <-ticker.C:
			if n := s.Sweep(s.now()); n > 0 {
				slog.Info("expired pending feedback swept", slog.Int("removed", n))
			}
		}
	}
}

func (s *Store) expired(e domain.PendingFeedback, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.CreatedAt) >= s.ttl
}
