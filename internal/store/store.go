package store

import (
	"context"
	"sync"
	"time"
)

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for seeding.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Store owns the shop state for the lifetime of the process. Handlers receive it
// explicitly; there is no package-level instance.
type Store struct {
	mu    sync.RWMutex
	state *State
	clock func() time.Time
}

// New returns a freshly seeded store.
func New(opts ...Option) *Store {
	s := &Store{clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.state = Seed(s.now())
	return s
}

// Now returns the store clock's current time in UTC.
func (s *Store) Now() time.Time {
	return s.now()
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

// View runs fn against the live state under a read lock. fn must not mutate it.
func (s *Store) View(ctx context.Context, fn func(st *State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// WithTx runs fn against a private copy of the state under the write lock and
// publishes the copy only when fn returns nil. A failing fn leaves no trace.
func (s *Store) WithTx(ctx context.Context, fn func(tx *State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.Clone()
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx
	return nil
}

// Reset replaces the whole state with a fresh seed and returns a copy of it.
func (s *Store) Reset(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fresh := Seed(s.now())
	s.mu.Lock()
	s.state = fresh
	s.mu.Unlock()
	return fresh.Clone(), nil
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}
