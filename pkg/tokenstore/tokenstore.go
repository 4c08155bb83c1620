package tokenstore

import (
	"sync"
	"time"
)

// entry wraps a stored value with its lifecycle state. Only the revoked
// flag is ever mutated after creation.
type entry[T any] struct {
	Value     T
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}

func (e *entry[T]) dead(now time.Time) bool {
	return e.Revoked || now.After(e.ExpiresAt)
}

// Store is a thread-safe in-memory keyed store with per-entry TTL and
// revocation. Expired or revoked entries are removed lazily on Get and
// eagerly by a periodic background sweep.
type Store[T any] struct {
	entries       map[string]*entry[T]
	mu            sync.RWMutex
	sweepInterval time.Duration
	stopSweep     chan struct{}
	stopOnce      sync.Once
}

// New creates a store and starts its background sweep goroutine.
func New[T any](sweepInterval time.Duration) *Store[T] {
	s := &Store[T]{
		entries:       make(map[string]*entry[T]),
		sweepInterval: sweepInterval,
		stopSweep:     make(chan struct{}),
	}

	go s.run()

	return s
}

// Put inserts or overwrites the entry for key.
func (s *Store[T]) Put(key string, value T, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &entry[T]{
		Value:     value,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

// Get returns the value for key. A missing, expired or revoked entry
// reports false; expired and revoked entries are deleted as a side effect.
func (s *Store[T]) Get(key string) (T, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	e, exists := s.entries[key]
	if !exists {
		return zero, false
	}

	if e.dead(time.Now()) {
		delete(s.entries, key)
		return zero, false
	}

	return e.Value, true
}

// Revoke marks the entry for key revoked and reports whether a live entry
// existed. An absent, expired or already-revoked key returns false, so a
// second Revoke of the same key is always false.
func (s *Store[T]) Revoke(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, exists := s.entries[key]
	if !exists {
		return false
	}
	if e.dead(time.Now()) {
		delete(s.entries, key)
		return false
	}

	e.Revoked = true
	return true
}

// RevokeWhere marks every live entry matching pred revoked and returns the
// number affected.
func (s *Store[T]) RevokeWhere(pred func(value T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, e := range s.entries {
		if !e.Revoked && pred(e.Value) {
			e.Revoked = true
			count++
		}
	}
	return count
}

// Sweep deletes all expired or revoked entries.
func (s *Store[T]) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if e.dead(now) {
			delete(s.entries, key)
		}
	}
}

// Len returns the number of entries currently held, dead or alive.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// run sweeps on a fixed interval until Stop is called.
func (s *Store[T]) run() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stopSweep:
			return
		}
	}
}

// Stop halts the background sweep goroutine. Safe to call more than once.
func (s *Store[T]) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopSweep)
	})
}
