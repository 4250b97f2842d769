package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/harmonymatch/admin-gateway/internal/console"
	"github.com/harmonymatch/admin-gateway/internal/models"
)

// Store keeps one console state per operator. Get returns
// models.ErrSessionNotFound when the operator has no live session; callers
// decide whether that means "start fresh" or "complain".
type Store interface {
	Get(ctx context.Context, operator string) (*console.State, error)
	Put(ctx context.Context, operator string, state *console.State) error
	Delete(ctx context.Context, operator string) error
}

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// MemoryStore is the single-replica default. States are held JSON-encoded,
// like the redis store, so every Get hands back a private copy and two
// in-flight requests for the same operator never share mutable state.
// Expired entries are removed on read and in a background sweep.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	done    chan struct{}
	once    sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

func (s *MemoryStore) Get(ctx context.Context, operator string) (*console.State, error) {
	s.mu.RLock()
	entry, ok := s.entries[operator]
	s.mu.RUnlock()

	if !ok {
		return nil, models.ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		// Recheck: a Put may have refreshed the entry in between.
		if current, still := s.entries[operator]; still && time.Now().After(current.expiresAt) {
			delete(s.entries, operator)
		}
		s.mu.Unlock()
		return nil, models.ErrSessionNotFound
	}

	var state console.State
	if err := json.Unmarshal(entry.raw, &state); err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	return &state, nil
}

func (s *MemoryStore) Put(ctx context.Context, operator string, state *console.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}

	s.mu.Lock()
	s.entries[operator] = memoryEntry{raw: raw, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, operator string) error {
	s.mu.Lock()
	delete(s.entries, operator)
	s.mu.Unlock()
	return nil
}

// Close stops the sweep goroutine.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for operator, entry := range s.entries {
				if now.After(entry.expiresAt) {
					delete(s.entries, operator)
				}
			}
			s.mu.Unlock()
		}
	}
}
