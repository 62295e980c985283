package store

import (
	"errors"
	"sync"
	"time"
)

var (
	// ErrNotFound is returned when no live entry exists for a key.
	ErrNotFound = errors.New("no cached entry for key")
)

type entry[T any] struct {
	value   T
	savedAt time.Time
}

// MemoryStore is a concurrency-safe in-memory cache with count and age retention.
type MemoryStore[T any] struct {
	mu sync.RWMutex

	data  map[string]entry[T]
	order []string // insertion order, oldest first

	// retention configuration
	maxEntries int           // max number of entries (0 = unlimited)
	maxAge     time.Duration // max age of an entry (0 = unlimited)

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxEntries is <= 0, it is treated as unlimited.
func NewMemoryStore[T any](maxEntries int, maxAge time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{
		data:       make(map[string]entry[T]),
		maxEntries: maxEntries,
		maxAge:     maxAge,
		now:        time.Now,
	}
}

// Save stores value under key and enforces retention.
func (s *MemoryStore[T]) Save(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; ok {
		s.removeFromOrder(key)
	}
	s.data[key] = entry[T]{value: value, savedAt: s.now()}
	s.order = append(s.order, key)

	// Enforce retention by count.
	if s.maxEntries > 0 && len(s.order) > s.maxEntries {
		over := len(s.order) - s.maxEntries
		for _, k := range s.order[:over] {
			delete(s.data, k)
		}
		s.order = append([]string(nil), s.order[over:]...)
	}
}

// Get returns the entry for key, or ErrNotFound when it is missing or expired.
func (s *MemoryStore[T]) Get(key string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var zero T
	e, ok := s.data[key]
	if !ok || s.expired(e) {
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Purge drops expired entries and returns how many were removed.
func (s *MemoryStore[T]) Purge() int {
	if s.maxAge <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.order[:0]
	removed := 0
	for _, k := range s.order {
		if s.expired(s.data[k]) {
			delete(s.data, k)
			removed++
			continue
		}
		kept = append(kept, k)
	}
	s.order = kept
	return removed
}

// Clear drops every entry and returns how many there were.
func (s *MemoryStore[T]) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.data)
	s.data = make(map[string]entry[T])
	s.order = nil
	return n
}

// Len returns the number of stored entries, including expired ones not yet purged.
func (s *MemoryStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore[T]) expired(e entry[T]) bool {
	if s.maxAge <= 0 {
		return false
	}
	return s.now().Sub(e.savedAt) > s.maxAge
}

func (s *MemoryStore[T]) removeFromOrder(key string) {
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
