package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SaveGet(t *testing.T) {
	s := NewMemoryStore[string](0, 0)

	_, err := s.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	s.Save("a", "alpha")
	v, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "alpha", v)

	s.Save("a", "again")
	v, err = s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "again", v)
	assert.Equal(t, 1, s.Len())
}

// TestMemoryStore_MaxEntries verifies that the oldest entry is evicted first and
// that re-saving a key makes it the newest.
func TestMemoryStore_MaxEntries(t *testing.T) {
	s := NewMemoryStore[int](2, 0)
	s.Save("a", 1)
	s.Save("b", 2)
	s.Save("a", 10) // refreshes "a", so "b" becomes the oldest
	s.Save("c", 3)

	assert.Equal(t, 2, s.Len())
	_, err := s.Get("b")
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestMemoryStore_MaxAgeAndPurge(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore[int](0, time.Hour)
	s.now = func() time.Time { return now }

	s.Save("old", 1)
	now = now.Add(30 * time.Minute)
	s.Save("new", 2)
	now = now.Add(45 * time.Minute)

	_, err := s.Get("old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get("new")
	assert.NoError(t, err)

	assert.Equal(t, 1, s.Purge())
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore[int](0, 0)
	s.Save("a", 1)
	s.Save("b", 2)
	assert.Equal(t, 2, s.Clear())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.Purge())
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := NewMemoryStore[int](50, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := string(rune('a' + (i+j)%26))
				s.Save(key, j)
				_, _ = s.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, s.Len(), 26)
}
