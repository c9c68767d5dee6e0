package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/serroba/short-links/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Set(t *testing.T) {
	t.Run("sets value successfully", func(t *testing.T) {
		s := store.NewMemoryStore()

		err := s.Set(context.Background(), "abc123", `{"longUrl":"https://example.com"}`)

		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("overwrites existing value", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Set(context.Background(), "abc123", "first")

		err := s.Set(context.Background(), "abc123", "second")
		require.NoError(t, err)

		value, _ := s.Get(context.Background(), "abc123")
		assert.Equal(t, "second", value)
		assert.Equal(t, 1, s.Len())
	})

	t.Run("is safe for concurrent writers", func(t *testing.T) {
		s := store.NewMemoryStore()

		var wg sync.WaitGroup

		for i := range 20 {
			wg.Add(1)

			go func() {
				defer wg.Done()

				_ = s.Set(context.Background(), "dup", fmt.Sprintf("value-%d", i))
			}()
		}

		wg.Wait()

		value, err := s.Get(context.Background(), "dup")
		require.NoError(t, err)
		assert.Contains(t, value, "value-")
	})
}

func TestMemoryStore_Get(t *testing.T) {
	t.Run("returns value when found", func(t *testing.T) {
		s := store.NewMemoryStore()
		_ = s.Set(context.Background(), "abc123", "stored")

		value, err := s.Get(context.Background(), "abc123")

		require.NoError(t, err)
		assert.Equal(t, "stored", value)
	})

	t.Run("returns ErrNotFound when key does not exist", func(t *testing.T) {
		s := store.NewMemoryStore()

		value, err := s.Get(context.Background(), "notfound")

		assert.Empty(t, value)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestMemoryStore_Snapshot(t *testing.T) {
	s := store.NewMemoryStore()
	_ = s.Set(context.Background(), "a", "1")

	snapshot := s.Snapshot()
	snapshot["b"] = "2"

	assert.Equal(t, map[string]string{"a": "1"}, s.Snapshot())
}
