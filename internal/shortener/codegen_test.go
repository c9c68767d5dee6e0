package shortener_test

import (
	"regexp"
	"testing"

	"github.com/serroba/short-links/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var generatedCodePattern = regexp.MustCompile(`^[a-z0-9]{6}$`)

func TestNewRandomCodeGenerator(t *testing.T) {
	t.Run("generates six character lowercase alphanumeric codes", func(t *testing.T) {
		gen, err := shortener.NewRandomCodeGenerator(shortener.DefaultCodeLength)
		require.NoError(t, err)

		for range 100 {
			assert.Regexp(t, generatedCodePattern, gen())
		}
	})

	t.Run("respects custom length", func(t *testing.T) {
		gen, err := shortener.NewRandomCodeGenerator(10)
		require.NoError(t, err)

		assert.Len(t, gen(), 10)
	})

	t.Run("draws different codes", func(t *testing.T) {
		gen, err := shortener.NewRandomCodeGenerator(shortener.DefaultCodeLength)
		require.NoError(t, err)

		seen := make(map[string]struct{})
		for range 50 {
			seen[gen()] = struct{}{}
		}

		assert.Greater(t, len(seen), 1)
	})

	t.Run("rejects invalid length", func(t *testing.T) {
		_, err := shortener.NewRandomCodeGenerator(0)

		assert.Error(t, err)
	})
}
