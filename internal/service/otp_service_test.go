package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	t.Run("six decimal digits", func(t *testing.T) {
		code, err := GenerateCode(6)
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.Regexp(t, `^\d{6}$`, code)
	})

	t.Run("codes vary across calls", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			code, err := GenerateCode(6)
			require.NoError(t, err)
			seen[code] = true
		}
		// 20 draws from a million combinations colliding down to one
		// value would mean a broken generator.
		assert.Greater(t, len(seen), 1)
	})

	t.Run("supports other lengths", func(t *testing.T) {
		code, err := GenerateCode(4)
		require.NoError(t, err)
		assert.Regexp(t, `^\d{4}$`, code)
	})
}
