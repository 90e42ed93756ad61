package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU(t *testing.T) {
	c, err := NewLRU(2)
	require.NoError(t, err)

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, c.Set("a", "1"))
		value, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, "1", value)
		assert.True(t, c.Has("a"))
	})

	t.Run("Del ignores missing keys", func(t *testing.T) {
		require.NoError(t, c.Del("a", "missing"))
		assert.False(t, c.Has("a"))
	})

	t.Run("Evicts least recently used", func(t *testing.T) {
		require.NoError(t, c.Set("x", "1"))
		require.NoError(t, c.Set("y", "2"))
		c.Get("x")
		require.NoError(t, c.Set("z", "3"))

		assert.True(t, c.Has("x"))
		assert.False(t, c.Has("y"))
		assert.True(t, c.Has("z"))
		assert.Equal(t, 2, c.Len())
	})
}
