package lru

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	for _, size := range []int{0, -1} {
		c, err := New(size)
		require.NoError(t, err)

		c.Put("mailinator.com", true)
		v, ok := c.Get("mailinator.com")
		assert.False(t, ok)
		assert.False(t, v)
		assert.Equal(t, 0, c.Len())
		c.Purge()
		assert.Zero(t, c.Stats())
	}
}

func TestVerdictCache_HitsMisses(t *testing.T) {
	c, err := New(4)
	require.NoError(t, err)

	_, ok := c.Get("mailinator.com")
	assert.False(t, ok)

	c.Put("mailinator.com", true)
	c.Put("example.com", false)

	v, ok := c.Get("mailinator.com")
	assert.True(t, ok)
	assert.True(t, v)

	v, ok = c.Get("example.com")
	assert.True(t, ok)
	assert.False(t, v)

	st := c.Stats()
	assert.Equal(t, 4, st.Capacity)
	assert.Equal(t, 2, st.Size)
	assert.Equal(t, uint64(2), st.Hits)
	assert.Equal(t, uint64(1), st.Misses)
	assert.Equal(t, uint64(0), st.Evictions)
}

func TestVerdictCache_EvictionsAndPurge(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	c.Put("a.com", true)
	c.Put("b.com", true)
	c.Put("c.com", false) // evicts a.com

	_, ok := c.Get("a.com")
	assert.False(t, ok)
	assert.Equal(t, uint64(1), c.Stats().Evictions)

	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, uint64(3), c.Stats().Evictions)
}
