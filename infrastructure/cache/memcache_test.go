package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemCache_Increment(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	n, err := m.Int64("quotes:new")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = m.Increment("quotes:new", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = m.Increment("quotes:new", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	m.Delete("quotes:new")
	n, err = m.Int64("quotes:new")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMemCache_IncrementConcurrent(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Increment("hits", 1)
		}()
	}
	wg.Wait()

	n, err := m.Int64("hits")
	require.NoError(t, err)
	assert.Equal(t, int64(50), n)
}

func TestMemCache_NotInteger(t *testing.T) {
	m := NewMemCache(0)
	defer m.Close()

	m.Set("name", "elite", 0)
	_, err := m.Increment("name", 1)
	assert.ErrorIs(t, err, ErrNotInteger)
	_, err = m.Int64("name")
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestMemCache_Expiry(t *testing.T) {
	m := NewMemCache(5 * time.Millisecond)
	defer m.Close()

	m.Set("token", "abc", 10*time.Millisecond)
	v, ok := m.Get("token")
	require.True(t, ok)
	assert.Equal(t, "abc", v)

	assert.Eventually(t, func() bool {
		_, ok := m.Get("token")
		return !ok
	}, time.Second, 5*time.Millisecond)
}
