package realtime

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AdmitLookupRemove(t *testing.T) {
	r := NewRegistry(nil)

	c := NewClient("user-1", nil)
	r.Admit("user-1", c)

	got, ok := r.Lookup("user-1")
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, 1, r.Len())

	r.Remove("user-1", c)
	_, ok = r.Lookup("user-1")
	assert.False(t, ok)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_LastConnectionWins(t *testing.T) {
	r := NewRegistry(nil)

	first := NewClient("user-1", nil)
	second := NewClient("user-1", nil)

	r.Admit("user-1", first)
	r.Admit("user-1", second)

	got, ok := r.Lookup("user-1")
	require.True(t, ok)
	assert.Same(t, second, got)

	// the superseded connection was actively closed
	assert.True(t, first.Closed())
	assert.False(t, second.Closed())
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_RemoveOnlyEvictsOwnEntry(t *testing.T) {
	r := NewRegistry(nil)

	first := NewClient("user-1", nil)
	second := NewClient("user-1", nil)

	r.Admit("user-1", first)
	r.Admit("user-1", second)

	// the stale connection's teardown must not evict its successor
	r.Remove("user-1", first)
	got, ok := r.Lookup("user-1")
	require.True(t, ok)
	assert.Same(t, second, got)

	r.Remove("user-1", second)
	_, ok = r.Lookup("user-1")
	assert.False(t, ok)
}

func TestRegistry_ForEachSnapshot(t *testing.T) {
	r := NewRegistry(nil)
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("user-%d", i)
		r.Admit(id, NewClient(id, nil))
	}

	// mutating the registry from inside the callback must not deadlock
	// or affect the iteration already underway
	seen := 0
	r.ForEach(func(principalID string, c *Client) {
		seen++
		r.Remove(principalID, c)
		r.Admit("late-"+principalID, NewClient("late-"+principalID, nil))
	})
	assert.Equal(t, 5, seen)
	assert.Equal(t, 5, r.Len())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("user-%d", i%4)
			for j := 0; j < 100; j++ {
				c := NewClient(id, nil)
				r.Admit(id, c)
				r.ForEach(func(string, *Client) {})
				r.Lookup(id)
				r.Remove(id, c)
			}
		}(i)
	}
	wg.Wait()
}
