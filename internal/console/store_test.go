package console_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gazetadovale/newsdesk/internal/console"
)

func TestStoreApplyInOrder(t *testing.T) {
	var store console.Store[string]

	ticket := store.Begin()
	require.True(t, store.Apply(ticket, []string{"a", "b"}))

	assert.Equal(t, []string{"a", "b"}, store.Items())
}

func TestStoreDiscardsStaleResult(t *testing.T) {
	var store console.Store[string]

	first := store.Begin()
	second := store.Begin()

	require.True(t, store.Apply(second, []string{"fresh"}))

	// The earlier fetch completes late; its result must not win.
	assert.False(t, store.Apply(first, []string{"stale"}))
	assert.Equal(t, []string{"fresh"}, store.Items())
}

func TestStoreAllowsSkippedTickets(t *testing.T) {
	var store console.Store[int]

	store.Begin() // fetch that never completes
	ticket := store.Begin()

	assert.True(t, store.Apply(ticket, []int{1}))
	assert.Equal(t, []int{1}, store.Items())
}

func TestStoreItemsIsACopy(t *testing.T) {
	var store console.Store[int]
	ticket := store.Begin()
	require.True(t, store.Apply(ticket, []int{1, 2}))

	items := store.Items()
	items[0] = 99

	assert.Equal(t, []int{1, 2}, store.Items())
}

func TestStoreEmpty(t *testing.T) {
	var store console.Store[int]
	assert.Empty(t, store.Items())
}
