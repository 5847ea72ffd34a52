package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, ok := s.LikedPosts("u1")
	assert.False(t, ok)

	require.NoError(t, s.SetLikedPosts("u1", []string{"p1", "p2"}))
	require.NoError(t, s.SetSavedPosts("u1", []string{"p3"}))

	liked, ok := s.LikedPosts("u1")
	require.True(t, ok)
	assert.Equal(t, []string{"p1", "p2"}, liked)

	saved, ok := s.SavedPosts("u1")
	require.True(t, ok)
	assert.Equal(t, []string{"p3"}, saved)
}

func TestStore_ViewersAreIsolated(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SetLikedPosts("u1", []string{"p1"}))

	_, ok := s.LikedPosts("u2")
	assert.False(t, ok, "one viewer's entries must not leak into another's")
}

func TestStore_InvalidateViewer(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SetLikedPosts("u1", []string{"p1"}))
	require.NoError(t, s.SetSavedPosts("u1", []string{"p2"}))
	require.NoError(t, s.SetLikedPosts("u2", []string{"p9"}))

	require.NoError(t, s.InvalidateViewer("u1"))

	_, ok := s.LikedPosts("u1")
	assert.False(t, ok)
	_, ok = s.SavedPosts("u1")
	assert.False(t, ok)

	// Other viewers keep their entries.
	liked, ok := s.LikedPosts("u2")
	require.True(t, ok)
	assert.Equal(t, []string{"p9"}, liked)
}

func TestStore_InvalidateMissingViewerIsNoop(t *testing.T) {
	s := openTestStore(t)
	assert.NoError(t, s.InvalidateViewer("nobody"))
}

func TestStore_EmptyListIsCachedPresence(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.SetSavedPosts("u1", []string{}))

	ids, ok := s.SavedPosts("u1")
	require.True(t, ok, "an empty list is still a fresh answer")
	assert.Empty(t, ids)
}
