package thread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogtty/domain"
)

func TestToggleLike_AddsAndRemovesMembership(t *testing.T) {
	liked, err := ToggleLike([]string{"u1"}, "u2", "author-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, liked)

	liked, err = ToggleLike(liked, "u2", "author-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, liked)
}

func TestToggleLike_DoubleToggleIsNetZero(t *testing.T) {
	original := []string{"u1", "u3"}

	once, err := ToggleLike(original, "u2", "author-1")
	require.NoError(t, err)
	twice, err := ToggleLike(once, "u2", "author-1")
	require.NoError(t, err)

	assert.Equal(t, original, twice)
	assert.Len(t, twice, len(original))
}

func TestToggleLike_RejectsSelfLike(t *testing.T) {
	_, err := ToggleLike(nil, "author-1", "author-1")
	assert.ErrorIs(t, err, domain.ErrSelfLike)
}

func TestToggleLike_RejectsAnonymousViewer(t *testing.T) {
	_, err := ToggleLike(nil, "", "author-1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestToggleLike_NeverDuplicates(t *testing.T) {
	liked, err := ToggleLike([]string{"u1"}, "u2", "author-1")
	require.NoError(t, err)
	liked, err = ToggleLike(liked, "u3", "author-1")
	require.NoError(t, err)

	seen := map[string]int{}
	for _, id := range liked {
		seen[id]++
	}
	for id, n := range seen {
		assert.Equalf(t, 1, n, "viewer %s appears %d times", id, n)
	}
}

func TestCascadeIDs_CollectsTransitiveReplies(t *testing.T) {
	flat := []domain.Comment{
		makeComment("a", "", base),
		makeComment("b", "a", base.Add(time.Minute)),
		makeComment("c", "b", base.Add(2*time.Minute)),
		makeComment("other", "", base.Add(3*time.Minute)),
	}

	ids := CascadeIDs(flat, "a")

	assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)
}

func TestCascadeIDs_ThenRemoveAll_PrunesSubtree(t *testing.T) {
	flat := []domain.Comment{
		makeComment("a", "", base),
		makeComment("b", "a", base.Add(time.Minute)),
		makeComment("c", "b", base.Add(2*time.Minute)),
		makeComment("keep", "", base.Add(3*time.Minute)),
	}

	pruned := RemoveAll(flat, CascadeIDs(flat, "a"))
	tree := BuildTree(pruned, Newest)

	require.Len(t, pruned, 1)
	require.Len(t, tree, 1)
	assert.Equal(t, "keep", tree[0].ID)
}

func TestApplyEdit_ReplacesTextOnly(t *testing.T) {
	flat := []domain.Comment{makeComment("a", "", base, "u1", "u2")}

	edited, err := ApplyEdit(flat, "a", "updated text")
	require.NoError(t, err)

	assert.Equal(t, "updated text", edited[0].Text)
	assert.Equal(t, flat[0].CreatedAt, edited[0].CreatedAt)
	assert.Equal(t, flat[0].LikedBy, edited[0].LikedBy)
	assert.Equal(t, flat[0].ParentID, edited[0].ParentID)
	// Original list untouched.
	assert.Equal(t, "comment a", flat[0].Text)
}

func TestApplyEdit_Errors(t *testing.T) {
	flat := []domain.Comment{makeComment("a", "", base)}

	_, err := ApplyEdit(flat, "a", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyComment)

	_, err = ApplyEdit(flat, "missing", "text")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplace_SwapsOptimisticForServerRecord(t *testing.T) {
	flat := []domain.Comment{
		makeComment("local-1", "", base),
		makeComment("b", "", base.Add(time.Minute)),
	}
	server := makeComment("srv-9", "", base.Add(2*time.Minute))

	out := Replace(flat, "local-1", server)

	require.Len(t, out, 2)
	assert.Equal(t, "srv-9", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
}

func TestReplace_AppendsWhenNothingMatches(t *testing.T) {
	flat := []domain.Comment{makeComment("a", "", base)}
	server := makeComment("srv-9", "", base.Add(time.Minute))

	out := Replace(flat, "gone", server)

	require.Len(t, out, 2)
	assert.Equal(t, "srv-9", out[1].ID)
}

func TestValidateParent(t *testing.T) {
	flat := []domain.Comment{makeComment("a", "", base)}

	assert.NoError(t, ValidateParent(flat, "a"))
	assert.ErrorIs(t, ValidateParent(flat, "missing"), domain.ErrInvalidParent)
	assert.ErrorIs(t, ValidateParent(flat, ""), domain.ErrInvalidParent)
}
