package thread

import (
	"strings"

	"blogtty/domain"
)

// ToggleLike returns the liked set after toggling viewerID's membership.
// Exactly one of add/remove happens per call, so a duplicate invocation
// (e.g. a retried request) lands back on the original state instead of
// double-counting. Authors cannot like their own comments.
func ToggleLike(likedBy []string, viewerID, authorID string) ([]string, error) {
	if viewerID == "" {
		return nil, domain.ErrUnauthorized
	}
	if viewerID == authorID {
		return nil, domain.ErrSelfLike
	}

	out := make([]string, 0, len(likedBy)+1)
	removed := false
	for _, id := range likedBy {
		if id == viewerID {
			removed = true
			continue
		}
		out = append(out, id)
	}
	if !removed {
		out = append(out, viewerID)
	}
	return out, nil
}

// CascadeIDs returns id plus the id of every comment whose parent chain
// resolves to it. Callers prune local state with the result instead of
// re-fetching after a delete.
func CascadeIDs(flat []domain.Comment, id string) []string {
	children := make(map[string][]string, len(flat))
	for _, c := range flat {
		if c.ParentID != "" {
			children[c.ParentID] = append(children[c.ParentID], c.ID)
		}
	}

	ids := []string{id}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, children[ids[i]]...)
	}
	return ids
}

// RemoveAll returns a new flat list without the given ids.
func RemoveAll(flat []domain.Comment, ids []string) []domain.Comment {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	out := make([]domain.Comment, 0, len(flat))
	for _, c := range flat {
		if _, ok := drop[c.ID]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

// ApplyEdit returns a new flat list with the comment's text replaced.
// CreatedAt, LikedBy and ParentID are immutable under edit.
func ApplyEdit(flat []domain.Comment, id, newText string) ([]domain.Comment, error) {
	if strings.TrimSpace(newText) == "" {
		return nil, domain.ErrEmptyComment
	}

	out := make([]domain.Comment, len(flat))
	copy(out, flat)
	for i := range out {
		if out[i].ID == id {
			out[i].Text = newText
			return out, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Replace returns a new flat list with the comment matching oldID swapped
// for the server record. Used to reconcile an optimistic comment once the
// server assigns its real id.
func Replace(flat []domain.Comment, oldID string, server domain.Comment) []domain.Comment {
	out := make([]domain.Comment, len(flat))
	copy(out, flat)
	for i := range out {
		if out[i].ID == oldID || out[i].ID == server.ID {
			out[i] = server
			return out
		}
	}
	return append(out, server)
}

// ValidateParent checks that a reply target exists in the flat list.
// Replies to unknown or already-deleted comments fail before any network
// call is made.
func ValidateParent(flat []domain.Comment, parentID string) error {
	if parentID == "" {
		return domain.ErrInvalidParent
	}
	for _, c := range flat {
		if c.ID == parentID {
			return nil
		}
	}
	return domain.ErrInvalidParent
}
