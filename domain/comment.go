package domain

import "time"

// Comment is a single comment record as returned by the platform API.
// Records are validated at the API boundary, so required fields are set
// and LikedBy never contains duplicate viewer ids.
type Comment struct {
	ID           string
	PostID       string
	ParentID     string // Empty for top-level comments.
	Text         string
	AuthorID     string
	AuthorName   string
	AuthorAvatar string
	CreatedAt    time.Time
	LikedBy      []string
}

// IsReply reports whether the comment targets another comment.
func (c Comment) IsReply() bool { return c.ParentID != "" }

// LikeCount returns the number of viewers who liked the comment.
func (c Comment) LikeCount() int { return len(c.LikedBy) }

// LikedByViewer reports whether viewerID is in the comment's liked set.
func (c Comment) LikedByViewer(viewerID string) bool {
	if viewerID == "" {
		return false
	}
	for _, id := range c.LikedBy {
		if id == viewerID {
			return true
		}
	}
	return false
}

// CommentNode is a comment plus its direct replies, derived from a flat
// comment list by thread.BuildTree. In-memory only; rebuilt from scratch
// whenever the underlying flat list changes.
type CommentNode struct {
	Comment
	Children []CommentNode
}
