package app

import (
	"context"

	"blogtty/domain"
)

// CommentService reads and mutates the comments of a post. The acting
// viewer is implied by the client's bearer token.
type CommentService interface {
	// List returns the complete flat comment list for a post, top-level
	// comments and replies intermixed in server order.
	List(ctx context.Context, postID string) ([]domain.Comment, error)

	// Create submits a new comment. parentID is empty for top-level
	// comments; for replies it must name an existing comment.
	Create(ctx context.Context, postID, parentID, text string) (domain.Comment, error)

	// Edit replaces a comment's text. Only the author or an admin may
	// edit; the server enforces this and the client hides the control.
	Edit(ctx context.Context, id, text string) (domain.Comment, error)

	// Delete removes a comment; the server cascades to its reply subtree.
	Delete(ctx context.Context, id string) error

	// ToggleLike flips the viewer's membership in the comment's liked
	// set and returns the authoritative set.
	ToggleLike(ctx context.Context, id string) ([]string, error)
}
