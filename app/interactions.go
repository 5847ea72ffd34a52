package app

import "context"

// InteractionService exposes the viewer's per-post like/save state and the
// shared counters. It satisfies interact.Service.
type InteractionService interface {
	// LikeStatus returns whether the viewer liked the post and the
	// post's total like count.
	LikeStatus(ctx context.Context, postID string) (liked bool, likeCount int, err error)

	// CommentCount returns the post's total comment count, nested
	// replies included.
	CommentCount(ctx context.Context, postID string) (int, error)

	// SavedPosts returns the ids of every post the viewer bookmarked.
	SavedPosts(ctx context.Context) ([]string, error)

	// ToggleLike flips the viewer's like and returns the new state and
	// authoritative count.
	ToggleLike(ctx context.Context, postID string) (liked bool, likeCount int, err error)

	// ToggleSave flips the viewer's bookmark.
	ToggleSave(ctx context.Context, postID string) (saved bool, err error)
}
