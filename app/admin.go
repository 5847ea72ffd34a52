package app

import (
	"context"

	"blogtty/domain"
)

// PostDraft is the admin's input for creating or updating a post.
type PostDraft struct {
	Title    string
	Summary  string
	Body     string
	Category string
	Tags     []string
	CoverURL string
}

// AdminService is the back-office surface. Every call requires an admin
// (or, for post CRUD, author) token; the server answers 403 otherwise.
type AdminService interface {
	// Stats returns the dashboard summary.
	Stats(ctx context.Context) (domain.DashboardStats, error)

	// AllPosts returns every post including drafts, newest first.
	AllPosts(ctx context.Context, page int) ([]domain.Post, error)
	CreatePost(ctx context.Context, draft PostDraft) (domain.Post, error)
	UpdatePost(ctx context.Context, id string, draft PostDraft) (domain.Post, error)
	DeletePost(ctx context.Context, id string) error
	SetPublished(ctx context.Context, id string, published bool) (domain.Post, error)

	CreateCategory(ctx context.Context, name string) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
	CreateTag(ctx context.Context, name string) (domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	// PendingComments returns comments held for moderation.
	PendingComments(ctx context.Context) ([]domain.Comment, error)
	ApproveComment(ctx context.Context, id string) error
	RemoveComment(ctx context.Context, id string) error

	Settings(ctx context.Context) (domain.Settings, error)
	UpdateSettings(ctx context.Context, s domain.Settings) (domain.Settings, error)
}
