package app

import (
	"context"

	"blogtty/domain"
)

// PostService fetches published posts from the platform API.
type PostService interface {
	// Latest returns the newest published posts, one page at a time.
	// Pages start at 1.
	Latest(ctx context.Context, page int) ([]domain.Post, error)

	// ByCategory returns posts filed under the category slug.
	ByCategory(ctx context.Context, slug string, page int) ([]domain.Post, error)

	// ByTag returns posts carrying the tag slug.
	ByTag(ctx context.Context, slug string, page int) ([]domain.Post, error)

	// Search returns posts matching the free-text query.
	Search(ctx context.Context, query string, page int) ([]domain.Post, error)

	// Get returns one post with its full body.
	Get(ctx context.Context, id string) (domain.Post, error)
}

// TaxonomyService lists the site's categories and tags.
type TaxonomyService interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Tags(ctx context.Context) ([]domain.Tag, error)
}
