package domain

import "time"

// Post represents a blog post as listed in the feed or opened in detail.
type Post struct {
	ID           string
	Title        string
	Summary      string
	Body         string // Full body; empty in list responses.
	AuthorID     string
	AuthorName   string
	Category     string
	Tags         []string
	CoverURL     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Published    bool
	LikeCount    int
	CommentCount int
	ViewCount    int
}

// Category groups posts under a single browsable section.
type Category struct {
	ID        string
	Name      string
	Slug      string
	PostCount int
}

// Tag is a free-form post label.
type Tag struct {
	ID        string
	Name      string
	Slug      string
	PostCount int
}
