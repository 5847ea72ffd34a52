package feed

import (
	"context"
	"time"

	"blogtty/domain"
)

type stubPosts struct{}

func (stubPosts) Latest(context.Context, int) ([]domain.Post, error) { return nil, nil }
func (stubPosts) ByCategory(context.Context, string, int) ([]domain.Post, error) {
	return nil, nil
}
func (stubPosts) ByTag(context.Context, string, int) ([]domain.Post, error)  { return nil, nil }
func (stubPosts) Search(context.Context, string, int) ([]domain.Post, error) { return nil, nil }
func (stubPosts) Get(context.Context, string) (domain.Post, error)           { return domain.Post{}, nil }

type stubTaxonomy struct{}

func (stubTaxonomy) Categories(context.Context) ([]domain.Category, error) { return nil, nil }
func (stubTaxonomy) Tags(context.Context) ([]domain.Tag, error)            { return nil, nil }

type stubInteractions struct{}

func (stubInteractions) LikeStatus(context.Context, string) (bool, int, error) {
	return false, 0, nil
}
func (stubInteractions) CommentCount(context.Context, string) (int, error) { return 0, nil }
func (stubInteractions) SavedPosts(context.Context) ([]string, error)      { return nil, nil }
func (stubInteractions) ToggleLike(context.Context, string) (bool, int, error) {
	return false, 0, nil
}
func (stubInteractions) ToggleSave(context.Context, string) (bool, error) { return false, nil }

func newTestModel() Model {
	return New(stubPosts{}, stubTaxonomy{}, stubInteractions{}, Prefs{})
}

func makePost(id string, createdAt time.Time) domain.Post {
	return domain.Post{
		ID:         id,
		Title:      "Post " + id,
		Summary:    "summary " + id,
		AuthorName: "Author " + id,
		CreatedAt:  createdAt,
		Published:  true,
	}
}
