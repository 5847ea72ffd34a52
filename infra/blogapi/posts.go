package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"blogtty/domain"
)

// postService implements app.PostService against the platform API.
type postService struct {
	client   *Client
	pageSize int
}

// NewPostService creates a PostService backed by the platform API.
func NewPostService(client *Client, pageSize int) *postService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &postService{client: client, pageSize: pageSize}
}

func (s *postService) Latest(_ context.Context, page int) ([]domain.Post, error) {
	return s.list(fmt.Sprintf("/api/v1/posts?%s", s.pageQuery(page)))
}

func (s *postService) ByCategory(_ context.Context, slug string, page int) ([]domain.Post, error) {
	return s.list(fmt.Sprintf("/api/v1/categories/%s/posts?%s", url.PathEscape(slug), s.pageQuery(page)))
}

func (s *postService) ByTag(_ context.Context, slug string, page int) ([]domain.Post, error) {
	return s.list(fmt.Sprintf("/api/v1/tags/%s/posts?%s", url.PathEscape(slug), s.pageQuery(page)))
}

func (s *postService) Search(_ context.Context, query string, page int) ([]domain.Post, error) {
	q := url.Values{}
	q.Set("q", query)
	return s.list(fmt.Sprintf("/api/v1/search?%s&%s", q.Encode(), s.pageQuery(page)))
}

func (s *postService) Get(_ context.Context, id string) (domain.Post, error) {
	data, err := s.client.Get(fmt.Sprintf("/api/v1/posts/%s", id))
	if err != nil {
		return domain.Post{}, fmt.Errorf("fetching post: %w", err)
	}

	var dto postDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Post{}, fmt.Errorf("parsing post: %w", err)
	}
	return dto.toDomain()
}

func (s *postService) pageQuery(page int) string {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))
	q.Set("limit", fmt.Sprint(s.pageSize))
	return q.Encode()
}

func (s *postService) list(path string) ([]domain.Post, error) {
	data, err := s.client.Get(path)
	if err != nil {
		return nil, fmt.Errorf("fetching posts: %w", err)
	}

	var dtos []postDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parsing posts: %w", err)
	}

	posts := make([]domain.Post, 0, len(dtos))
	for _, d := range dtos {
		p, err := d.toDomain()
		if err != nil {
			s.client.log.Warn("dropping post record", "id", d.ID, "err", err)
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// taxonomyService implements app.TaxonomyService.
type taxonomyService struct {
	client *Client
}

// NewTaxonomyService creates a TaxonomyService backed by the platform API.
func NewTaxonomyService(client *Client) *taxonomyService {
	return &taxonomyService{client: client}
}

func (s *taxonomyService) Categories(context.Context) ([]domain.Category, error) {
	data, err := s.client.Get("/api/v1/categories")
	if err != nil {
		return nil, fmt.Errorf("fetching categories: %w", err)
	}

	var dtos []categoryDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parsing categories: %w", err)
	}

	cats := make([]domain.Category, 0, len(dtos))
	for _, d := range dtos {
		c, err := d.toDomain()
		if err != nil {
			continue
		}
		cats = append(cats, c)
	}
	return cats, nil
}

func (s *taxonomyService) Tags(context.Context) ([]domain.Tag, error) {
	data, err := s.client.Get("/api/v1/tags")
	if err != nil {
		return nil, fmt.Errorf("fetching tags: %w", err)
	}

	var dtos []tagDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parsing tags: %w", err)
	}

	tags := make([]domain.Tag, 0, len(dtos))
	for _, d := range dtos {
		t, err := d.toDomain()
		if err != nil {
			continue
		}
		tags = append(tags, t)
	}
	return tags, nil
}
