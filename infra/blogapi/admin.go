package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"blogtty/app"
	"blogtty/domain"
)

// adminService implements app.AdminService against the back-office
// endpoints. The server enforces role checks; the client only decides
// whether to show the screens at all.
type adminService struct {
	client *Client
}

// NewAdminService creates an AdminService backed by the platform API.
func NewAdminService(client *Client) *adminService {
	return &adminService{client: client}
}

type statsDTO struct {
	Posts      int `json:"posts"`
	Comments   int `json:"comments"`
	Users      int `json:"users"`
	Likes      int `json:"likes"`
	ViewsByDay []struct {
		Day   string `json:"day"`
		Views int    `json:"views"`
	} `json:"views_by_day"`
}

func (s *adminService) Stats(context.Context) (domain.DashboardStats, error) {
	data, err := s.client.Get("/api/v1/admin/stats")
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("fetching stats: %w", err)
	}

	var dto statsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.DashboardStats{}, fmt.Errorf("parsing stats: %w", err)
	}

	stats := domain.DashboardStats{
		Posts:    dto.Posts,
		Comments: dto.Comments,
		Users:    dto.Users,
		Likes:    dto.Likes,
	}
	for _, d := range dto.ViewsByDay {
		stats.ViewsByDay = append(stats.ViewsByDay, domain.DayViews{Day: d.Day, Views: d.Views})
	}
	return stats, nil
}

func (s *adminService) AllPosts(_ context.Context, page int) ([]domain.Post, error) {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", fmt.Sprint(page))

	data, err := s.client.Get("/api/v1/admin/posts?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("fetching admin posts: %w", err)
	}

	var dtos []postDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parsing admin posts: %w", err)
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

func draftBody(draft app.PostDraft) map[string]any {
	return map[string]any{
		"title":     draft.Title,
		"summary":   draft.Summary,
		"body":      draft.Body,
		"category":  draft.Category,
		"tags":      draft.Tags,
		"cover_url": draft.CoverURL,
	}
}

func (s *adminService) CreatePost(_ context.Context, draft app.PostDraft) (domain.Post, error) {
	if draft.Title == "" || draft.Body == "" {
		return domain.Post{}, domain.ErrEmptyPost
	}
	data, err := s.client.Post("/api/v1/admin/posts", draftBody(draft))
	if err != nil {
		return domain.Post{}, fmt.Errorf("creating post: %w", err)
	}
	return s.parsePost(data)
}

func (s *adminService) UpdatePost(_ context.Context, id string, draft app.PostDraft) (domain.Post, error) {
	if draft.Title == "" || draft.Body == "" {
		return domain.Post{}, domain.ErrEmptyPost
	}
	data, err := s.client.Put(fmt.Sprintf("/api/v1/admin/posts/%s", id), draftBody(draft))
	if err != nil {
		return domain.Post{}, fmt.Errorf("updating post: %w", err)
	}
	return s.parsePost(data)
}

func (s *adminService) DeletePost(_ context.Context, id string) error {
	if _, err := s.client.Delete(fmt.Sprintf("/api/v1/admin/posts/%s", id)); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	return nil
}

func (s *adminService) SetPublished(_ context.Context, id string, published bool) (domain.Post, error) {
	data, err := s.client.Put(fmt.Sprintf("/api/v1/admin/posts/%s/published", id),
		map[string]bool{"published": published})
	if err != nil {
		return domain.Post{}, fmt.Errorf("setting published: %w", err)
	}
	return s.parsePost(data)
}

func (s *adminService) CreateCategory(_ context.Context, name string) (domain.Category, error) {
	data, err := s.client.Post("/api/v1/admin/categories", map[string]string{"name": name})
	if err != nil {
		return domain.Category{}, fmt.Errorf("creating category: %w", err)
	}

	var dto categoryDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Category{}, fmt.Errorf("parsing category: %w", err)
	}
	return dto.toDomain()
}

func (s *adminService) DeleteCategory(_ context.Context, id string) error {
	if _, err := s.client.Delete(fmt.Sprintf("/api/v1/admin/categories/%s", id)); err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	return nil
}

func (s *adminService) CreateTag(_ context.Context, name string) (domain.Tag, error) {
	data, err := s.client.Post("/api/v1/admin/tags", map[string]string{"name": name})
	if err != nil {
		return domain.Tag{}, fmt.Errorf("creating tag: %w", err)
	}

	var dto tagDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Tag{}, fmt.Errorf("parsing tag: %w", err)
	}
	return dto.toDomain()
}

func (s *adminService) DeleteTag(_ context.Context, id string) error {
	if _, err := s.client.Delete(fmt.Sprintf("/api/v1/admin/tags/%s", id)); err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return nil
}

func (s *adminService) PendingComments(context.Context) ([]domain.Comment, error) {
	data, err := s.client.Get("/api/v1/admin/comments/pending")
	if err != nil {
		return nil, fmt.Errorf("fetching pending comments: %w", err)
	}

	var dtos []commentDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parsing pending comments: %w", err)
	}

	comments := make([]domain.Comment, 0, len(dtos))
	for _, d := range dtos {
		c, err := d.toDomain()
		if err != nil {
			continue
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func (s *adminService) ApproveComment(_ context.Context, id string) error {
	if _, err := s.client.Put(fmt.Sprintf("/api/v1/admin/comments/%s/approve", id), nil); err != nil {
		return fmt.Errorf("approving comment: %w", err)
	}
	return nil
}

func (s *adminService) RemoveComment(_ context.Context, id string) error {
	if _, err := s.client.Delete(fmt.Sprintf("/api/v1/admin/comments/%s", id)); err != nil {
		return fmt.Errorf("removing comment: %w", err)
	}
	return nil
}

type settingsDTO struct {
	SiteTitle       string `json:"site_title"`
	SiteDescription string `json:"site_description"`
	CommentsEnabled bool   `json:"comments_enabled"`
	PageSize        int    `json:"page_size"`
}

func (s *adminService) Settings(context.Context) (domain.Settings, error) {
	data, err := s.client.Get("/api/v1/admin/settings")
	if err != nil {
		return domain.Settings{}, fmt.Errorf("fetching settings: %w", err)
	}

	var dto settingsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	return domain.Settings(dto), nil
}

func (s *adminService) UpdateSettings(_ context.Context, in domain.Settings) (domain.Settings, error) {
	data, err := s.client.Put("/api/v1/admin/settings", settingsDTO(in))
	if err != nil {
		return domain.Settings{}, fmt.Errorf("updating settings: %w", err)
	}

	var dto settingsDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Settings{}, fmt.Errorf("parsing settings: %w", err)
	}
	return domain.Settings(dto), nil
}

func (s *adminService) parsePost(data []byte) (domain.Post, error) {
	var dto postDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Post{}, fmt.Errorf("parsing post response: %w", err)
	}
	return dto.toDomain()
}
