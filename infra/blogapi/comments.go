package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"blogtty/domain"
)

// commentService implements app.CommentService against the platform API.
type commentService struct {
	client *Client
}

// NewCommentService creates a CommentService backed by the platform API.
func NewCommentService(client *Client) *commentService {
	return &commentService{client: client}
}

func (s *commentService) List(_ context.Context, postID string) ([]domain.Comment, error) {
	data, err := s.client.Get(fmt.Sprintf("/api/v1/posts/%s/comments", postID))
	if err != nil {
		return nil, fmt.Errorf("fetching comments: %w", err)
	}

	var dtos []commentDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("parsing comments: %w", err)
	}

	// Malformed records are skipped, not fatal. One bad row must not
	// blank the whole thread.
	comments := make([]domain.Comment, 0, len(dtos))
	for _, d := range dtos {
		c, err := d.toDomain()
		if err != nil {
			s.client.log.Warn("dropping comment record", "id", d.ID, "err", err)
			continue
		}
		comments = append(comments, c)
	}
	return comments, nil
}

func (s *commentService) Create(_ context.Context, postID, parentID, text string) (domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	body := map[string]string{"post_id": postID, "text": text}
	if parentID != "" {
		body["parent_id"] = parentID
	}

	data, err := s.client.Post("/api/v1/comments", body)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("creating comment: %w", err)
	}
	return s.parseComment(data)
}

func (s *commentService) Edit(_ context.Context, id, text string) (domain.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Comment{}, domain.ErrEmptyComment
	}

	data, err := s.client.Put(fmt.Sprintf("/api/v1/comments/%s", id), map[string]string{"text": text})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("editing comment: %w", err)
	}
	return s.parseComment(data)
}

func (s *commentService) Delete(_ context.Context, id string) error {
	if _, err := s.client.Delete(fmt.Sprintf("/api/v1/comments/%s", id)); err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}

func (s *commentService) ToggleLike(_ context.Context, id string) ([]string, error) {
	data, err := s.client.Put(fmt.Sprintf("/api/v1/comments/%s/like", id), nil)
	if err != nil {
		return nil, fmt.Errorf("toggling comment like: %w", err)
	}

	var resp struct {
		LikedBy []string `json:"liked_by"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing like response: %w", err)
	}
	return resp.LikedBy, nil
}

func (s *commentService) parseComment(data []byte) (domain.Comment, error) {
	var dto commentDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Comment{}, fmt.Errorf("parsing comment response: %w", err)
	}
	return dto.toDomain()
}
