package blogapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// interactionService implements app.InteractionService (and thereby
// interact.Service) against the platform API.
type interactionService struct {
	client *Client
}

// NewInteractionService creates an InteractionService backed by the
// platform API.
func NewInteractionService(client *Client) *interactionService {
	return &interactionService{client: client}
}

type likeStatusResp struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

func (s *interactionService) LikeStatus(_ context.Context, postID string) (bool, int, error) {
	data, err := s.client.Get(fmt.Sprintf("/api/v1/posts/%s/like-status", postID))
	if err != nil {
		return false, 0, fmt.Errorf("fetching like status: %w", err)
	}

	var resp likeStatusResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, 0, fmt.Errorf("parsing like status: %w", err)
	}
	return resp.Liked, resp.LikeCount, nil
}

func (s *interactionService) CommentCount(_ context.Context, postID string) (int, error) {
	data, err := s.client.Get(fmt.Sprintf("/api/v1/posts/%s/comment-count", postID))
	if err != nil {
		return 0, fmt.Errorf("fetching comment count: %w", err)
	}

	var resp struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return 0, fmt.Errorf("parsing comment count: %w", err)
	}
	return resp.Count, nil
}

func (s *interactionService) SavedPosts(context.Context) ([]string, error) {
	data, err := s.client.Get("/api/v1/me/saved-posts")
	if err != nil {
		return nil, fmt.Errorf("fetching saved posts: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("parsing saved posts: %w", err)
	}
	return ids, nil
}

func (s *interactionService) ToggleLike(_ context.Context, postID string) (bool, int, error) {
	data, err := s.client.Post(fmt.Sprintf("/api/v1/posts/%s/like-toggle", postID), nil)
	if err != nil {
		return false, 0, fmt.Errorf("toggling like: %w", err)
	}

	var resp likeStatusResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, 0, fmt.Errorf("parsing like toggle: %w", err)
	}
	return resp.Liked, resp.LikeCount, nil
}

func (s *interactionService) ToggleSave(_ context.Context, postID string) (bool, error) {
	data, err := s.client.Post(fmt.Sprintf("/api/v1/posts/%s/save-toggle", postID), nil)
	if err != nil {
		return false, fmt.Errorf("toggling save: %w", err)
	}

	var resp struct {
		Saved bool `json:"saved"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return false, fmt.Errorf("parsing save toggle: %w", err)
	}
	return resp.Saved, nil
}
