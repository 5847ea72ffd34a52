package blogapi

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"blogtty/domain"
)

// validate checks every decoded record before it crosses into the domain,
// so internal logic can assume well-typed, complete records instead of
// re-checking optional fields everywhere.
var validate = validator.New(validator.WithRequiredStructEnabled())

type authorDTO struct {
	ID     string `json:"id" validate:"required"`
	Name   string `json:"name"`
	Avatar string `json:"avatar_url"`
}

type commentDTO struct {
	ID        string    `json:"id" validate:"required"`
	PostID    string    `json:"post_id" validate:"required"`
	ParentID  string    `json:"parent_id"`
	Text      string    `json:"text" validate:"required"`
	Author    authorDTO `json:"author" validate:"required"`
	CreatedAt time.Time `json:"created_at" validate:"required"`
	LikedBy   []string  `json:"liked_by" validate:"unique"`
}

func (d commentDTO) toDomain() (domain.Comment, error) {
	if err := validate.Struct(d); err != nil {
		return domain.Comment{}, fmt.Errorf("invalid comment record %q: %w", d.ID, err)
	}
	return domain.Comment{
		ID:           d.ID,
		PostID:       d.PostID,
		ParentID:     d.ParentID,
		Text:         d.Text,
		AuthorID:     d.Author.ID,
		AuthorName:   d.Author.Name,
		AuthorAvatar: d.Author.Avatar,
		CreatedAt:    d.CreatedAt,
		LikedBy:      d.LikedBy,
	}, nil
}

type postDTO struct {
	ID           string    `json:"id" validate:"required"`
	Title        string    `json:"title" validate:"required"`
	Summary      string    `json:"summary"`
	Body         string    `json:"body"`
	Author       authorDTO `json:"author" validate:"required"`
	Category     string    `json:"category"`
	Tags         []string  `json:"tags"`
	CoverURL     string    `json:"cover_url"`
	CreatedAt    time.Time `json:"created_at" validate:"required"`
	UpdatedAt    time.Time `json:"updated_at"`
	Published    bool      `json:"published"`
	LikeCount    int       `json:"like_count" validate:"gte=0"`
	CommentCount int       `json:"comment_count" validate:"gte=0"`
	ViewCount    int       `json:"view_count" validate:"gte=0"`
}

func (d postDTO) toDomain() (domain.Post, error) {
	if err := validate.Struct(d); err != nil {
		return domain.Post{}, fmt.Errorf("invalid post record %q: %w", d.ID, err)
	}
	return domain.Post{
		ID:           d.ID,
		Title:        d.Title,
		Summary:      d.Summary,
		Body:         d.Body,
		AuthorID:     d.Author.ID,
		AuthorName:   d.Author.Name,
		Category:     d.Category,
		Tags:         d.Tags,
		CoverURL:     d.CoverURL,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
		Published:    d.Published,
		LikeCount:    d.LikeCount,
		CommentCount: d.CommentCount,
		ViewCount:    d.ViewCount,
	}, nil
}

type categoryDTO struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	PostCount int    `json:"post_count" validate:"gte=0"`
}

func (d categoryDTO) toDomain() (domain.Category, error) {
	if err := validate.Struct(d); err != nil {
		return domain.Category{}, fmt.Errorf("invalid category record %q: %w", d.ID, err)
	}
	return domain.Category{ID: d.ID, Name: d.Name, Slug: d.Slug, PostCount: d.PostCount}, nil
}

type tagDTO struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Slug      string `json:"slug" validate:"required"`
	PostCount int    `json:"post_count" validate:"gte=0"`
}

func (d tagDTO) toDomain() (domain.Tag, error) {
	if err := validate.Struct(d); err != nil {
		return domain.Tag{}, fmt.Errorf("invalid tag record %q: %w", d.ID, err)
	}
	return domain.Tag{ID: d.ID, Name: d.Name, Slug: d.Slug, PostCount: d.PostCount}, nil
}

type profileDTO struct {
	ID          string `json:"id" validate:"required"`
	Username    string `json:"username" validate:"required"`
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	Role        string `json:"role" validate:"oneof=reader author admin"`
}

func (d profileDTO) toDomain() (domain.Profile, error) {
	if err := validate.Struct(d); err != nil {
		return domain.Profile{}, fmt.Errorf("invalid profile record %q: %w", d.ID, err)
	}
	return domain.Profile{
		ID:          d.ID,
		Username:    d.Username,
		DisplayName: d.DisplayName,
		Bio:         d.Bio,
		AvatarURL:   d.AvatarURL,
		Role:        domain.Role(d.Role),
	}, nil
}
