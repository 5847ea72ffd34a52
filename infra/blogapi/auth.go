package blogapi

import (
	"context"
	"encoding/json"
	"fmt"

	"blogtty/domain"
	"blogtty/infra/auth"
)

// authService implements app.AuthService. On login it persists the bearer
// token through the auth store so later sessions resume signed in.
type authService struct {
	client *Client
	tokens *auth.Store
}

// NewAuthService creates an AuthService backed by the platform API.
func NewAuthService(client *Client, tokens *auth.Store) *authService {
	return &authService{client: client, tokens: tokens}
}

func (s *authService) Login(_ context.Context, username, password string) (domain.Profile, error) {
	body := map[string]string{"username": username, "password": password}
	data, err := s.client.Post("/api/v1/auth/login", body)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("logging in: %w", err)
	}

	var resp struct {
		Token   string     `json:"token"`
		Profile profileDTO `json:"profile"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return domain.Profile{}, fmt.Errorf("parsing login response: %w", err)
	}
	if resp.Token == "" {
		return domain.Profile{}, domain.ErrUnauthorized
	}

	if err := s.tokens.Write(resp.Token); err != nil {
		return domain.Profile{}, fmt.Errorf("persisting token: %w", err)
	}
	return resp.Profile.toDomain()
}

func (s *authService) Logout(_ context.Context) error {
	// Best-effort server revocation; the local token goes regardless.
	_, _ = s.client.Post("/api/v1/auth/logout", nil)

	if err := s.tokens.Clear(); err != nil {
		return fmt.Errorf("removing token: %w", err)
	}
	return nil
}

func (s *authService) CurrentProfile(_ context.Context) (domain.Profile, error) {
	data, err := s.client.Get("/api/v1/me")
	if err != nil {
		return domain.Profile{}, fmt.Errorf("fetching profile: %w", err)
	}

	var dto profileDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return domain.Profile{}, fmt.Errorf("parsing profile: %w", err)
	}
	return dto.toDomain()
}
