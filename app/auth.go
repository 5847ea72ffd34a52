package app

import (
	"context"

	"blogtty/domain"
)

// AuthService signs the viewer in and out against the platform API.
type AuthService interface {
	// Login exchanges credentials for a bearer token (persisted by the
	// implementation) and returns the signed-in profile.
	Login(ctx context.Context, username, password string) (domain.Profile, error)

	// Logout revokes the token server-side and removes it locally.
	Logout(ctx context.Context) error

	// CurrentProfile returns the profile for the stored token, or
	// domain.ErrUnauthorized when no valid token exists.
	CurrentProfile(ctx context.Context) (domain.Profile, error)
}
