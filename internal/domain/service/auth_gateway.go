// Package service defines interfaces for domain services whose concrete
// implementations live in the infrastructure layer.
package service

import (
	"context"

	"gigmarket/internal/domain/entity"
)

// SignupInput carries the fields the backend's signup endpoint accepts.
type SignupInput struct {
	UserName string
	Email    string
	Password string
	Role     entity.Role // Defaults server-side to client when empty.
}

// AuthSession is the backend's response to a successful signup or signin.
type AuthSession struct {
	User         *entity.UserProfile
	AccessToken  string
	RefreshToken string
}

// AuthGateway is the backend-facing adapter for the authentication surface.
// It owns the translation of transport failures and backend message strings
// into the closed error kind set in domain/errors; callers never inspect
// error text themselves.
type AuthGateway interface {
	Signup(ctx context.Context, input SignupInput) (*AuthSession, error)
	Login(ctx context.Context, email, password string) (*AuthSession, error)

	// Logout notifies the backend that the session ended. Best-effort from
	// the caller's point of view; the session manager swallows its error.
	Logout(ctx context.Context) error

	// CurrentUser fetches the authoritative profile for the bearer token.
	CurrentUser(ctx context.Context) (*entity.UserProfile, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (accessToken, newRefreshToken string, err error)

	// UpdateProfile sends a partial update and returns the fields the
	// backend confirmed.
	UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) (*entity.UserProfile, error)
}
