package rest

import (
	"context"
	"net/http"

	"gigmarket/internal/domain/entity"
	"gigmarket/internal/domain/service"
)

// Client implements service.AuthGateway.
var _ service.AuthGateway = (*Client)(nil)

type signupRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User         *entity.UserProfile `json:"user"`
	AccessToken  string              `json:"accessToken"`
	RefreshToken string              `json:"refreshToken"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Signup registers a new account and returns its first session.
func (c *Client) Signup(ctx context.Context, input service.SignupInput) (*service.AuthSession, error) {
	var out authResponse
	req := signupRequest{
		UserName: input.UserName,
		Email:    input.Email,
		Password: input.Password,
		Role:     input.Role.String(),
	}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &out, false); err != nil {
		return nil, err
	}

	return &service.AuthSession{User: out.User, AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*service.AuthSession, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/signin", loginRequest{Email: email, Password: password}, &out, false); err != nil {
		return nil, err
	}

	return &service.AuthSession{User: out.User, AccessToken: out.AccessToken, RefreshToken: out.RefreshToken}, nil
}

// Logout tells the backend to revoke the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

// CurrentUser fetches the authoritative profile for the bearer token.
func (c *Client) CurrentUser(ctx context.Context) (*entity.UserProfile, error) {
	var out entity.UserProfile
	if err := c.get(ctx, "/auth/me", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Refresh mints a new token pair from a refresh token. Unauthenticated:
// a refresh is exactly the situation where the access token is unusable.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	var out refreshResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", refreshRequest{RefreshToken: refreshToken}, &out, false); err != nil {
		return "", "", err
	}

	return out.AccessToken, out.RefreshToken, nil
}

// UpdateProfile sends a partial profile update and returns the confirmed fields.
func (c *Client) UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) (*entity.UserProfile, error) {
	var out entity.UserProfile
	if err := c.put(ctx, "/users/me", update, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
