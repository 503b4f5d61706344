// Package rest implements the typed client wrappers over the marketplace
// backend's REST API. All responses arrive in a common envelope; all
// authenticated calls carry a bearer token read from the credential store
// immediately before the request is sent.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"gigmarket/config"
	domainerrors "gigmarket/internal/domain/errors"
	"gigmarket/internal/domain/repository"
	"gigmarket/internal/errors"
)

// envelope is the response shape every backend endpoint uses.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

// Client is the backend-facing HTTP adapter shared by every service wrapper.
type Client struct {
	baseURL string
	http    *http.Client
	creds   repository.CredentialRepository
	logger  *slog.Logger
}

// New creates a REST client against the resolved base URL.
func New(cfg *config.Config, creds repository.CredentialRepository, logger *slog.Logger) *Client {
	return &Client{
		baseURL: ResolveBaseURL(cfg),
		http:    &http.Client{Timeout: cfg.API.Timeout},
		creds:   creds,
		logger:  logger,
	}
}

// ResolveBaseURL picks the backend address: an explicit override wins,
// otherwise a local development backend is assumed.
func ResolveBaseURL(cfg *config.Config) string {
	if override := strings.TrimSpace(cfg.API.BaseURL); override != "" {
		return strings.TrimRight(override, "/")
	}

	return fmt.Sprintf("http://localhost:%d/api", cfg.API.LocalPort)
}

// BaseURL returns the resolved backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// get issues an authenticated GET and decodes the envelope data into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, true)
}

// post issues an authenticated POST.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, true)
}

// put issues an authenticated PUT.
func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out, true)
}

// patch issues an authenticated PATCH.
func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, body, out, true)
}

// delete issues an authenticated DELETE.
func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

// do performs one round-trip. Transport failures and non-JSON responses map
// to ErrNetworkUnavailable; backend failures map through mapError. When
// authed is set, the access token is read from the store here, not from any
// in-memory copy, so a concurrently refreshed token is always picked up.
func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if authed {
		token, err := c.creds.AccessToken()
		if err != nil {
			return errors.Wrap(err, "read access token")
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Backend unreachable", slog.String("method", method), slog.String("path", path), slog.Any("error", err))

		return domainerrors.ErrNetworkUnavailable.WrapMessage(err.Error())
	}
	defer resp.Body.Close()

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		c.logger.Warn("Non-JSON backend response", slog.String("path", path), slog.String("contentType", mediaType), slog.Int("status", resp.StatusCode))

		return domainerrors.ErrNetworkUnavailable.WrapMessage("backend returned a non-JSON response")
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return domainerrors.ErrNetworkUnavailable.WrapMessage("malformed backend envelope")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return mapError(resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrap(err, "decode envelope data")
		}
	}

	return nil
}
