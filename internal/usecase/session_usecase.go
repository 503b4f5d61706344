// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"gigmarket/internal/domain/entity"
)

// ProfileSource tags where a profile snapshot came from, so callers can
// distinguish the optimistic local cache from a backend-confirmed value.
type ProfileSource string

const (
	// SourceNone means no profile is available.
	SourceNone ProfileSource = "none"
	// SourceCached means the profile was read from local storage and has
	// not been validated against the backend in this process.
	SourceCached ProfileSource = "cached"
	// SourceConfirmed means the backend vouched for the profile during
	// this process's lifetime.
	SourceConfirmed ProfileSource = "confirmed"
)

// Snapshot is a read-only view of the current session identity.
type Snapshot struct {
	User   *entity.UserProfile
	Source ProfileSource
}

// --- Input DTOs ---

// SignupInput defines the data required to register a new account.
// Validation runs client-side before any network call; the backend remains
// authoritative.
type SignupInput struct {
	UserName string      `validate:"required,min=2,max=64"`
	Email    string      `validate:"required,email"`
	Password string      `validate:"required,min=8"`
	Role     entity.Role `validate:"omitempty,oneof=client freelancer"`
}

// LoginInput defines the data required to sign in.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// SessionUsecase is the single source of truth for "who is logged in" and
// how to recover from token expiry.
type SessionUsecase interface {
	// Bootstrap restores a persisted session: optimistic cache first, then
	// backend validation with one refresh-and-retry on auth failure. It
	// runs at most once per process; later calls return immediately.
	Bootstrap(ctx context.Context) error

	// Bootstrapped reports whether Bootstrap has completed, regardless of
	// its outcome.
	Bootstrapped() bool

	// Current returns a read-only snapshot of the session identity.
	Current() Snapshot

	Signup(ctx context.Context, input SignupInput) error
	Login(ctx context.Context, input LoginInput) error

	// Logout notifies the backend best-effort and unconditionally clears
	// local credentials; a user can always log out while offline.
	Logout(ctx context.Context) error

	// UpdateProfile sends a partial update and merges the confirmed fields
	// into the cached profile. The cache is untouched on failure.
	UpdateProfile(ctx context.Context, update *entity.ProfileUpdate) error

	// RefreshUser force-fetches the authoritative profile; used after
	// side-channel mutations such as image uploads.
	RefreshUser(ctx context.Context) error

	// Watch returns a channel receiving the session user id on every
	// identity change ("" on logout). The channel is buffered; slow
	// consumers miss intermediate transitions, never the latest one.
	Watch() <-chan string
}
