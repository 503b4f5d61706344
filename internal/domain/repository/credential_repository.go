// Package repository defines the interfaces for data persistence,
// decoupling the application logic from concrete storage.
package repository

import "gigmarket/internal/domain/entity"

// CredentialRepository is the persisted key-value store backing a session:
// three logical keys (access token, refresh token, serialized profile).
// Absent values are returned as zero values, not errors; errors are reserved
// for storage failures. Implementations must be safe for concurrent use and
// must serve reads from the persisted state rather than an in-memory copy,
// so a token rotated by a concurrent operation is picked up by the next read.
type CredentialRepository interface {
	// AccessToken returns the persisted access token, or "" when absent.
	AccessToken() (string, error)

	// RefreshToken returns the persisted refresh token, or "" when absent.
	RefreshToken() (string, error)

	// SetTokens persists a token pair in one write.
	SetTokens(accessToken, refreshToken string) error

	// Profile returns the cached profile, or nil when absent.
	Profile() (*entity.UserProfile, error)

	// SetProfile persists the full profile, replacing any previous copy.
	SetProfile(profile *entity.UserProfile) error

	// Clear removes all three keys. Clearing an empty store is a no-op.
	Clear() error
}
