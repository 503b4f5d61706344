// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role an account can have on the marketplace.
type Role string

const (
	// RoleAdmin indicates a moderator account with platform-wide privileges.
	RoleAdmin Role = "admin"
	// RoleClient indicates an account that posts projects and funds escrow.
	RoleClient Role = "client"
	// RoleFreelancer indicates an account that bids on projects.
	RoleFreelancer Role = "freelancer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleClient, RoleFreelancer:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}
