// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "slices"

// UserProfile is the denormalized view of an authenticated account as the
// backend returns it. IDs are backend-assigned opaque strings.
type UserProfile struct {
	ID         string `json:"id"`         // The backend-assigned identifier for the account.
	UserName   string `json:"userName"`   // The display name chosen at signup.
	Email      string `json:"email"`      // The login identifier.
	Role       Role   `json:"role"`       // The account role (admin, client or freelancer).
	IsVerified bool   `json:"isVerified"` // Whether the email address has been confirmed.

	// Freelancer-oriented profile fields. All optional; zero values mean
	// the backend has nothing recorded for them.
	Bio               string   `json:"bio,omitempty"`
	Skills            []string `json:"skills,omitempty"`
	HourlyRate        float64  `json:"hourlyRate,omitempty"`
	Portfolio         string   `json:"portfolio,omitempty"`
	Rating            float64  `json:"rating,omitempty"`
	ReviewsCount      int      `json:"reviewsCount,omitempty"`
	ProjectsCompleted int      `json:"projectsCompleted,omitempty"`
	ProfileImage      string   `json:"profileImage,omitempty"` // Data URI or URL.
}

// Clone returns a copy of the profile so callers can hand out read-only
// snapshots without sharing the skills slice.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Skills != nil {
		cp.Skills = slices.Clone(p.Skills)
	}

	return &cp
}

// ProfileUpdate is a partial profile mutation. Nil fields are left untouched
// when the update is merged into a cached profile.
type ProfileUpdate struct {
	UserName     *string   `json:"userName,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Skills       *[]string `json:"skills,omitempty"`
	HourlyRate   *float64  `json:"hourlyRate,omitempty"`
	Portfolio    *string   `json:"portfolio,omitempty"`
	ProfileImage *string   `json:"profileImage,omitempty"`
}

// Merge applies the non-nil fields of the update onto a copy of the profile
// and returns it. The receiver is never mutated.
func (p *UserProfile) Merge(update *ProfileUpdate) *UserProfile {
	merged := p.Clone()
	if update == nil {
		return merged
	}
	if update.UserName != nil {
		merged.UserName = *update.UserName
	}
	if update.Bio != nil {
		merged.Bio = *update.Bio
	}
	if update.Skills != nil {
		merged.Skills = slices.Clone(*update.Skills)
	}
	if update.HourlyRate != nil {
		merged.HourlyRate = *update.HourlyRate
	}
	if update.Portfolio != nil {
		merged.Portfolio = *update.Portfolio
	}
	if update.ProfileImage != nil {
		merged.ProfileImage = *update.ProfileImage
	}

	return merged
}
