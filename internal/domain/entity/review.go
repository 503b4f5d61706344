// Package entity contains the core business objects of the project.
package entity

import "time"

// Review is feedback left by one party of a completed project about the other.
type Review struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	ReviewerID string    `json:"reviewerId"`
	RevieweeID string    `json:"revieweeId"`
	Rating     int       `json:"rating"` // 1..5, enforced server-side.
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}
