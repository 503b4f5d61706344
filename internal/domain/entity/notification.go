// Package entity contains the core business objects of the project.
package entity

import "time"

// Notification is a backend-generated alert delivered to an account.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // e.g. "proposal_received", "dispute_update", "payment".
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
