// Package entity contains the core business objects of the project.
package entity

import "time"

// ChatMessage is a direct message between two accounts. ClientID is a
// client-generated idempotency id: a message sent over the live channel and
// its REST fallback converge on the same ClientID, so receivers can
// deduplicate whichever copy arrives second.
type ChatMessage struct {
	ID          string     `json:"id"` // Backend-assigned identity; empty until acknowledged.
	ClientID    string     `json:"clientId"`
	SenderID    string     `json:"senderId"`
	RecipientID string     `json:"recipientId"`
	Body        string     `json:"body"`
	SentAt      time.Time  `json:"sentAt"`
	EditedAt    *time.Time `json:"editedAt,omitempty"`
	ReadAt      *time.Time `json:"readAt,omitempty"`
	Deleted     bool       `json:"deleted"`
}
