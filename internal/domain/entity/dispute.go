// Package entity contains the core business objects of the project.
package entity

import "time"

// DisputeStatus represents the moderation state of a dispute.
type DisputeStatus string

const (
	DisputeStatusOpen        DisputeStatus = "open"
	DisputeStatusUnderReview DisputeStatus = "under_review"
	DisputeStatusResolved    DisputeStatus = "resolved"
)

// Dispute is raised by either party of a project when delivery or payment
// is contested. Resolution is an admin decision applied server-side.
type Dispute struct {
	ID         string        `json:"id"`
	ProjectID  string        `json:"projectId"`
	RaisedByID string        `json:"raisedById"`
	AgainstID  string        `json:"againstId"`
	Reason     string        `json:"reason"`
	Status     DisputeStatus `json:"status"`
	Resolution string        `json:"resolution,omitempty"` // Admin's resolution note, set when resolved.
	CreatedAt  time.Time     `json:"createdAt"`
}

// DisputeMessage is a message exchanged on a dispute thread.
type DisputeMessage struct {
	ID        string    `json:"id"`
	DisputeID string    `json:"disputeId"`
	SenderID  string    `json:"senderId"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sentAt"`
}

// DisputeEvidence is an uploaded attachment supporting one side of a dispute.
type DisputeEvidence struct {
	ID           string    `json:"id"`
	DisputeID    string    `json:"disputeId"`
	UploadedByID string    `json:"uploadedById"`
	Caption      string    `json:"caption"`
	FileURL      string    `json:"fileUrl"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// DisputeTimelineEntry is one step of the dispute's audit trail.
type DisputeTimelineEntry struct {
	ID        string    `json:"id"`
	DisputeID string    `json:"disputeId"`
	Event     string    `json:"event"` // e.g. "opened", "evidence_added", "resolved".
	ActorID   string    `json:"actorId"`
	At        time.Time `json:"at"`
}
