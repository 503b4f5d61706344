// Package entity contains the core business objects of the project.
package entity

import "time"

// ProposalStatus represents the state of a freelancer's bid on a project.
type ProposalStatus string

const (
	ProposalStatusPending   ProposalStatus = "pending"
	ProposalStatusAccepted  ProposalStatus = "accepted"
	ProposalStatusRejected  ProposalStatus = "rejected"
	ProposalStatusWithdrawn ProposalStatus = "withdrawn"
)

// Proposal is a freelancer's bid on an open project.
type Proposal struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"projectId"`
	FreelancerID string         `json:"freelancerId"`
	CoverLetter  string         `json:"coverLetter"`
	BidAmount    float64        `json:"bidAmount"`
	DurationDays int            `json:"durationDays"` // Estimated delivery time in days.
	Status       ProposalStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
}
