package rest

import (
	"context"
	"net/url"

	"gigmarket/internal/domain/entity"
)

// SubmitProposalInput carries a freelancer's bid on a project.
type SubmitProposalInput struct {
	ProjectID    string  `json:"projectId"`
	CoverLetter  string  `json:"coverLetter"`
	BidAmount    float64 `json:"bidAmount"`
	DurationDays int     `json:"durationDays"`
}

// SubmitProposal places a bid on an open project.
func (c *Client) SubmitProposal(ctx context.Context, input SubmitProposalInput) (*entity.Proposal, error) {
	var out entity.Proposal
	if err := c.post(ctx, "/proposals", input, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ProjectProposals lists the bids received on a project the caller owns.
func (c *Client) ProjectProposals(ctx context.Context, projectID string) ([]*entity.Proposal, error) {
	var out []*entity.Proposal
	if err := c.get(ctx, "/projects/"+url.PathEscape(projectID)+"/proposals", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// MyProposals lists the bids the authenticated freelancer has placed.
func (c *Client) MyProposals(ctx context.Context) ([]*entity.Proposal, error) {
	var out []*entity.Proposal
	if err := c.get(ctx, "/proposals/mine", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// AcceptProposal accepts a bid, moving the project into progress and the
// budget into escrow.
func (c *Client) AcceptProposal(ctx context.Context, id string) (*entity.Proposal, error) {
	var out entity.Proposal
	if err := c.patch(ctx, "/proposals/"+url.PathEscape(id)+"/accept", nil, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// RejectProposal declines a bid.
func (c *Client) RejectProposal(ctx context.Context, id string) error {
	return c.patch(ctx, "/proposals/"+url.PathEscape(id)+"/reject", nil, nil)
}

// WithdrawProposal retracts the caller's own bid.
func (c *Client) WithdrawProposal(ctx context.Context, id string) error {
	return c.patch(ctx, "/proposals/"+url.PathEscape(id)+"/withdraw", nil, nil)
}
