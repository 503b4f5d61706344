package rest

import (
	"context"
	"net/url"

	"gigmarket/internal/domain/entity"
)

// RaiseDisputeInput opens a dispute against the other party of a project.
type RaiseDisputeInput struct {
	ProjectID string `json:"projectId"`
	AgainstID string `json:"againstId"`
	Reason    string `json:"reason"`
}

// RaiseDispute opens a new dispute.
func (c *Client) RaiseDispute(ctx context.Context, input RaiseDisputeInput) (*entity.Dispute, error) {
	var out entity.Dispute
	if err := c.post(ctx, "/disputes", input, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// MyDisputes lists disputes the caller is a party to.
func (c *Client) MyDisputes(ctx context.Context) ([]*entity.Dispute, error) {
	var out []*entity.Dispute
	if err := c.get(ctx, "/disputes", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetDispute fetches one dispute.
func (c *Client) GetDispute(ctx context.Context, id string) (*entity.Dispute, error) {
	var out entity.Dispute
	if err := c.get(ctx, "/disputes/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DisputeMessages returns the dispute's message thread, oldest first.
func (c *Client) DisputeMessages(ctx context.Context, id string) ([]*entity.DisputeMessage, error) {
	var out []*entity.DisputeMessage
	if err := c.get(ctx, "/disputes/"+url.PathEscape(id)+"/messages", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// SendDisputeMessage appends a message to the dispute thread.
func (c *Client) SendDisputeMessage(ctx context.Context, id, body string) (*entity.DisputeMessage, error) {
	var out entity.DisputeMessage
	req := map[string]string{"body": body}
	if err := c.post(ctx, "/disputes/"+url.PathEscape(id)+"/messages", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// AddEvidenceInput attaches an uploaded file to a dispute. The file itself
// is stored by the image service; only its URL travels here.
type AddEvidenceInput struct {
	Caption string `json:"caption"`
	FileURL string `json:"fileUrl"`
}

// AddDisputeEvidence records a piece of evidence on a dispute.
func (c *Client) AddDisputeEvidence(ctx context.Context, id string, input AddEvidenceInput) (*entity.DisputeEvidence, error) {
	var out entity.DisputeEvidence
	if err := c.post(ctx, "/disputes/"+url.PathEscape(id)+"/evidence", input, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DisputeEvidence lists the evidence attached to a dispute.
func (c *Client) DisputeEvidence(ctx context.Context, id string) ([]*entity.DisputeEvidence, error) {
	var out []*entity.DisputeEvidence
	if err := c.get(ctx, "/disputes/"+url.PathEscape(id)+"/evidence", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// DisputeTimeline returns the dispute's audit trail.
func (c *Client) DisputeTimeline(ctx context.Context, id string) ([]*entity.DisputeTimelineEntry, error) {
	var out []*entity.DisputeTimelineEntry
	if err := c.get(ctx, "/disputes/"+url.PathEscape(id)+"/timeline", &out); err != nil {
		return nil, err
	}

	return out, nil
}
