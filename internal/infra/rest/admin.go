package rest

import (
	"context"
	"net/url"

	"gigmarket/internal/domain/entity"
)

// Admin endpoints. The backend enforces the admin role; these wrappers fail
// with ErrForbidden for other accounts.

// AdminListUsers lists all accounts.
func (c *Client) AdminListUsers(ctx context.Context) ([]*entity.UserProfile, error) {
	var out []*entity.UserProfile
	if err := c.get(ctx, "/admin/users", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// AdminVerifyUser marks an account's email as verified.
func (c *Client) AdminVerifyUser(ctx context.Context, userID string) error {
	return c.patch(ctx, "/admin/users/"+url.PathEscape(userID)+"/verify", nil, nil)
}

// AdminSuspendUser suspends an account.
func (c *Client) AdminSuspendUser(ctx context.Context, userID string) error {
	return c.patch(ctx, "/admin/users/"+url.PathEscape(userID)+"/suspend", nil, nil)
}

// AdminListProjects lists every project on the platform.
func (c *Client) AdminListProjects(ctx context.Context) ([]*entity.Project, error) {
	var out []*entity.Project
	if err := c.get(ctx, "/admin/projects", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// AdminRemoveProject takes a project down.
func (c *Client) AdminRemoveProject(ctx context.Context, id string) error {
	return c.delete(ctx, "/admin/projects/"+url.PathEscape(id))
}

// AdminListDisputes lists every open dispute.
func (c *Client) AdminListDisputes(ctx context.Context) ([]*entity.Dispute, error) {
	var out []*entity.Dispute
	if err := c.get(ctx, "/admin/disputes", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// ResolveDisputeInput is the admin's decision on a dispute.
type ResolveDisputeInput struct {
	Resolution string `json:"resolution"`
	// RefundToClient releases escrow back to the client instead of paying
	// the freelancer out.
	RefundToClient bool `json:"refundToClient"`
}

// AdminResolveDispute closes a dispute with a decision; the backend settles
// escrow accordingly.
func (c *Client) AdminResolveDispute(ctx context.Context, id string, input ResolveDisputeInput) (*entity.Dispute, error) {
	var out entity.Dispute
	if err := c.patch(ctx, "/admin/disputes/"+url.PathEscape(id)+"/resolve", input, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Categories lists the project categories.
func (c *Client) Categories(ctx context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	if err := c.get(ctx, "/categories", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// AdminCreateCategory adds a project category.
func (c *Client) AdminCreateCategory(ctx context.Context, name string) (*entity.Category, error) {
	var out entity.Category
	if err := c.post(ctx, "/admin/categories", map[string]string{"name": name}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// AdminDeleteCategory removes a project category.
func (c *Client) AdminDeleteCategory(ctx context.Context, id string) error {
	return c.delete(ctx, "/admin/categories/"+url.PathEscape(id))
}
