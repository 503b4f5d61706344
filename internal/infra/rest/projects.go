package rest

import (
	"context"
	"net/url"
	"strconv"

	"gigmarket/internal/domain/entity"
)

// CreateProjectInput carries the fields a client supplies when posting work.
type CreateProjectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	CategoryID  string   `json:"categoryId"`
	Skills      []string `json:"skills,omitempty"`
	Budget      float64  `json:"budget"`
	Deadline    *string  `json:"deadline,omitempty"`
}

// CreateProject posts a new project.
func (c *Client) CreateProject(ctx context.Context, input CreateProjectInput) (*entity.Project, error) {
	var out entity.Project
	if err := c.post(ctx, "/projects", input, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// ListProjects returns open projects, optionally filtered by category.
func (c *Client) ListProjects(ctx context.Context, categoryID string) ([]*entity.Project, error) {
	path := "/projects"
	if categoryID != "" {
		path += "?category=" + url.QueryEscape(categoryID)
	}
	var out []*entity.Project
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}

	return out, nil
}

// MyProjects returns the projects owned by the authenticated client account.
func (c *Client) MyProjects(ctx context.Context) ([]*entity.Project, error) {
	var out []*entity.Project
	if err := c.get(ctx, "/projects/mine", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// GetProject fetches one project.
func (c *Client) GetProject(ctx context.Context, id string) (*entity.Project, error) {
	var out entity.Project
	if err := c.get(ctx, "/projects/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UpdateProject edits a project the caller owns.
func (c *Client) UpdateProject(ctx context.Context, id string, input CreateProjectInput) (*entity.Project, error) {
	var out entity.Project
	if err := c.put(ctx, "/projects/"+url.PathEscape(id), input, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// DeleteProject removes a project the caller owns.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.delete(ctx, "/projects/"+url.PathEscape(id))
}

// FreelancerFilter narrows a freelancer search.
type FreelancerFilter struct {
	Skill         string
	MinRating     float64
	MaxHourlyRate float64
}

// SearchFreelancers returns freelancer profiles matching the filter.
func (c *Client) SearchFreelancers(ctx context.Context, filter FreelancerFilter) ([]*entity.UserProfile, error) {
	query := url.Values{}
	if filter.Skill != "" {
		query.Set("skill", filter.Skill)
	}
	if filter.MinRating > 0 {
		query.Set("minRating", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	}
	if filter.MaxHourlyRate > 0 {
		query.Set("maxRate", strconv.FormatFloat(filter.MaxHourlyRate, 'f', -1, 64))
	}

	path := "/freelancers"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out []*entity.UserProfile
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}

	return out, nil
}
