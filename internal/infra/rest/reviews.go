package rest

import (
	"context"
	"net/url"

	"gigmarket/internal/domain/entity"
)

// CreateReviewInput carries feedback on the other party of a completed project.
type CreateReviewInput struct {
	ProjectID  string `json:"projectId"`
	RevieweeID string `json:"revieweeId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// CreateReview leaves a review on a completed project.
func (c *Client) CreateReview(ctx context.Context, input CreateReviewInput) (*entity.Review, error) {
	var out entity.Review
	if err := c.post(ctx, "/reviews", input, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// UserReviews lists the reviews received by an account.
func (c *Client) UserReviews(ctx context.Context, userID string) ([]*entity.Review, error) {
	var out []*entity.Review
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/reviews", &out); err != nil {
		return nil, err
	}

	return out, nil
}
