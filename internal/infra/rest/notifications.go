package rest

import (
	"context"
	"net/url"

	"gigmarket/internal/domain/entity"
)

// Notifications lists the caller's notifications, newest first.
func (c *Client) Notifications(ctx context.Context) ([]*entity.Notification, error) {
	var out []*entity.Notification
	if err := c.get(ctx, "/notifications", &out); err != nil {
		return nil, err
	}

	return out, nil
}

// MarkNotificationRead marks one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.patch(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil, nil)
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.patch(ctx, "/notifications/read-all", nil, nil)
}

// DeleteNotification removes a notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.delete(ctx, "/notifications/"+url.PathEscape(id))
}
