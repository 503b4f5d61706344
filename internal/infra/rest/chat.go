package rest

import (
	"context"
	"net/url"

	"gigmarket/internal/domain/entity"
	"gigmarket/internal/domain/service"
)

// Client implements the REST fallback path for chat.
var _ service.ChatGateway = (*Client)(nil)

type sendMessageRequest struct {
	ClientID    string `json:"clientId"`
	RecipientID string `json:"recipientId"`
	Body        string `json:"body"`
}

// SendMessage delivers a chat message over REST. The backend keys storage on
// the client-generated id, so a duplicate arriving over the live channel
// resolves to the same message.
func (c *Client) SendMessage(ctx context.Context, msg *entity.ChatMessage) (*entity.ChatMessage, error) {
	var out entity.ChatMessage
	req := sendMessageRequest{ClientID: msg.ClientID, RecipientID: msg.RecipientID, Body: msg.Body}
	if err := c.post(ctx, "/messages", req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// History returns the conversation with another account, oldest first.
func (c *Client) History(ctx context.Context, otherUserID string) ([]*entity.ChatMessage, error) {
	var out []*entity.ChatMessage
	if err := c.get(ctx, "/messages/"+url.PathEscape(otherUserID), &out); err != nil {
		return nil, err
	}

	return out, nil
}

// MarkRead marks every message in the conversation with another account read.
func (c *Client) MarkRead(ctx context.Context, otherUserID string) error {
	return c.patch(ctx, "/messages/"+url.PathEscape(otherUserID)+"/read", nil, nil)
}
