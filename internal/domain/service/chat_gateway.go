package service

import (
	"context"

	"gigmarket/internal/domain/entity"
)

// ChatGateway is the REST fallback path for chat. Messages sent here and
// over the realtime channel converge on the same backend identity keyed by
// the client-generated idempotency id.
type ChatGateway interface {
	// SendMessage delivers a message over REST and returns the stored copy
	// with its backend-assigned ID.
	SendMessage(ctx context.Context, msg *entity.ChatMessage) (*entity.ChatMessage, error)

	// History returns the conversation with another account, oldest first.
	History(ctx context.Context, otherUserID string) ([]*entity.ChatMessage, error)

	// MarkRead records that the conversation with another account was read.
	MarkRead(ctx context.Context, otherUserID string) error
}
