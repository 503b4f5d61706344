// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"gigmarket/internal/domain/entity"
)

// ChatUsecase sends and receives direct messages, preferring the live
// channel and falling back to REST, with deterministic deduplication keyed
// on client-generated message ids.
type ChatUsecase interface {
	// Send delivers a message to another account. The returned message
	// carries the backend identity when the REST path was used, or just
	// the client id when the live channel accepted it.
	Send(ctx context.Context, recipientID, body string) (*entity.ChatMessage, error)

	// History returns the conversation with another account, oldest first.
	History(ctx context.Context, otherUserID string) ([]*entity.ChatMessage, error)

	// MarkRead records that the conversation with another account was read.
	MarkRead(ctx context.Context, otherUserID string) error

	// Run consumes the presence inbox until the context ends, deduplicating
	// echoes of this client's own sends.
	Run(ctx context.Context)

	// Incoming streams deduplicated messages from other accounts.
	Incoming() <-chan *entity.ChatMessage
}
