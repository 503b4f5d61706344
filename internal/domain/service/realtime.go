package service

import (
	"context"

	"gigmarket/internal/domain/entity"
)

// RealtimeEventType discriminates frames on the realtime channel.
type RealtimeEventType string

const (
	// EventRoster carries the full set of online user ids; it replaces any
	// previously known membership wholesale.
	EventRoster RealtimeEventType = "online-users"
	// EventUserOnline and EventUserOffline are incremental roster updates.
	EventUserOnline  RealtimeEventType = "user-online"
	EventUserOffline RealtimeEventType = "user-offline"
	// EventChatMessage carries a new direct message, including the echo of
	// a message this client sent itself.
	EventChatMessage RealtimeEventType = "receive-message"
	// EventMessageRead, EventMessageEdited and EventMessageDeleted are
	// message lifecycle updates consumed by chat screens.
	EventMessageRead    RealtimeEventType = "message-read"
	EventMessageEdited  RealtimeEventType = "message-edited"
	EventMessageDeleted RealtimeEventType = "message-deleted"
)

// RealtimeEvent is one decoded frame. Only the fields relevant to the event
// type are populated.
type RealtimeEvent struct {
	Type      RealtimeEventType
	UserID    string              // user-online / user-offline
	UserIDs   []string            // online-users
	Message   *entity.ChatMessage // receive-message / message-edited
	MessageID string              // message-read / message-deleted
}

// RealtimeConn is one live connection to the backend's realtime channel.
// Events is closed when the transport drops; Close is idempotent.
type RealtimeConn interface {
	Events() <-chan RealtimeEvent
	Send(event RealtimeEvent) error
	Close() error
}

// RealtimeDialer establishes realtime connections. Each dial reads the
// current access token from the credential store at call time, so a token
// refreshed while disconnected is used on the next attempt.
type RealtimeDialer interface {
	Dial(ctx context.Context, userID string) (RealtimeConn, error)
}
