// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"gigmarket/internal/domain/entity"
	"gigmarket/internal/domain/service"
)

// ConnState is the presence channel's connection state.
type ConnState string

const (
	// StateNoSession means no authenticated identity exists; no connection
	// is held and the roster is empty.
	StateNoSession ConnState = "no_session"
	// StateConnecting means an identity exists but no live connection yet
	// (including the case where the access token has not appeared).
	StateConnecting ConnState = "connecting"
	// StateConnected means the handshake succeeded and events flow.
	StateConnected ConnState = "connected"
	// StateDisconnected means the transport dropped; the last-known roster
	// is kept in place since the client cannot tell "I am offline" from
	// "everyone else went offline".
	StateDisconnected ConnState = "disconnected"
)

// PresenceUsecase owns the single live realtime connection per session and
// the advisory online-user set, and provides the message plumbing for chat.
type PresenceUsecase interface {
	// SetIdentity reacts to a session identity change. Any existing
	// connection is torn down first; a new one is dialed for a non-empty
	// id. At most one connection is live at any time.
	SetIdentity(ctx context.Context, userID string)

	// Reconnect re-dials for the current identity after a transport drop,
	// reading a fresh access token from the store. No-op when connected or
	// when no identity exists.
	Reconnect(ctx context.Context)

	State() ConnState
	Connected() bool

	// OnlineUsers returns the last-known roster membership.
	OnlineUsers() []string
	IsOnline(userID string) bool

	// SendChat delivers a message over the live connection. Returns
	// ErrDisconnected when the channel is down; callers fall back to REST.
	SendChat(msg *entity.ChatMessage) error

	// Inbox streams chat-related events (messages, receipts, edits,
	// deletes). Roster events are consumed internally.
	Inbox() <-chan service.RealtimeEvent

	// Close tears down any live connection; used at shutdown.
	Close() error
}
