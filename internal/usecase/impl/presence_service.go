package impl

import (
	"context"
	"log/slog"
	"sync"

	"gigmarket/internal/domain/entity"
	domainerrors "gigmarket/internal/domain/errors"
	"gigmarket/internal/domain/service"
	"gigmarket/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// inboxBuffer bounds the fan-out channel toward chat consumers.
const inboxBuffer = 64

// presenceService implements the PresenceUsecase interface.
type presenceService struct {
	dialer service.RealtimeDialer
	logger *slog.Logger

	mu     sync.RWMutex
	state  usecase.ConnState
	userID string
	conn   service.RealtimeConn
	roster map[string]struct{}

	inbox chan service.RealtimeEvent
}

// PresenceServiceParams holds dependencies for the presence service, injected by Fx.
type PresenceServiceParams struct {
	fx.In

	Dialer service.RealtimeDialer
	Logger *slog.Logger
}

// NewPresenceService is the constructor for presenceService.
func NewPresenceService(params PresenceServiceParams) usecase.PresenceUsecase {
	return &presenceService{
		dialer: params.Dialer,
		logger: params.Logger,
		state:  usecase.StateNoSession,
		roster: make(map[string]struct{}),
		inbox:  make(chan service.RealtimeEvent, inboxBuffer),
	}
}

// SetIdentity rebinds the channel to a user id. An empty id tears the
// connection down; a changed id tears down and redials. Setting the same id
// while connecting or connected is a no-op.
func (srv *presenceService) SetIdentity(ctx context.Context, userID string) {
	srv.mu.Lock()
	if srv.userID == userID &&
		(srv.state == usecase.StateConnected || srv.state == usecase.StateConnecting) {
		srv.mu.Unlock()

		return
	}
	srv.teardownLocked()
	srv.userID = userID
	if userID == "" {
		srv.state = usecase.StateNoSession
		srv.mu.Unlock()

		return
	}
	srv.state = usecase.StateConnecting
	srv.mu.Unlock()

	srv.connect(ctx, userID)
}

// Reconnect redials for the current identity after a drop. It does nothing
// while connected or without an identity.
func (srv *presenceService) Reconnect(ctx context.Context) {
	srv.mu.Lock()
	userID := srv.userID
	if userID == "" || srv.state == usecase.StateConnected {
		srv.mu.Unlock()

		return
	}
	srv.state = usecase.StateConnecting
	srv.mu.Unlock()

	srv.connect(ctx, userID)
}

func (srv *presenceService) connect(ctx context.Context, userID string) {
	conn, err := srv.dialer.Dial(ctx, userID)
	if err != nil {
		srv.mu.Lock()
		if srv.userID != userID || srv.conn != nil {
			srv.mu.Unlock()

			return
		}
		if errors.Is(err, domainerrors.ErrUnauthorized) {
			// Token missing or rejected at handshake. Stay in
			// connecting so a later Reconnect, after the session
			// refreshes, reads the new token.
			srv.logger.Warn("Realtime dial unauthorized", slog.String("userId", userID))
		} else {
			srv.state = usecase.StateDisconnected
			srv.logger.Warn("Realtime dial failed", slog.String("userId", userID), slog.Any("error", err))
		}
		srv.mu.Unlock()

		return
	}

	srv.mu.Lock()
	if srv.userID != userID || srv.conn != nil {
		// Identity changed, or a concurrent dial already won, while this
		// handshake was in flight. The losing connection never becomes
		// srv.conn, so at most one stays live.
		srv.mu.Unlock()
		if closeErr := conn.Close(); closeErr != nil {
			srv.logger.Debug("Closing superseded connection", slog.Any("error", closeErr))
		}

		return
	}
	srv.conn = conn
	srv.state = usecase.StateConnected
	srv.mu.Unlock()
	srv.logger.Info("Realtime channel connected", slog.String("userId", userID))

	go srv.consume(conn)
}

// consume applies the event stream of one connection until it closes.
// Events from a superseded connection are dropped.
func (srv *presenceService) consume(conn service.RealtimeConn) {
	for event := range conn.Events() {
		srv.mu.Lock()
		if srv.conn != conn {
			srv.mu.Unlock()

			return
		}
		switch event.Type {
		case service.EventRoster:
			// Authoritative replacement, not a merge.
			srv.roster = make(map[string]struct{}, len(event.UserIDs))
			for _, id := range event.UserIDs {
				srv.roster[id] = struct{}{}
			}
		case service.EventUserOnline:
			srv.roster[event.UserID] = struct{}{}
		case service.EventUserOffline:
			delete(srv.roster, event.UserID)
		}
		srv.mu.Unlock()

		switch event.Type {
		case service.EventChatMessage, service.EventMessageRead,
			service.EventMessageEdited, service.EventMessageDeleted:
			select {
			case srv.inbox <- event:
			default:
				srv.logger.Warn("Inbox full, dropping realtime event", slog.String("event", string(event.Type)))
			}
		}
	}

	srv.mu.Lock()
	if srv.conn != conn {
		srv.mu.Unlock()

		return
	}
	// The roster is kept as last-known data; State tells callers it is stale.
	srv.conn = nil
	srv.state = usecase.StateDisconnected
	srv.mu.Unlock()
	srv.logger.Info("Realtime channel disconnected")
}

// State reports the current connection lifecycle state.
func (srv *presenceService) State() usecase.ConnState {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	return srv.state
}

// Connected reports whether the channel is live.
func (srv *presenceService) Connected() bool {
	return srv.State() == usecase.StateConnected
}

// OnlineUsers returns the ids currently known online, in no particular order.
func (srv *presenceService) OnlineUsers() []string {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	ids := make([]string, 0, len(srv.roster))
	for id := range srv.roster {
		ids = append(ids, id)
	}

	return ids
}

// IsOnline reports whether a specific user is in the roster.
func (srv *presenceService) IsOnline(userID string) bool {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	_, ok := srv.roster[userID]

	return ok
}

// SendChat pushes a chat message over the live channel.
func (srv *presenceService) SendChat(message *entity.ChatMessage) error {
	srv.mu.RLock()
	conn := srv.conn
	connected := srv.state == usecase.StateConnected
	srv.mu.RUnlock()

	if !connected || conn == nil {
		return domainerrors.ErrDisconnected.WrapMessage("realtime channel is not connected")
	}
	if err := conn.Send(service.RealtimeEvent{Type: service.EventChatMessage, Message: message}); err != nil {
		return errors.Wrap(err, "send chat over realtime channel")
	}

	return nil
}

// Inbox exposes chat-related events for downstream consumers.
func (srv *presenceService) Inbox() <-chan service.RealtimeEvent {
	return srv.inbox
}

// Close tears the channel down and forgets the identity.
func (srv *presenceService) Close() error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.teardownLocked()
	srv.userID = ""
	srv.state = usecase.StateNoSession

	return nil
}

// teardownLocked closes any live connection and resets the roster.
// Callers must hold srv.mu.
func (srv *presenceService) teardownLocked() {
	if srv.conn != nil {
		if err := srv.conn.Close(); err != nil {
			srv.logger.Debug("Closing realtime connection", slog.Any("error", err))
		}
		srv.conn = nil
	}
	srv.roster = make(map[string]struct{})
}
