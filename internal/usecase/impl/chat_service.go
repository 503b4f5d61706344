package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gigmarket/internal/domain/entity"
	domainerrors "gigmarket/internal/domain/errors"
	"gigmarket/internal/domain/service"
	"gigmarket/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	incomingBuffer = 64
	// seenLimit bounds the dedupe set. Old ids are forgotten wholesale
	// once the limit is reached; a duplicate arriving after thousands of
	// intervening messages is not a realistic failure mode.
	seenLimit = 4096
)

// chatService implements the ChatUsecase interface.
type chatService struct {
	presence usecase.PresenceUsecase
	gateway  service.ChatGateway
	session  usecase.SessionUsecase
	logger   *slog.Logger

	mu   sync.Mutex
	seen map[string]struct{}

	incoming chan *entity.ChatMessage
}

// ChatServiceParams holds dependencies for the chat service, injected by Fx.
type ChatServiceParams struct {
	fx.In

	Presence usecase.PresenceUsecase
	Gateway  service.ChatGateway
	Session  usecase.SessionUsecase
	Logger   *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		presence: params.Presence,
		gateway:  params.Gateway,
		session:  params.Session,
		logger:   params.Logger,
		seen:     make(map[string]struct{}),
		incoming: make(chan *entity.ChatMessage, incomingBuffer),
	}
}

// Send delivers a message over the realtime channel when it is live and
// falls back to the REST endpoint otherwise. Both paths carry the same
// client id so the receiver can collapse duplicates.
func (srv *chatService) Send(ctx context.Context, recipientID, body string) (*entity.ChatMessage, error) {
	snapshot := srv.session.Current()
	if snapshot.User == nil {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("no active session")
	}

	message := &entity.ChatMessage{
		ClientID:    uuid.NewString(),
		SenderID:    snapshot.User.ID,
		RecipientID: recipientID,
		Body:        body,
		SentAt:      time.Now(),
	}

	// An echo of our own message must not resurface as incoming.
	srv.markSeen(message.ClientID)

	if srv.presence.Connected() {
		if err := srv.presence.SendChat(message); err == nil {
			return message, nil
		} else if !errors.Is(err, domainerrors.ErrDisconnected) {
			srv.logger.Warn("Realtime send failed, falling back to REST", slog.Any("error", err))
		}
	}

	sent, err := srv.gateway.SendMessage(ctx, message)
	if err != nil {
		return nil, errors.Wrap(err, "send chat message")
	}

	return sent, nil
}

// History fetches the stored conversation with another user.
func (srv *chatService) History(ctx context.Context, otherUserID string) ([]*entity.ChatMessage, error) {
	messages, err := srv.gateway.History(ctx, otherUserID)
	if err != nil {
		return nil, errors.Wrap(err, "fetch chat history")
	}

	return messages, nil
}

// MarkRead records that the conversation with another user has been read.
func (srv *chatService) MarkRead(ctx context.Context, otherUserID string) error {
	if err := srv.gateway.MarkRead(ctx, otherUserID); err != nil {
		return errors.Wrap(err, "mark conversation read")
	}

	return nil
}

// Run pumps realtime chat events into the incoming stream until the context
// ends. Duplicate deliveries, REST echo plus realtime push, are dropped by
// client id.
func (srv *chatService) Run(ctx context.Context) {
	inbox := srv.presence.Inbox()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-inbox:
			if !ok {
				return
			}
			if event.Type != service.EventChatMessage || event.Message == nil {
				continue
			}
			if event.Message.ClientID != "" && srv.alreadySeen(event.Message.ClientID) {
				srv.logger.Debug("Dropping duplicate chat message", slog.String("clientId", event.Message.ClientID))

				continue
			}
			select {
			case srv.incoming <- event.Message:
			default:
				srv.logger.Warn("Incoming chat buffer full, dropping message")
			}
		}
	}
}

// Incoming exposes deduplicated inbound chat messages.
func (srv *chatService) Incoming() <-chan *entity.ChatMessage {
	return srv.incoming
}

func (srv *chatService) markSeen(clientID string) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if len(srv.seen) >= seenLimit {
		srv.seen = make(map[string]struct{})
	}
	srv.seen[clientID] = struct{}{}
}

// alreadySeen reports and records whether a client id was processed before.
func (srv *chatService) alreadySeen(clientID string) bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if _, ok := srv.seen[clientID]; ok {
		return true
	}
	if len(srv.seen) >= seenLimit {
		srv.seen = make(map[string]struct{})
	}
	srv.seen[clientID] = struct{}{}

	return false
}
