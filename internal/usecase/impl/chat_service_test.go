package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"gigmarket/internal/domain/entity"
	domainerrors "gigmarket/internal/domain/errors"
	"gigmarket/internal/domain/service"
	"gigmarket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession pins the session to one identity.
type fakeSession struct {
	user *entity.UserProfile
}

var _ usecase.SessionUsecase = (*fakeSession)(nil)

func (f *fakeSession) Bootstrap(context.Context) error { return nil }
func (f *fakeSession) Bootstrapped() bool              { return true }

func (f *fakeSession) Current() usecase.Snapshot {
	source := usecase.SourceConfirmed
	if f.user == nil {
		source = usecase.SourceNone
	}

	return usecase.Snapshot{User: f.user, Source: source}
}

func (f *fakeSession) Signup(context.Context, usecase.SignupInput) error { return nil }
func (f *fakeSession) Login(context.Context, usecase.LoginInput) error   { return nil }
func (f *fakeSession) Logout(context.Context) error                      { return nil }

func (f *fakeSession) UpdateProfile(context.Context, *entity.ProfileUpdate) error { return nil }
func (f *fakeSession) RefreshUser(context.Context) error                          { return nil }

func (f *fakeSession) Watch() <-chan string { return make(chan string) }

// fakeChatGateway records REST sends.
type fakeChatGateway struct {
	mu     sync.Mutex
	sent   []*entity.ChatMessage
	sendFn func(ctx context.Context, msg *entity.ChatMessage) (*entity.ChatMessage, error)
}

var _ service.ChatGateway = (*fakeChatGateway)(nil)

func (f *fakeChatGateway) SendMessage(ctx context.Context, msg *entity.ChatMessage) (*entity.ChatMessage, error) {
	f.mu.Lock()
	f.sent = append(f.sent, msg)
	f.mu.Unlock()
	if f.sendFn != nil {
		return f.sendFn(ctx, msg)
	}
	echo := *msg
	echo.ID = "msg-" + msg.ClientID

	return &echo, nil
}

func (f *fakeChatGateway) History(context.Context, string) ([]*entity.ChatMessage, error) {
	return nil, nil
}

func (f *fakeChatGateway) MarkRead(context.Context, string) error { return nil }

func (f *fakeChatGateway) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.sent)
}

type chatHarness struct {
	chat     usecase.ChatUsecase
	presence usecase.PresenceUsecase
	gateway  *fakeChatGateway
	conn     *fakeConn
	cancel   context.CancelFunc
}

func newChatHarness(t *testing.T, connected bool) *chatHarness {
	t.Helper()
	conn := newFakeConn()
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) {
		if !connected {
			return nil, domainerrors.ErrNetworkUnavailable
		}

		return conn, nil
	}}
	presence := newTestPresence(dialer)
	presence.SetIdentity(context.Background(), "user-1")

	gateway := &fakeChatGateway{}
	chat := NewChatService(ChatServiceParams{
		Presence: presence,
		Gateway:  gateway,
		Session:  &fakeSession{user: &entity.UserProfile{ID: "user-1"}},
		Logger:   testLogger(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	go chat.Run(ctx)
	t.Cleanup(cancel)

	return &chatHarness{chat: chat, presence: presence, gateway: gateway, conn: conn, cancel: cancel}
}

func TestChatService_Send_PrefersRealtime(t *testing.T) {
	h := newChatHarness(t, true)

	msg, err := h.chat.Send(context.Background(), "user-2", "hello")

	require.NoError(t, err)
	assert.NotEmpty(t, msg.ClientID)
	assert.Equal(t, "user-1", msg.SenderID)
	assert.Equal(t, "user-2", msg.RecipientID)

	h.conn.mu.Lock()
	defer h.conn.mu.Unlock()
	require.Len(t, h.conn.sent, 1)
	assert.Equal(t, 0, h.gateway.sentCount())
}

func TestChatService_Send_FallsBackToREST(t *testing.T) {
	h := newChatHarness(t, false)

	msg, err := h.chat.Send(context.Background(), "user-2", "hello")

	require.NoError(t, err)
	assert.Equal(t, 1, h.gateway.sentCount())
	assert.Equal(t, "msg-"+msg.ClientID, msg.ID)
}

func TestChatService_Send_RequiresSession(t *testing.T) {
	chat := NewChatService(ChatServiceParams{
		Presence: newTestPresence(&fakeDialer{next: func(string) (service.RealtimeConn, error) {
			return nil, domainerrors.ErrNetworkUnavailable
		}}),
		Gateway: &fakeChatGateway{},
		Session: &fakeSession{},
		Logger:  testLogger(),
	})

	_, err := chat.Send(context.Background(), "user-2", "hello")

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestChatService_UniqueClientIDs(t *testing.T) {
	h := newChatHarness(t, false)

	first, err := h.chat.Send(context.Background(), "user-2", "one")
	require.NoError(t, err)
	second, err := h.chat.Send(context.Background(), "user-2", "two")
	require.NoError(t, err)

	assert.NotEqual(t, first.ClientID, second.ClientID)
}

func TestChatService_Incoming_ForwardsMessages(t *testing.T) {
	h := newChatHarness(t, true)

	h.conn.events <- service.RealtimeEvent{
		Type:    service.EventChatMessage,
		Message: &entity.ChatMessage{ClientID: "cid-1", SenderID: "user-2", Body: "hi"},
	}

	select {
	case msg := <-h.chat.Incoming():
		assert.Equal(t, "hi", msg.Body)
		assert.Equal(t, "user-2", msg.SenderID)
	case <-time.After(time.Second):
		t.Fatal("expected the message to surface")
	}
}

func TestChatService_Incoming_DropsDuplicates(t *testing.T) {
	h := newChatHarness(t, true)

	for range 2 {
		h.conn.events <- service.RealtimeEvent{
			Type:    service.EventChatMessage,
			Message: &entity.ChatMessage{ClientID: "cid-1", SenderID: "user-2", Body: "hi"},
		}
	}
	h.conn.events <- service.RealtimeEvent{
		Type:    service.EventChatMessage,
		Message: &entity.ChatMessage{ClientID: "cid-2", SenderID: "user-2", Body: "second"},
	}

	first := <-h.chat.Incoming()
	assert.Equal(t, "cid-1", first.ClientID)

	select {
	case next := <-h.chat.Incoming():
		// The duplicate of cid-1 must have been swallowed.
		assert.Equal(t, "cid-2", next.ClientID)
	case <-time.After(time.Second):
		t.Fatal("expected the second distinct message")
	}
}

func TestChatService_Incoming_DropsOwnEcho(t *testing.T) {
	h := newChatHarness(t, true)

	sent, err := h.chat.Send(context.Background(), "user-2", "hello")
	require.NoError(t, err)

	// The server echoes our own message back over the socket.
	h.conn.events <- service.RealtimeEvent{Type: service.EventChatMessage, Message: sent}
	h.conn.events <- service.RealtimeEvent{
		Type:    service.EventChatMessage,
		Message: &entity.ChatMessage{ClientID: "cid-other", SenderID: "user-2", Body: "reply"},
	}

	select {
	case msg := <-h.chat.Incoming():
		assert.Equal(t, "cid-other", msg.ClientID)
	case <-time.After(time.Second):
		t.Fatal("expected only the reply to surface")
	}
}
