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

// fakeConn is a scripted realtime connection.
type fakeConn struct {
	events chan service.RealtimeEvent

	mu     sync.Mutex
	sent   []service.RealtimeEvent
	closed bool
}

var _ service.RealtimeConn = (*fakeConn)(nil)

func newFakeConn() *fakeConn {
	return &fakeConn{events: make(chan service.RealtimeEvent, 16)}
}

func (c *fakeConn) Events() <-chan service.RealtimeEvent {
	return c.events
}

func (c *fakeConn) Send(event service.RealtimeEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, event)

	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.events)
	}

	return nil
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed
}

// fakeDialer records dials and hands out scripted connections.
type fakeDialer struct {
	mu    sync.Mutex
	dials []string
	next  func(userID string) (service.RealtimeConn, error)
}

var _ service.RealtimeDialer = (*fakeDialer)(nil)

func (d *fakeDialer) Dial(_ context.Context, userID string) (service.RealtimeConn, error) {
	d.mu.Lock()
	d.dials = append(d.dials, userID)
	d.mu.Unlock()

	return d.next(userID)
}

func (d *fakeDialer) dialCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.dials)
}

func newTestPresence(dialer service.RealtimeDialer) usecase.PresenceUsecase {
	return NewPresenceService(PresenceServiceParams{Dialer: dialer, Logger: testLogger()})
}

// eventually polls a condition; the consume loop runs on its own goroutine.
func eventually(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond, msg)
}

func TestPresenceService_SetIdentity_Connects(t *testing.T) {
	conn := newFakeConn()
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) { return conn, nil }}
	presence := newTestPresence(dialer)

	presence.SetIdentity(context.Background(), "user-1")

	assert.Equal(t, usecase.StateConnected, presence.State())
	assert.True(t, presence.Connected())
	assert.Equal(t, 1, dialer.dialCount())
}

func TestPresenceService_SetIdentity_SameID_NoRedial(t *testing.T) {
	conn := newFakeConn()
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) { return conn, nil }}
	presence := newTestPresence(dialer)

	presence.SetIdentity(context.Background(), "user-1")
	presence.SetIdentity(context.Background(), "user-1")

	assert.Equal(t, 1, dialer.dialCount())
	assert.False(t, conn.isClosed())
}

func TestPresenceService_SetIdentity_NewID_TearsDownFirst(t *testing.T) {
	first := newFakeConn()
	second := newFakeConn()
	conns := []*fakeConn{first, second}
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) {
		conn := conns[0]
		conns = conns[1:]

		return conn, nil
	}}
	presence := newTestPresence(dialer)

	presence.SetIdentity(context.Background(), "user-1")
	presence.SetIdentity(context.Background(), "user-2")

	assert.True(t, first.isClosed())
	assert.False(t, second.isClosed())
	assert.Equal(t, usecase.StateConnected, presence.State())
	assert.Equal(t, 2, dialer.dialCount())
}

func TestPresenceService_SetIdentity_Empty_IsLogout(t *testing.T) {
	conn := newFakeConn()
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) { return conn, nil }}
	presence := newTestPresence(dialer)

	presence.SetIdentity(context.Background(), "user-1")
	conn.events <- service.RealtimeEvent{Type: service.EventRoster, UserIDs: []string{"user-2"}}
	eventually(t, func() bool { return presence.IsOnline("user-2") }, "roster should apply")

	presence.SetIdentity(context.Background(), "")

	assert.Equal(t, usecase.StateNoSession, presence.State())
	assert.True(t, conn.isClosed())
	assert.Empty(t, presence.OnlineUsers())
}

func TestPresenceService_RosterEvents(t *testing.T) {
	conn := newFakeConn()
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) { return conn, nil }}
	presence := newTestPresence(dialer)
	presence.SetIdentity(context.Background(), "user-1")

	// A full roster push replaces whatever was known.
	conn.events <- service.RealtimeEvent{Type: service.EventRoster, UserIDs: []string{"a", "b"}}
	eventually(t, func() bool { return presence.IsOnline("a") && presence.IsOnline("b") }, "roster should apply")

	conn.events <- service.RealtimeEvent{Type: service.EventRoster, UserIDs: []string{"c"}}
	eventually(t, func() bool { return presence.IsOnline("c") && !presence.IsOnline("a") }, "second roster should replace the first")

	// Join and leave are idempotent single-user deltas.
	conn.events <- service.RealtimeEvent{Type: service.EventUserOnline, UserID: "d"}
	conn.events <- service.RealtimeEvent{Type: service.EventUserOnline, UserID: "d"}
	eventually(t, func() bool { return presence.IsOnline("d") }, "join should apply")

	conn.events <- service.RealtimeEvent{Type: service.EventUserOffline, UserID: "d"}
	conn.events <- service.RealtimeEvent{Type: service.EventUserOffline, UserID: "d"}
	eventually(t, func() bool { return !presence.IsOnline("d") }, "leave should apply")
	assert.True(t, presence.IsOnline("c"))
}

func TestPresenceService_Disconnect_KeepsLastRoster(t *testing.T) {
	conn := newFakeConn()
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) { return conn, nil }}
	presence := newTestPresence(dialer)
	presence.SetIdentity(context.Background(), "user-1")

	conn.events <- service.RealtimeEvent{Type: service.EventRoster, UserIDs: []string{"a"}}
	eventually(t, func() bool { return presence.IsOnline("a") }, "roster should apply")

	require.NoError(t, conn.Close())
	eventually(t, func() bool { return presence.State() == usecase.StateDisconnected }, "close should disconnect")

	// Last-known data stays readable; State already says it is stale.
	assert.True(t, presence.IsOnline("a"))
	assert.False(t, presence.Connected())
}

func TestPresenceService_Reconnect_AfterDrop(t *testing.T) {
	first := newFakeConn()
	second := newFakeConn()
	conns := []*fakeConn{first, second}
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) {
		conn := conns[0]
		conns = conns[1:]

		return conn, nil
	}}
	presence := newTestPresence(dialer)
	presence.SetIdentity(context.Background(), "user-1")

	require.NoError(t, first.Close())
	eventually(t, func() bool { return presence.State() == usecase.StateDisconnected }, "close should disconnect")

	presence.Reconnect(context.Background())

	assert.Equal(t, usecase.StateConnected, presence.State())
	assert.Equal(t, []string{"user-1", "user-1"}, dialer.dials)
}

func TestPresenceService_OverlappingDials_SingleConnection(t *testing.T) {
	first := newFakeConn()
	second := newFakeConn()
	var mu sync.Mutex
	conns := []*fakeConn{first, second}
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) {
		started <- struct{}{}
		<-release
		mu.Lock()
		conn := conns[0]
		conns = conns[1:]
		mu.Unlock()

		return conn, nil
	}}
	presence := newTestPresence(dialer)

	// A Reconnect is legal while a SetIdentity dial for the same id is
	// still in flight; only one of the two handshakes may become the
	// live connection.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		presence.SetIdentity(context.Background(), "user-1")
	}()
	<-started
	go func() {
		defer wg.Done()
		presence.Reconnect(context.Background())
	}()
	<-started
	close(release)
	wg.Wait()

	assert.Equal(t, usecase.StateConnected, presence.State())
	assert.Equal(t, 2, dialer.dialCount())
	open := 0
	for _, conn := range []*fakeConn{first, second} {
		if !conn.isClosed() {
			open++
		}
	}
	assert.Equal(t, 1, open)
}

func TestPresenceService_Reconnect_WithoutIdentity_NoDial(t *testing.T) {
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) {
		t.Fatal("no dial expected")

		return nil, nil
	}}
	presence := newTestPresence(dialer)

	presence.Reconnect(context.Background())

	assert.Equal(t, usecase.StateNoSession, presence.State())
	assert.Equal(t, 0, dialer.dialCount())
}

func TestPresenceService_DialFailure_Disconnected(t *testing.T) {
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) {
		return nil, domainerrors.ErrNetworkUnavailable
	}}
	presence := newTestPresence(dialer)

	presence.SetIdentity(context.Background(), "user-1")

	assert.Equal(t, usecase.StateDisconnected, presence.State())
}

func TestPresenceService_SendChat_RequiresConnection(t *testing.T) {
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) {
		return nil, domainerrors.ErrNetworkUnavailable
	}}
	presence := newTestPresence(dialer)
	presence.SetIdentity(context.Background(), "user-1")

	err := presence.SendChat(&entity.ChatMessage{Body: "hello"})

	assert.ErrorIs(t, err, domainerrors.ErrDisconnected)
}

func TestPresenceService_SendChat_WritesToConn(t *testing.T) {
	conn := newFakeConn()
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) { return conn, nil }}
	presence := newTestPresence(dialer)
	presence.SetIdentity(context.Background(), "user-1")

	require.NoError(t, presence.SendChat(&entity.ChatMessage{ClientID: "cid-1", Body: "hello"}))

	conn.mu.Lock()
	defer conn.mu.Unlock()
	require.Len(t, conn.sent, 1)
	assert.Equal(t, service.EventChatMessage, conn.sent[0].Type)
	assert.Equal(t, "cid-1", conn.sent[0].Message.ClientID)
}

func TestPresenceService_ChatEvents_ReachInbox(t *testing.T) {
	conn := newFakeConn()
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) { return conn, nil }}
	presence := newTestPresence(dialer)
	presence.SetIdentity(context.Background(), "user-1")

	conn.events <- service.RealtimeEvent{
		Type:    service.EventChatMessage,
		Message: &entity.ChatMessage{ClientID: "cid-1", Body: "hi"},
	}

	select {
	case event := <-presence.Inbox():
		assert.Equal(t, service.EventChatMessage, event.Type)
		assert.Equal(t, "cid-1", event.Message.ClientID)
	case <-time.After(time.Second):
		t.Fatal("expected the chat event to reach the inbox")
	}
}

func TestPresenceService_UnauthorizedDial_StaysConnecting(t *testing.T) {
	dialer := &fakeDialer{next: func(string) (service.RealtimeConn, error) {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("no access token")
	}}
	presence := newTestPresence(dialer)

	presence.SetIdentity(context.Background(), "user-1")

	// A missing token is transient around a refresh; the next Reconnect
	// retries with whatever the store holds then.
	assert.Equal(t, usecase.StateConnecting, presence.State())
}
