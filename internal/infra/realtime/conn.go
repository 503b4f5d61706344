package realtime

import (
	"encoding/json"
	"log/slog"
	"sync"

	"gigmarket/internal/domain/entity"
	"gigmarket/internal/domain/service"
	"gigmarket/internal/errors"

	"github.com/gorilla/websocket"
)

// eventBuffer bounds the decoded-event channel; a consumer that stalls this
// long is broken and dropping is preferable to wedging the read loop.
const eventBuffer = 64

// frame is the wire shape of one channel message.
type frame struct {
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

type rosterPayload struct {
	UserIDs []string `json:"userIds"`
}

type userPayload struct {
	UserID string `json:"userId"`
}

type messageIDPayload struct {
	MessageID string `json:"messageId"`
}

type conn struct {
	ws      *websocket.Conn
	events  chan service.RealtimeEvent
	logger  *slog.Logger
	writeMu sync.Mutex
	once    sync.Once
}

func newConn(ws *websocket.Conn, logger *slog.Logger) *conn {
	return &conn{
		ws:     ws,
		events: make(chan service.RealtimeEvent, eventBuffer),
		logger: logger,
	}
}

func (c *conn) Events() <-chan service.RealtimeEvent {
	return c.events
}

// Send writes one event frame. Writes are serialized; gorilla allows only
// one concurrent writer.
func (c *conn) Send(event service.RealtimeEvent) error {
	payload, err := encodePayload(event)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.ws.WriteJSON(frame{Event: string(event.Type), Payload: payload}); err != nil {
		return errors.Wrap(err, "write realtime frame")
	}

	return nil
}

func (c *conn) Close() error {
	var err error
	c.once.Do(func() {
		err = c.ws.Close()
	})

	return err
}

// readLoop decodes frames until the transport drops, then closes the event
// channel so the owner observes the disconnect.
func (c *conn) readLoop() {
	defer close(c.events)
	defer c.Close()

	for {
		var f frame
		if err := c.ws.ReadJSON(&f); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Debug("Realtime read ended", slog.Any("error", err))
			}

			return
		}

		event, ok := decodeFrame(f)
		if !ok {
			c.logger.Debug("Unknown realtime event", slog.String("event", f.Event))

			continue
		}

		select {
		case c.events <- event:
		default:
			c.logger.Warn("Realtime event dropped, consumer too slow", slog.String("event", f.Event))
		}
	}
}

func decodeFrame(f frame) (service.RealtimeEvent, bool) {
	event := service.RealtimeEvent{Type: service.RealtimeEventType(f.Event)}

	switch event.Type {
	case service.EventRoster:
		var p rosterPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil {
			return event, false
		}
		event.UserIDs = p.UserIDs
	case service.EventUserOnline, service.EventUserOffline:
		var p userPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil {
			return event, false
		}
		event.UserID = p.UserID
	case service.EventChatMessage, service.EventMessageEdited:
		var msg entity.ChatMessage
		if err := json.Unmarshal(f.Payload, &msg); err != nil {
			return event, false
		}
		event.Message = &msg
	case service.EventMessageRead, service.EventMessageDeleted:
		var p messageIDPayload
		if err := json.Unmarshal(f.Payload, &p); err != nil {
			return event, false
		}
		event.MessageID = p.MessageID
	default:
		return event, false
	}

	return event, true
}

func encodePayload(event service.RealtimeEvent) (json.RawMessage, error) {
	var payload any

	switch event.Type {
	case service.EventChatMessage, service.EventMessageEdited:
		payload = event.Message
	case service.EventMessageRead, service.EventMessageDeleted:
		payload = messageIDPayload{MessageID: event.MessageID}
	case service.EventUserOnline, service.EventUserOffline:
		payload = userPayload{UserID: event.UserID}
	case service.EventRoster:
		payload = rosterPayload{UserIDs: event.UserIDs}
	default:
		return nil, errors.Errorf("unsupported outbound event: %s", event.Type)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "encode realtime payload")
	}

	return raw, nil
}
