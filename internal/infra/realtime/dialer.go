// Package realtime implements the websocket transport behind the presence
// and messaging channel.
package realtime

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"gigmarket/config"
	domainerrors "gigmarket/internal/domain/errors"
	"gigmarket/internal/domain/repository"
	"gigmarket/internal/domain/service"
	"gigmarket/internal/infra/rest"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

type dialer struct {
	wsURL  string
	creds  repository.CredentialRepository
	logger *slog.Logger
	ws     websocket.Dialer
}

// NewDialer creates the realtime dialer. The websocket URL is taken from
// config, or derived from the REST base URL when unset.
func NewDialer(cfg *config.Config, creds repository.CredentialRepository, logger *slog.Logger) service.RealtimeDialer {
	wsURL := strings.TrimSpace(cfg.Realtime.URL)
	if wsURL == "" {
		wsURL = deriveWSURL(rest.ResolveBaseURL(cfg))
	}

	return &dialer{
		wsURL:  wsURL,
		creds:  creds,
		logger: logger,
		ws: websocket.Dialer{
			HandshakeTimeout: cfg.Realtime.HandshakeTimeout,
		},
	}
}

// deriveWSURL turns an http(s) API base URL into the ws(s) channel endpoint.
func deriveWSURL(baseURL string) string {
	wsURL := strings.TrimSuffix(baseURL, "/api")
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)

	return wsURL + "/ws"
}

// Dial opens one authenticated connection. The access token is read from the
// credential store here so reconnects after a refresh use the fresh token.
func (d *dialer) Dial(ctx context.Context, userID string) (service.RealtimeConn, error) {
	token, err := d.creds.AccessToken()
	if err != nil {
		return nil, errors.Wrap(err, "read access token")
	}
	if token == "" {
		return nil, domainerrors.ErrUnauthorized.WrapMessage("no access token for realtime handshake")
	}

	query := url.Values{}
	query.Set("token", token)
	query.Set("userId", userID)

	ws, resp, err := d.ws.DialContext(ctx, d.wsURL+"?"+query.Encode(), nil)
	if err != nil {
		if resp != nil {
			d.logger.Warn("Realtime handshake rejected", slog.Int("status", resp.StatusCode))
		}

		return nil, domainerrors.ErrNetworkUnavailable.WrapMessage("realtime dial failed")
	}

	conn := newConn(ws, d.logger)
	go conn.readLoop()

	return conn, nil
}
