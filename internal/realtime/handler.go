package realtime

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bumbolandia/bankd/internal/models"
	"golang.org/x/net/websocket"
)

// Subscription frame types accepted from clients.
const (
	EventSessionSubscribe = "session:subscribe"
	EventAdminSubscribe   = "admin:subscribe"
)

// Subscriber resolves credentials presented over the realtime channel into
// initial state snapshots. Invalid credentials report ok=false; the transport
// drops the request without feedback.
type Subscriber interface {
	AccountUpdateForToken(ctx context.Context, token string) (models.AccountUpdate, bool)
	AccountsForAdmin(ctx context.Context, adminToken string) ([]models.PublicAccount, bool)
}

type inFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type subscribePayload struct {
	Token      string `json:"token"`
	AdminToken string `json:"adminToken"`
}

// NewHandler returns the websocket endpoint. Clients send subscribe frames;
// a valid subscription immediately receives the current state snapshot, so no
// separate initial fetch is needed.
func NewHandler(hub *Hub, subs Subscriber) http.Handler {
	return websocket.Handler(func(conn *websocket.Conn) {
		handleConn(conn, hub, subs)
	})
}

func handleConn(conn *websocket.Conn, hub *Hub, subs Subscriber) {
	defer func() {
		_ = conn.Close()
	}()

	ctx := context.Background()
	if req := conn.Request(); req != nil {
		ctx = req.Context()
	}

	decoder := json.NewDecoder(conn)
	peer := NewPeer(json.NewEncoder(conn))
	defer hub.Remove(peer)

	for {
		var frame inFrame
		if err := decoder.Decode(&frame); err != nil {
			return
		}
		var payload subscribePayload
		if len(frame.Payload) > 0 {
			if err := json.Unmarshal(frame.Payload, &payload); err != nil {
				continue
			}
		}

		switch frame.Type {
		case EventSessionSubscribe:
			update, ok := subs.AccountUpdateForToken(ctx, payload.Token)
			if !ok {
				continue
			}
			hub.Subscribe(AccountChannel(update.CardNumber), peer)
			_ = peer.Send(EventBalanceUpdate, update)
		case EventAdminSubscribe:
			accounts, ok := subs.AccountsForAdmin(ctx, payload.AdminToken)
			if !ok {
				continue
			}
			hub.Subscribe(AdminChannel, peer)
			_ = peer.Send(EventAdminAccounts, accounts)
		}
	}
}
