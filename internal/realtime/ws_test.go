package realtime

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bumbolandia/bankd/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/net/websocket"
)

type fakeSubscriber struct {
	updates map[string]models.AccountUpdate
	admins  map[string][]models.PublicAccount
}

func (f fakeSubscriber) AccountUpdateForToken(_ context.Context, token string) (models.AccountUpdate, bool) {
	update, ok := f.updates[token]
	return update, ok
}

func (f fakeSubscriber) AccountsForAdmin(_ context.Context, adminToken string) ([]models.PublicAccount, bool) {
	accounts, ok := f.admins[adminToken]
	return accounts, ok
}

func dialWS(t *testing.T, hub *Hub, subs Subscriber) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(NewHandler(hub, subs))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := websocket.Dial(url, "", "http://localhost/")
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

func sendSubscribe(t *testing.T, conn *websocket.Conn, frameType string, payload any) {
	t.Helper()
	if err := json.NewEncoder(conn).Encode(map[string]any{"type": frameType, "payload": payload}); err != nil {
		t.Fatalf("send %s: %v", frameType, err)
	}
}

func readFrame(t *testing.T, dec *json.Decoder, conn *websocket.Conn) testFrame {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var f testFrame
	if err := dec.Decode(&f); err != nil {
		t.Fatalf("read frame: %v", err)
	}
	return f
}

func TestSubscribeReceivesInitialSnapshot(t *testing.T) {
	hub := NewHub()
	subs := fakeSubscriber{
		updates: map[string]models.AccountUpdate{
			"token-alice": {
				CardNumber:   "1111222233334444",
				Balance:      decimal.NewFromInt(100),
				Currency:     models.Currency,
				Transactions: []models.Transaction{},
			},
		},
	}

	conn := dialWS(t, hub, subs)
	dec := json.NewDecoder(conn)

	sendSubscribe(t, conn, EventSessionSubscribe, map[string]string{"token": "token-alice"})

	frame := readFrame(t, dec, conn)
	if frame.Type != EventBalanceUpdate {
		t.Fatalf("frame type=%q", frame.Type)
	}
	var update models.AccountUpdate
	if err := json.Unmarshal(frame.Payload, &update); err != nil {
		t.Fatal(err)
	}
	if update.CardNumber != "1111222233334444" || !update.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected snapshot: %+v", update)
	}

	// later fanout reaches the subscribed peer
	hub.PublishAccount(models.AccountUpdate{CardNumber: "1111222233334444", Balance: decimal.NewFromInt(60)})
	frame = readFrame(t, dec, conn)
	if frame.Type != EventBalanceUpdate {
		t.Fatalf("frame type=%q", frame.Type)
	}
	if err := json.Unmarshal(frame.Payload, &update); err != nil {
		t.Fatal(err)
	}
	if !update.Balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("pushed balance=%s want 60", update.Balance)
	}
}

func TestInvalidTokenIsSilentlyIgnored(t *testing.T) {
	hub := NewHub()
	subs := fakeSubscriber{
		updates: map[string]models.AccountUpdate{
			"token-alice": {CardNumber: "1111222233334444"},
		},
	}

	conn := dialWS(t, hub, subs)
	dec := json.NewDecoder(conn)

	sendSubscribe(t, conn, EventSessionSubscribe, map[string]string{"token": "bogus"})

	_ = conn.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var f testFrame
	if err := dec.Decode(&f); err == nil {
		t.Fatalf("invalid subscription produced frame %+v", f)
	}

	// the connection stays usable afterwards
	_ = conn.SetReadDeadline(time.Time{})
	sendSubscribe(t, conn, EventSessionSubscribe, map[string]string{"token": "token-alice"})
	frame := readFrame(t, json.NewDecoder(conn), conn)
	if frame.Type != EventBalanceUpdate {
		t.Fatalf("frame type=%q", frame.Type)
	}
}

func TestAdminSubscribeReceivesAccountList(t *testing.T) {
	hub := NewHub()
	subs := fakeSubscriber{
		admins: map[string][]models.PublicAccount{
			"adm_token": {
				{CardNumber: "1111222233334444", Name: "Alice"},
				{CardNumber: "5555666677778888", Name: "Bob"},
			},
		},
	}

	conn := dialWS(t, hub, subs)
	dec := json.NewDecoder(conn)

	sendSubscribe(t, conn, EventAdminSubscribe, map[string]string{"adminToken": "adm_token"})

	frame := readFrame(t, dec, conn)
	if frame.Type != EventAdminAccounts {
		t.Fatalf("frame type=%q", frame.Type)
	}
	var accounts []models.PublicAccount
	if err := json.Unmarshal(frame.Payload, &accounts); err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 2 || accounts[0].Name != "Alice" {
		t.Fatalf("unexpected accounts: %+v", accounts)
	}

	hub.PublishAccounts([]models.PublicAccount{{CardNumber: "1111222233334444"}})
	frame = readFrame(t, dec, conn)
	if frame.Type != EventAdminAccounts {
		t.Fatalf("frame type=%q", frame.Type)
	}
}
