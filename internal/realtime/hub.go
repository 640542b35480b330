// Package realtime fans balance changes out to websocket subscribers. The
// hub maps channel keys (one per account card number, plus a shared admin
// key) to connected peers; the ledger publishes into it through the
// ledger.Publisher interface without knowing the transport.
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/bumbolandia/bankd/internal/models"
)

// AdminChannel is the channel key for admin-wide account list updates.
const AdminChannel = "admin"

// Event types pushed to subscribers.
const (
	EventBalanceUpdate = "balance:update"
	EventAdminAccounts = "admin:accounts"
)

// AccountChannel returns the channel key for one account's updates.
func AccountChannel(cardNumber string) string {
	return "account:" + cardNumber
}

type outFrame struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Peer is one connected realtime client. Writes are serialized through a
// mutex so concurrent fanout never interleaves frames.
type Peer struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewPeer wraps a JSON encoder over the peer's connection.
func NewPeer(enc *json.Encoder) *Peer {
	return &Peer{enc: enc}
}

// Send writes one typed frame to the peer.
func (p *Peer) Send(eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enc.Encode(outFrame{Type: eventType, Payload: payload})
}

// Hub tracks channel membership. Membership grows on subscribe and is cleared
// when a peer disconnects; there is no explicit unsubscribe.
type Hub struct {
	mu       sync.Mutex
	channels map[string]map[*Peer]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{channels: make(map[string]map[*Peer]struct{})}
}

// Subscribe adds the peer to a channel.
func (h *Hub) Subscribe(channel string, p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	peers, ok := h.channels[channel]
	if !ok {
		peers = make(map[*Peer]struct{})
		h.channels[channel] = peers
	}
	peers[p] = struct{}{}
}

// Remove drops the peer from every channel it joined.
func (h *Hub) Remove(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for channel, peers := range h.channels {
		delete(peers, p)
		if len(peers) == 0 {
			delete(h.channels, channel)
		}
	}
}

// Publish delivers one frame to every current subscriber of the channel.
// Send errors are ignored; a dead peer is cleaned up when its connection
// handler exits.
func (h *Hub) Publish(channel, eventType string, payload any) {
	h.mu.Lock()
	peers := make([]*Peer, 0, len(h.channels[channel]))
	for p := range h.channels[channel] {
		peers = append(peers, p)
	}
	h.mu.Unlock()

	for _, p := range peers {
		_ = p.Send(eventType, payload)
	}
}

// PublishAccount implements ledger.Publisher for per-account snapshots.
func (h *Hub) PublishAccount(update models.AccountUpdate) {
	h.Publish(AccountChannel(update.CardNumber), EventBalanceUpdate, update)
}

// PublishAccounts implements ledger.Publisher for the admin-wide list.
func (h *Hub) PublishAccounts(accounts []models.PublicAccount) {
	h.Publish(AdminChannel, EventAdminAccounts, accounts)
}
