// Package sse keeps the live connections trade updates are pushed through.
package sse

import (
	"sync"

	"github.com/trade-hub/trade-hub/internal/domain/notification"
)

// Hub manages SSE clients keyed by client id and targeted by wallet.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*notification.SSEClient
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*notification.SSEClient),
	}
}

func (h *Hub) Register(client *notification.SSEClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ClientID] = client
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		c.Close()
		delete(h.clients, clientID)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastToWallet delivers a message to every connection subscribed by the
// given wallet. Slow clients are skipped rather than blocked on.
func (h *Hub) BroadcastToWallet(wallet string, message *notification.SSEMessage) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.Wallet != nil && *c.Wallet == wallet {
			trySend(c, message)
		}
	}
}

func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}

func trySend(c *notification.SSEClient, msg *notification.SSEMessage) bool {
	select {
	case c.MessageChan <- msg:
		return true
	default:
		return false
	}
}
