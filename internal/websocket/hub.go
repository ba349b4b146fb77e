// internal/websocket/hub.go
package websocket

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"diaspora-portal-service/internal/domain/auth"
	"diaspora-portal-service/internal/service/chatbot"
)

// Hub tracks live chat connections and answers their messages from the
// keyword bot. One client per open socket; a user may hold several.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client

	bot    *chatbot.Bot
	logger *zap.Logger
}

func NewHub(bot *chatbot.Bot, logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		bot:        bot,
		logger:     logger,
	}
}

// Run owns the client set. Call once in a goroutine; it exits when the
// context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("chat client connected",
				zap.String("user_id", client.identity.ID),
				zap.Int("total", h.ClientCount()),
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			h.logger.Info("chat client disconnected",
				zap.String("user_id", client.identity.ID),
				zap.Int("total", h.ClientCount()),
			)

		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Attach registers a client and starts its pumps.
func (h *Hub) Attach(client *Client) {
	h.register <- client
	go client.writePump()
	go client.readPump()
}

// ClientCount reports the number of open chat connections.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) reply(identity auth.UserIdentity, message string) string {
	h.logger.Debug("chat message",
		zap.String("user_id", identity.ID),
		zap.Int("len", len(message)),
	)
	return h.bot.Reply(message)
}
