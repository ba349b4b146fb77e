// internal/handlers/websocket/websocket.go
package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"diaspora-portal-service/internal/pkg/response"
	"diaspora-portal-service/internal/pkg/session"
	ws "diaspora-portal-service/internal/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The session cookie is the auth boundary; cross-origin pages
		// cannot read the replies.
		return true
	},
}

type WebSocketHandler struct {
	hub      *ws.Hub
	resolver *session.Resolver
	logger   *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, resolver *session.Resolver, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		resolver: resolver,
		logger:   logger,
	}
}

// HandleChat upgrades an authenticated request to a live chat connection.
func (h *WebSocketHandler) HandleChat(c *gin.Context) {
	identity := h.resolver.ResolveRequest(c.Request)
	if identity == nil {
		response.Error(c, http.StatusUnauthorized, "authentication required", nil)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	h.hub.Attach(ws.NewClient(h.hub, conn, *identity))
}

// Stats reports the number of open chat connections.
func (h *WebSocketHandler) Stats(c *gin.Context) {
	response.Success(c, http.StatusOK, "chat stats", gin.H{
		"connected": h.hub.ClientCount(),
	})
}
