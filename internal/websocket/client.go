// internal/websocket/client.go
package websocket

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"diaspora-portal-service/internal/domain/auth"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// ChatMessage is the inbound frame.
type ChatMessage struct {
	Message string `json:"message"`
}

// ChatReply is the outbound frame.
type ChatReply struct {
	Reply string `json:"reply"`
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	identity auth.UserIdentity
}

func NewClient(hub *Hub, conn *websocket.Conn, identity auth.UserIdentity) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, 16),
		identity: identity,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg ChatMessage
		if err := json.Unmarshal(data, &msg); err != nil || msg.Message == "" {
			continue
		}

		reply, err := json.Marshal(ChatReply{Reply: c.hub.reply(c.identity, msg.Message)})
		if err != nil {
			continue
		}

		select {
		case c.send <- reply:
		default:
			// Slow consumer; drop the connection rather than block the pump.
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
