// internal/handlers/chatbot/chatbot_handler.go
package chatbot

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"diaspora-portal-service/internal/pkg/response"
	"diaspora-portal-service/internal/service/chatbot"
)

type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

type ChatReply struct {
	Reply string `json:"reply"`
}

type ChatHandler struct {
	bot *chatbot.Bot
}

func NewChatHandler(bot *chatbot.Bot) *ChatHandler {
	return &ChatHandler{bot: bot}
}

// Chat answers one message from the keyword table.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "message is required", err)
		return
	}

	c.JSON(http.StatusOK, ChatReply{Reply: h.bot.Reply(req.Message)})
}
