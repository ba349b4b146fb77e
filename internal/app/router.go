// internal/app/router.go
package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authHandler "diaspora-portal-service/internal/handlers/auth"
	chatHandler "diaspora-portal-service/internal/handlers/chatbot"
	kbHandler "diaspora-portal-service/internal/handlers/kb"
	rateHandler "diaspora-portal-service/internal/handlers/rates"
	shareholderHandler "diaspora-portal-service/internal/handlers/shareholder"
	wsHandler "diaspora-portal-service/internal/handlers/websocket"
	"diaspora-portal-service/internal/middleware"
)

type Handlers struct {
	Auth        *authHandler.AuthHandler
	Rates       *rateHandler.RateHandler
	KB          *kbHandler.ArticleHandler
	Shareholder *shareholderHandler.DashboardHandler
	Chat        *chatHandler.ChatHandler
	WS          *wsHandler.WebSocketHandler
	Session     *middleware.SessionMiddleware
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ----- Auth -----
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", h.Auth.Login)
		authGroup.GET("/me", h.Session.OptionalSession(), h.Auth.Me)
		authGroup.POST("/logout", h.Session.OptionalSession(), h.Auth.Logout)
		authGroup.GET("/sessions", h.Session.RequireSession(middleware.GuardPrompt), h.Auth.Sessions)
	}

	// ----- Public portal content -----
	api.GET("/rates", h.Rates.List)
	api.GET("/rates/:currency", h.Rates.Get)

	api.GET("/kb", h.KB.List)
	api.GET("/kb/search", h.KB.Search)
	api.GET("/kb/:slug", h.KB.Get)

	api.POST("/chat", h.Chat.Chat)

	// ----- Shareholder area (session required, inline prompt) -----
	shareholderGroup := api.Group("/shareholder", h.Session.RequireSession(middleware.GuardPrompt))
	{
		shareholderGroup.GET("/summary", h.Shareholder.Summary)
	}

	// ----- Admin (session required, browser-style redirect to login) -----
	adminGroup := api.Group("/admin", h.Session.RequireSession(middleware.GuardRedirect))
	{
		adminGroup.PUT("/rates", h.Rates.Upsert)
		adminGroup.DELETE("/rates/:currency", h.Rates.Delete)
		adminGroup.PUT("/kb", h.KB.Save)
		adminGroup.DELETE("/kb/:slug", h.KB.Delete)
		adminGroup.GET("/chat/stats", h.WS.Stats)
	}

	// ----- Live chat -----
	r.GET("/ws/chat", h.WS.HandleChat)
}
