// internal/handlers/auth/auth_handler.go
package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"diaspora-portal-service/internal/config"
	"diaspora-portal-service/internal/domain/auth"
	"diaspora-portal-service/internal/middleware"
	xerrors "diaspora-portal-service/internal/pkg/errors"
	"diaspora-portal-service/internal/pkg/response"
	authUsecase "diaspora-portal-service/internal/service/auth"
)

type AuthHandler struct {
	authService *authUsecase.AuthService
	cfg         config.AuthConfig
	logger      *zap.Logger
}

func NewAuthHandler(authService *authUsecase.AuthService, cfg config.AuthConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
		logger:      logger,
	}
}

// ========== Login ==========

// Login checks credentials and sets the session cookie. A credential
// mismatch is a normal success:false outcome with an inline message, never
// a server error.
func (h *AuthHandler) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, auth.LoginResponse{
			Success: false,
			Error:   "email and password are required",
		})
		return
	}

	req.IPAddress = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	identity, signed, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		status := http.StatusUnauthorized
		message := "invalid email or password"

		switch {
		case errors.Is(err, xerrors.ErrRateLimited):
			status = http.StatusTooManyRequests
			message = "too many login attempts, please try again later"
		case errors.Is(err, xerrors.ErrAccountDisabled):
			message = "this account has been disabled"
		case !errors.Is(err, xerrors.ErrInvalidCredentials):
			h.logger.Error("login failed",
				zap.String("email", req.Email),
				zap.String("ip", req.IPAddress),
				zap.Error(err),
			)
			status = http.StatusInternalServerError
			message = "login is temporarily unavailable"
		}

		c.JSON(status, auth.LoginResponse{Success: false, Error: message})
		return
	}

	h.setSessionCookie(c, signed)

	h.logger.Info("user logged in",
		zap.String("user_id", identity.ID),
		zap.String("email", identity.Email),
	)

	c.JSON(http.StatusOK, auth.LoginResponse{Success: true, User: identity})
}

// ========== Who am I ==========

// Me reports the session state. A 200 is always a definitive answer,
// authenticated or not; clients treat any other status as transient.
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusOK, auth.MeResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, auth.MeResponse{Authenticated: true, User: identity})
}

// ========== Logout ==========

// Logout clears the cookie and drops the session record. It succeeds even
// when the request carries no valid session, so a client retrying a stale
// logout never sees an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	if identity, ok := middleware.CurrentUser(c); ok {
		if jti, ok := middleware.CurrentJTI(c); ok {
			h.authService.Logout(c.Request.Context(), identity.ID, jti)
		}
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ========== Sessions ==========

// Sessions lists the caller's active sessions from the registry.
func (h *AuthHandler) Sessions(c *gin.Context) {
	identity := middleware.MustCurrentUser(c)

	records, err := h.authService.ActiveSessions(c.Request.Context(), identity.ID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list sessions", err)
		return
	}

	response.Success(c, http.StatusOK, "active sessions", records)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, signed string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		h.cfg.CookieName,
		signed,
		int(h.cfg.TokenTTL.Seconds()),
		"/",
		"",
		h.cfg.CookieSecure,
		true, // httpOnly
	)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
}
