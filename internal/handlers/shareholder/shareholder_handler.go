// internal/handlers/shareholder/shareholder_handler.go
package shareholder

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"diaspora-portal-service/internal/middleware"
	xerrors "diaspora-portal-service/internal/pkg/errors"
	"diaspora-portal-service/internal/pkg/response"
	shsvc "diaspora-portal-service/internal/service/shareholder"
)

type DashboardHandler struct {
	dashboardService *shsvc.DashboardService
}

func NewDashboardHandler(dashboardService *shsvc.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns the caller's shareholder dashboard.
func (h *DashboardHandler) Summary(c *gin.Context) {
	identity := middleware.MustCurrentUser(c)

	summary, err := h.dashboardService.Summary(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "no shareholding on record for this account")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load dashboard", err)
		return
	}
	response.Success(c, http.StatusOK, "shareholder summary", summary)
}
