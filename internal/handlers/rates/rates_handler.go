// internal/handlers/rates/rates_handler.go
package rates

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"diaspora-portal-service/internal/domain/rates"
	"diaspora-portal-service/internal/middleware"
	xerrors "diaspora-portal-service/internal/pkg/errors"
	"diaspora-portal-service/internal/pkg/response"
	ratesvc "diaspora-portal-service/internal/service/rates"
)

type RateHandler struct {
	rateService *ratesvc.RateService
}

func NewRateHandler(rateService *ratesvc.RateService) *RateHandler {
	return &RateHandler{rateService: rateService}
}

// List returns the public rate board.
func (h *RateHandler) List(c *gin.Context) {
	list, err := h.rateService.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to load rates", err)
		return
	}
	response.Success(c, http.StatusOK, "exchange rates", list)
}

// Get returns one currency's quote.
func (h *RateHandler) Get(c *gin.Context) {
	rate, err := h.rateService.Get(c.Request.Context(), c.Param("currency"))
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "currency not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load rate", err)
		return
	}
	response.Success(c, http.StatusOK, "exchange rate", rate)
}

// Upsert saves an admin edit to the board.
func (h *RateHandler) Upsert(c *gin.Context) {
	var req rates.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid rate", err)
		return
	}

	editor := middleware.MustCurrentUser(c)

	rate, err := h.rateService.Upsert(c.Request.Context(), &req, editor.Email)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to save rate", err)
		return
	}
	response.Success(c, http.StatusOK, "rate saved", rate)
}

// Delete removes a currency from the board.
func (h *RateHandler) Delete(c *gin.Context) {
	if err := h.rateService.Delete(c.Request.Context(), c.Param("currency")); err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "currency not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete rate", err)
		return
	}
	response.Success(c, http.StatusOK, "rate deleted", nil)
}
