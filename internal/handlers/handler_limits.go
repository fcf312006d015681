package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/obveznik/obveznik_backend/internal/apperrors"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/dto"
	"github.com/obveznik/obveznik_backend/internal/middleware"
)

// limitHandler handles HTTP requests related to revenue limits.
type limitHandler struct {
	limitService portssvc.LimitSvcFacade
}

func newLimitHandler(ls portssvc.LimitSvcFacade) *limitHandler {
	return &limitHandler{limitService: ls}
}

// registerLimitRoutes registers routes related to revenue limits.
func registerLimitRoutes(rg *gin.RouterGroup, limitService portssvc.LimitSvcFacade) {
	h := newLimitHandler(limitService)

	rg.GET("/limits", h.getLimitStatus)
}

// getLimitStatus godoc
// @Summary Get the firm's standing against the lump-sum revenue limits
// @Tags limits
// @Produce json
// @Success 200 {object} dto.LimitStatusResponse
// @Security BearerAuth
// @Router /limits [get]
func (h *limitHandler) getLimitStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	_, firmID, ok := identity(c)
	if !ok {
		return
	}

	status, err := h.limitService.GetLimitStatus(c.Request.Context(), firmID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Firm not found"})
			return
		}
		logger.Error("Failed to compute limit status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute limit status"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLimitStatusResponse(status))
}
