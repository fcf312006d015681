package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/dto"
	"github.com/obveznik/obveznik_backend/internal/middleware"
)

// revenueBookHandler handles HTTP requests related to the revenue book.
type revenueBookHandler struct {
	revenueBookService portssvc.RevenueBookSvcFacade
}

func newRevenueBookHandler(rbs portssvc.RevenueBookSvcFacade) *revenueBookHandler {
	return &revenueBookHandler{revenueBookService: rbs}
}

// registerRevenueBookRoutes registers routes related to the revenue book.
func registerRevenueBookRoutes(rg *gin.RouterGroup, revenueBookService portssvc.RevenueBookSvcFacade) {
	h := newRevenueBookHandler(revenueBookService)

	rg.GET("/revenue-book", h.listEntries)
}

// listEntries godoc
// @Summary List the firm's revenue book for a calendar year
// @Tags revenue-book
// @Produce json
// @Param year query int false "Calendar year, defaults to the current one"
// @Success 200 {object} dto.ListRevenueBookResponse
// @Security BearerAuth
// @Router /revenue-book [get]
func (h *revenueBookHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	_, firmID, ok := identity(c)
	if !ok {
		return
	}

	year := time.Now().UTC().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 2000 || parsed > 2100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
			return
		}
		year = parsed
	}

	entries, err := h.revenueBookService.ListEntries(c.Request.Context(), firmID, year)
	if err != nil {
		logger.Error("Failed to list revenue book entries", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list revenue book entries"})
		return
	}

	resp := dto.ListRevenueBookResponse{
		Entries: make([]dto.RevenueBookEntryResponse, len(entries)),
		Total:   decimal.Zero,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToRevenueBookEntryResponse(&entries[i])
		if entries[i].InvoiceStatus != domain.StatusCancelled {
			resp.Total = resp.Total.Add(entries[i].AmountDomestic)
		}
	}
	c.JSON(http.StatusOK, resp)
}
