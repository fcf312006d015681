package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/obveznik/obveznik_backend/internal/apperrors"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/core/services"
	"github.com/obveznik/obveznik_backend/internal/dto"
	"github.com/obveznik/obveznik_backend/internal/middleware"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.PUT("/:id", h.updateInvoice)
		invoices.POST("/:id/finalize", h.finalizeInvoice)
		invoices.POST("/:id/cancel", h.cancelInvoice)
		invoices.POST("/:id/convert", h.convertProforma)
		invoices.POST("/:id/retry-pdf", h.retryPDF)
		invoices.POST("/:id/send-email", h.sendEmail)
	}
}

// identity pulls the authenticated user and firm out of the request context.
func identity(c *gin.Context) (userID, firmID string, ok bool) {
	userID, okUser := middleware.GetUserIDFromContext(c)
	firmID, okFirm := middleware.GetFirmIDFromContext(c)
	if !okUser || !okFirm {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, firmID, true
}

// respondInvoiceError translates service errors into HTTP responses.
func respondInvoiceError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrInvoiceNoLines),
		errors.Is(err, services.ErrAdvanceDeclaration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvoiceNotDraft),
		errors.Is(err, services.ErrInvoiceNotIssued),
		errors.Is(err, services.ErrProformaAlreadyConverted),
		errors.Is(err, services.ErrAdvanceNotClosable),
		errors.Is(err, services.ErrAdvanceExceedsTotal),
		errors.Is(err, services.ErrFirmInactive),
		errors.Is(err, services.ErrMissingForeignAccount),
		errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRateUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Error("Invoice operation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// createInvoice godoc
// @Summary Create a draft invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Security BearerAuth
// @Router /invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, firmID, ok := identity(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), firmID, req, userID)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice with its line items
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Security BearerAuth
// @Router /invoices/{id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	_, firmID, ok := identity(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), firmID, c.Param("id"))
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List the firm's invoices
// @Tags invoices
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListInvoicesResponse
// @Security BearerAuth
// @Router /invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	_, firmID, ok := identity(c)
	if !ok {
		return
	}

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	invoices, nextToken, err := h.invoiceService.ListInvoices(c.Request.Context(), firmID, params)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}

	resp := dto.ListInvoicesResponse{
		Invoices:  make([]dto.InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateInvoice godoc
// @Summary Update a draft invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Updated invoice"
// @Success 200 {object} dto.InvoiceResponse
// @Security BearerAuth
// @Router /invoices/{id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, firmID, ok := identity(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), firmID, c.Param("id"), req, userID)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// finalizeInvoice godoc
// @Summary Finalize a draft, assigning its official number
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Security BearerAuth
// @Router /invoices/{id}/finalize [post]
func (h *invoiceHandler) finalizeInvoice(c *gin.Context) {
	userID, firmID, ok := identity(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.FinalizeInvoice(c.Request.Context(), firmID, c.Param("id"), userID)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// cancelInvoice godoc
// @Summary Cancel an issued invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param cancellation body dto.CancelInvoiceRequest true "Cancellation reason"
// @Success 200 {object} dto.InvoiceResponse
// @Security BearerAuth
// @Router /invoices/{id}/cancel [post]
func (h *invoiceHandler) cancelInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CancelInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CancelInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, firmID, ok := identity(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.CancelInvoice(c.Request.Context(), firmID, c.Param("id"), req, userID, middleware.IsAdminFromContext(c))
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// convertProforma godoc
// @Summary Convert an issued proforma into a standard draft invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Proforma invoice ID"
// @Success 201 {object} dto.InvoiceResponse
// @Security BearerAuth
// @Router /invoices/{id}/convert [post]
func (h *invoiceHandler) convertProforma(c *gin.Context) {
	userID, firmID, ok := identity(c)
	if !ok {
		return
	}

	invoice, err := h.invoiceService.ConvertProforma(c.Request.Context(), firmID, c.Param("id"), userID)
	if err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// retryPDF godoc
// @Summary Re-enqueue PDF generation for an issued invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 202
// @Security BearerAuth
// @Router /invoices/{id}/retry-pdf [post]
func (h *invoiceHandler) retryPDF(c *gin.Context) {
	_, firmID, ok := identity(c)
	if !ok {
		return
	}

	if err := h.invoiceService.RetryPDF(c.Request.Context(), firmID, c.Param("id")); err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

// sendEmail godoc
// @Summary Enqueue email delivery of an issued invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param email body dto.SendEmailRequest true "Delivery details"
// @Success 202
// @Security BearerAuth
// @Router /invoices/{id}/send-email [post]
func (h *invoiceHandler) sendEmail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SendEmail", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	_, firmID, ok := identity(c)
	if !ok {
		return
	}

	if err := h.invoiceService.SendEmail(c.Request.Context(), firmID, c.Param("id"), req); err != nil {
		respondInvoiceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}
