package dto

import (
	"time"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one invoice position as submitted by the caller.
type LineItemRequest struct {
	ProductID   *string         `json:"productID,omitempty"`
	Description string          `json:"description" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Unit        string          `json:"unit" binding:"required"`
	UnitPrice   decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreateInvoiceRequest creates a draft invoice. For advance invoices either
// line items (direct-amount mode) or ContractValue+AdvancePercent (percentage
// mode) must be supplied. ManualRate overrides the exchange-rate service for
// foreign-currency documents.
type CreateInvoiceRequest struct {
	Kind            string            `json:"kind" binding:"required"`
	ClientID        string            `json:"clientID" binding:"required"`
	CurrencyCode    string            `json:"currencyCode" binding:"required,len=3"`
	ManualRate      *decimal.Decimal  `json:"manualRate,omitempty"`
	TransactionDate time.Time         `json:"transactionDate" binding:"required"`
	PaymentTermDays int               `json:"paymentTermDays" binding:"gte=0"`
	ContractNumber  *string           `json:"contractNumber,omitempty"`
	DecisionNumber  *string           `json:"decisionNumber,omitempty"`
	OrderNumber     *string           `json:"orderNumber,omitempty"`
	ReferenceNumber *string           `json:"referenceNumber,omitempty"`
	ReferenceModel  *string           `json:"referenceModel,omitempty"`

	// Advance-closing declaration: the advance this (final) invoice settles.
	AdvanceInvoiceID *string `json:"advanceInvoiceID,omitempty"`

	// Percentage-mode advance creation.
	ContractValue  *decimal.Decimal `json:"contractValue,omitempty"`
	AdvancePercent *decimal.Decimal `json:"advancePercent,omitempty"`
	ProjectName    string           `json:"projectName,omitempty"`

	Lines []LineItemRequest `json:"lines"`
}

// UpdateInvoiceRequest replaces the mutable fields and all line items of a
// draft. The rules are identical to creation; kind and client cannot change.
type UpdateInvoiceRequest struct {
	CurrencyCode    string            `json:"currencyCode" binding:"required,len=3"`
	ManualRate      *decimal.Decimal  `json:"manualRate,omitempty"`
	TransactionDate time.Time         `json:"transactionDate" binding:"required"`
	PaymentTermDays int               `json:"paymentTermDays" binding:"gte=0"`
	ContractNumber  *string           `json:"contractNumber,omitempty"`
	DecisionNumber  *string           `json:"decisionNumber,omitempty"`
	OrderNumber     *string           `json:"orderNumber,omitempty"`
	ReferenceNumber *string           `json:"referenceNumber,omitempty"`
	ReferenceModel  *string           `json:"referenceModel,omitempty"`
	Lines           []LineItemRequest `json:"lines" binding:"required,min=1"`
}

// CancelInvoiceRequest cancels an issued invoice.
type CancelInvoiceRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// SendEmailRequest dispatches the invoice email task.
type SendEmailRequest struct {
	Recipient string `json:"recipient" binding:"required,email"`
	CC        string `json:"cc,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body,omitempty"`
}

// ListInvoicesParams holds parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// LineItemResponse is one invoice position as returned to the caller.
type LineItemResponse struct {
	LineItemID  string          `json:"lineItemID"`
	ProductID   *string         `json:"productID,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Total       decimal.Decimal `json:"total"`
	SequenceNo  int             `json:"sequenceNo"`
}

// InvoiceResponse is an invoice as returned to the caller.
type InvoiceResponse struct {
	InvoiceID         string             `json:"invoiceID"`
	FirmID            string             `json:"firmID"`
	ClientID          string             `json:"clientID"`
	Number            string             `json:"number"`
	Kind              string             `json:"kind"`
	Status            string             `json:"status"`
	CurrencyCode      string             `json:"currencyCode"`
	MidRate           *decimal.Decimal   `json:"midRate,omitempty"`
	TotalOrigin       *decimal.Decimal   `json:"totalOrigin,omitempty"`
	TotalDomestic     decimal.Decimal    `json:"totalDomestic"`
	TransactionDate   time.Time          `json:"transactionDate"`
	PaymentTermDays   int                `json:"paymentTermDays"`
	DueDate           time.Time          `json:"dueDate"`
	FinalizedAt       *time.Time         `json:"finalizedAt,omitempty"`
	AdvanceInvoiceID  *string            `json:"advanceInvoiceID,omitempty"`
	ProformaInvoiceID *string            `json:"proformaInvoiceID,omitempty"`
	LinkedInvoiceID   *string            `json:"linkedInvoiceID,omitempty"`
	CancelReason      *string            `json:"cancelReason,omitempty"`
	CancelledAt       *time.Time         `json:"cancelledAt,omitempty"`
	PDFStatus         string             `json:"pdfStatus"`
	EmailStatus       string             `json:"emailStatus"`
	Lines             []LineItemResponse `json:"lines,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
}

// ListInvoicesResponse is one page of a firm's invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// ToLineItemResponse converts a domain.LineItem to its response DTO.
func ToLineItemResponse(l *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:  l.LineItemID,
		ProductID:   l.ProductID,
		Description: l.Description,
		Quantity:    l.Quantity,
		Unit:        l.Unit,
		UnitPrice:   l.UnitPrice,
		Total:       l.Total,
		SequenceNo:  l.SequenceNo,
	}
}

// ToInvoiceResponse converts a domain.Invoice to its response DTO.
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		InvoiceID:         inv.InvoiceID,
		FirmID:            inv.FirmID,
		ClientID:          inv.ClientID,
		Number:            inv.Number,
		Kind:              string(inv.Kind),
		Status:            string(inv.Status),
		CurrencyCode:      inv.CurrencyCode,
		MidRate:           inv.MidRate,
		TotalOrigin:       inv.TotalOrigin,
		TotalDomestic:     inv.TotalDomestic,
		TransactionDate:   inv.TransactionDate,
		PaymentTermDays:   inv.PaymentTermDays,
		DueDate:           inv.DueDate,
		FinalizedAt:       inv.FinalizedAt,
		AdvanceInvoiceID:  inv.AdvanceInvoiceID,
		ProformaInvoiceID: inv.ProformaInvoiceID,
		LinkedInvoiceID:   inv.LinkedInvoiceID,
		CancelReason:      inv.CancelReason,
		CancelledAt:       inv.CancelledAt,
		PDFStatus:         string(inv.PDFStatus),
		EmailStatus:       string(inv.EmailStatus),
		CreatedAt:         inv.CreatedAt,
	}
	if len(inv.Lines) > 0 {
		resp.Lines = make([]LineItemResponse, len(inv.Lines))
		for i := range inv.Lines {
			resp.Lines[i] = ToLineItemResponse(&inv.Lines[i])
		}
	}
	return resp
}
