package services

import (
	"context"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/obveznik/obveznik_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice with its line items.
	GetInvoiceByID(ctx context.Context, firmID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices for a firm.
	ListInvoices(ctx context.Context, firmID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error)
}

// InvoiceWriterSvc defines the mutations of the invoice lifecycle
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new draft invoice with computed totals.
	CreateInvoice(ctx context.Context, firmID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoice replaces a draft invoice's mutable fields and line items.
	UpdateInvoice(ctx context.Context, firmID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)

	// FinalizeInvoice assigns the official sequential number and issues the
	// invoice. Side effects (revenue book, PDF generation) run after commit.
	FinalizeInvoice(ctx context.Context, firmID string, invoiceID string, userID string) (*domain.Invoice, error)

	// CancelInvoice cancels an issued invoice with an audit trail. Only the
	// author or an admin may cancel.
	CancelInvoice(ctx context.Context, firmID string, invoiceID string, req dto.CancelInvoiceRequest, userID string, isAdmin bool) (*domain.Invoice, error)

	// ConvertProforma creates a standard draft invoice from an issued proforma
	// and marks the proforma converted.
	ConvertProforma(ctx context.Context, firmID string, proformaID string, userID string) (*domain.Invoice, error)
}

// InvoiceSideEffectSvc defines the post-issue side-effect operations
type InvoiceSideEffectSvc interface {
	// RetryPDF re-enqueues PDF generation for an issued invoice.
	RetryPDF(ctx context.Context, firmID string, invoiceID string) error

	// SendEmail enqueues email delivery of an issued invoice.
	SendEmail(ctx context.Context, firmID string, invoiceID string, req dto.SendEmailRequest) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceSideEffectSvc
}
