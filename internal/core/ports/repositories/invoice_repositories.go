package repositories

import (
	"context"
	"time"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data.
type InvoiceReader interface {
	// FindInvoiceByID retrieves a single invoice without its line items.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindLineItemsByInvoiceID retrieves the line items of an invoice ordered by
	// sequence number.
	FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.LineItem, error)

	// ListInvoicesByFirm retrieves a paginated list of invoices for a firm using
	// token-based pagination. It returns the invoices, a token for the next page,
	// and an error.
	ListInvoicesByFirm(ctx context.Context, firmID string, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoice data. Every method is a
// single atomic transaction; guarded status transitions that find the row in an
// unexpected state return apperrors.ErrConflict.
type InvoiceWriter interface {
	// SaveInvoice persists a new draft invoice and its line items.
	SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.LineItem) error

	// ReplaceInvoice updates a draft invoice's fields and replaces all of its
	// line items (delete-then-recreate). Fails when the row is no longer a draft.
	ReplaceInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.LineItem) error

	// FinalizeInvoice assigns the official number, transitions draft->issued,
	// advances the firm's counter for the invoice's kind under a row lock, and —
	// when the invoice closes an advance — transitions the advance to closed with
	// a back-link, all in one transaction.
	FinalizeInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) (*domain.Invoice, error)

	// CancelInvoice transitions issued->cancelled recording reason, actor, and
	// timestamp.
	CancelInvoice(ctx context.Context, invoiceID string, reason string, userID string, now time.Time) error

	// ConvertProforma persists the new draft invoice with its lines and marks
	// the source proforma converted with a back-link, atomically. A proforma that
	// is not issued or was already converted fails the whole transaction.
	ConvertProforma(ctx context.Context, invoice domain.Invoice, lines []domain.LineItem, proformaID string, userID string, now time.Time) error

	// UpdatePDFStatus records the PDF side-effect flag for an invoice.
	UpdatePDFStatus(ctx context.Context, invoiceID string, status domain.SideEffectStatus) error

	// UpdateEmailStatus records the email side-effect flag for an invoice.
	UpdateEmailStatus(ctx context.Context, invoiceID string, status domain.SideEffectStatus) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities.
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
