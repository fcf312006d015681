package services

import (
	"context"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
)

// RevenueBookSvcFacade maintains the statutory revenue book.
type RevenueBookSvcFacade interface {
	// RecordInvoice appends an entry for a freshly issued invoice. Proformas are
	// skipped; they are not revenue. The client may be nil when the lookup
	// failed; the entry is still written with what is known.
	RecordInvoice(ctx context.Context, invoice *domain.Invoice, client *domain.Client) (*domain.RevenueBookEntry, error)

	// MarkInvoiceCancelled mirrors a cancellation onto the invoice's entry.
	MarkInvoiceCancelled(ctx context.Context, invoiceID string) error

	// ListEntries retrieves a firm's revenue book for one calendar year.
	ListEntries(ctx context.Context, firmID string, year int) ([]domain.RevenueBookEntry, error)
}
