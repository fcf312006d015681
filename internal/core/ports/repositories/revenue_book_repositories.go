package repositories

import (
	"context"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
)

// RevenueBookRepositoryFacade persists statutory revenue-book entries.
type RevenueBookRepositoryFacade interface {
	// SaveEntry inserts the entry, assigning the next per-firm/per-year sequence
	// number under a row lock. Returns the stored entry with the sequence set.
	SaveEntry(ctx context.Context, entry domain.RevenueBookEntry) (*domain.RevenueBookEntry, error)

	// FindEntryByInvoiceID retrieves the entry recorded for an invoice.
	FindEntryByInvoiceID(ctx context.Context, invoiceID string) (*domain.RevenueBookEntry, error)

	// UpdateEntryStatus mirrors an invoice status change onto its entry.
	UpdateEntryStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) error

	// ListEntriesByFirmYear retrieves all entries of a firm for a calendar year,
	// ordered by sequence number.
	ListEntriesByFirmYear(ctx context.Context, firmID string, year int) ([]domain.RevenueBookEntry, error)
}
