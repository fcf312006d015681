package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	portsrepo "github.com/obveznik/obveznik_backend/internal/core/ports/repositories"
	portssvc "github.com/obveznik/obveznik_backend/internal/core/ports/services"
	"github.com/obveznik/obveznik_backend/internal/middleware"
)

// revenueBookService maintains the statutory revenue book.
type revenueBookService struct {
	revenueBookRepo portsrepo.RevenueBookRepositoryFacade
}

// NewRevenueBookService creates a new RevenueBookService.
func NewRevenueBookService(revenueBookRepo portsrepo.RevenueBookRepositoryFacade) portssvc.RevenueBookSvcFacade {
	return &revenueBookService{revenueBookRepo: revenueBookRepo}
}

var _ portssvc.RevenueBookSvcFacade = (*revenueBookService)(nil)

// RecordInvoice appends an entry for a freshly issued invoice.
func (s *revenueBookService) RecordInvoice(ctx context.Context, invoice *domain.Invoice, client *domain.Client) (*domain.RevenueBookEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if invoice.Kind == domain.KindProforma {
		// Proformas carry no revenue and never enter the book.
		return nil, nil
	}

	entry := domain.RevenueBookEntry{
		EntryID:         uuid.NewString(),
		FirmID:          invoice.FirmID,
		InvoiceID:       invoice.InvoiceID,
		Year:            invoice.TransactionDate.Year(),
		InvoiceNumber:   invoice.Number,
		TransactionDate: invoice.TransactionDate,
		DueDate:         invoice.DueDate,
		Description:     "Prihod od prodaje proizvoda i usluga",
		AmountDomestic:  invoice.TotalDomestic,
		CurrencyCode:    invoice.CurrencyCode,
		InvoiceStatus:   domain.StatusIssued,
		CreatedAt:       time.Now().UTC(),
	}
	if client != nil {
		entry.ClientName = client.Name
		entry.ClientTaxID = client.TaxID
	}

	saved, err := s.revenueBookRepo.SaveEntry(ctx, entry)
	if err != nil {
		logger.Error("Failed to save revenue book entry", slog.String("error", err.Error()), slog.String("invoice_id", invoice.InvoiceID))
		return nil, fmt.Errorf("failed to save revenue book entry: %w", err)
	}
	logger.Info("Revenue book entry recorded", slog.String("entry_id", saved.EntryID), slog.Int("sequence_no", saved.SequenceNo), slog.String("invoice_id", invoice.InvoiceID))
	return saved, nil
}

// MarkInvoiceCancelled mirrors a cancellation onto the invoice's entry.
func (s *revenueBookService) MarkInvoiceCancelled(ctx context.Context, invoiceID string) error {
	return s.revenueBookRepo.UpdateEntryStatus(ctx, invoiceID, domain.StatusCancelled)
}

// ListEntries retrieves a firm's revenue book for one calendar year.
func (s *revenueBookService) ListEntries(ctx context.Context, firmID string, year int) ([]domain.RevenueBookEntry, error) {
	return s.revenueBookRepo.ListEntriesByFirmYear(ctx, firmID, year)
}
