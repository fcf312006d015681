package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/obveznik/obveznik_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	invoiceRepo := newPgxInvoiceRepository(dbPool)
	firmRepo := newPgxFirmRepository(dbPool)
	clientRepo := newPgxClientRepository(dbPool)
	revenueBookRepo := newPgxRevenueBookRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		InvoiceRepo:     invoiceRepo,
		FirmRepo:        firmRepo,
		ClientRepo:      clientRepo,
		RevenueBookRepo: revenueBookRepo,
		ReportingRepo:   reportingRepo,
	}
}
