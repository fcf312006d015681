package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obveznik/obveznik_backend/internal/apperrors"
	"github.com/obveznik/obveznik_backend/internal/core/domain"
	portsrepo "github.com/obveznik/obveznik_backend/internal/core/ports/repositories"
	"github.com/obveznik/obveznik_backend/internal/models"
	"github.com/obveznik/obveznik_backend/internal/utils/mapping"
)

type PgxRevenueBookRepository struct {
	BaseRepository
}

// newPgxRevenueBookRepository creates a new repository for revenue book entries.
func newPgxRevenueBookRepository(pool *pgxpool.Pool) portsrepo.RevenueBookRepositoryFacade {
	return &PgxRevenueBookRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.RevenueBookRepositoryFacade = (*PgxRevenueBookRepository)(nil)

const revenueBookColumns = `
	entry_id, firm_id, invoice_id, sequence_no, year,
	invoice_number, transaction_date, due_date, client_name, client_tax_id,
	description, amount_domestic, currency_code, invoice_status, created_at`

func scanRevenueBookEntry(row pgx.Row) (models.RevenueBookEntry, error) {
	var m models.RevenueBookEntry
	err := row.Scan(
		&m.EntryID, &m.FirmID, &m.InvoiceID, &m.SequenceNo, &m.Year,
		&m.InvoiceNumber, &m.TransactionDate, &m.DueDate, &m.ClientName, &m.ClientTaxID,
		&m.Description, &m.AmountDomestic, &m.CurrencyCode, &m.InvoiceStatus, &m.CreatedAt,
	)
	return m, err
}

// SaveEntry inserts the entry, assigning the next per-firm/per-year sequence
// number. The firm row lock serialises concurrent inserts so sequence numbers
// stay gapless within the year.
func (r *PgxRevenueBookRepository) SaveEntry(ctx context.Context, entry domain.RevenueBookEntry) (*domain.RevenueBookEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT 1 FROM firms WHERE firm_id = $1 FOR UPDATE;`, entry.FirmID); err != nil {
		return nil, fmt.Errorf("failed to lock firm %s: %w", entry.FirmID, err)
	}

	var nextSeq int
	seqQuery := `SELECT COALESCE(MAX(sequence_no), 0) + 1 FROM revenue_book_entries WHERE firm_id = $1 AND year = $2;`
	if err := tx.QueryRow(ctx, seqQuery, entry.FirmID, entry.Year).Scan(&nextSeq); err != nil {
		return nil, fmt.Errorf("failed to compute next sequence for firm %s: %w", entry.FirmID, err)
	}
	entry.SequenceNo = nextSeq

	m := mapping.ToModelRevenueBookEntry(entry)
	insertQuery := `
		INSERT INTO revenue_book_entries (` + revenueBookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.EntryID, m.FirmID, m.InvoiceID, m.SequenceNo, m.Year,
		m.InvoiceNumber, m.TransactionDate, m.DueDate, m.ClientName, m.ClientTaxID,
		m.Description, m.AmountDomestic, m.CurrencyCode, m.InvoiceStatus, m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert revenue book entry for invoice %s: %w", m.InvoiceID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindEntryByInvoiceID retrieves the entry recorded for an invoice.
func (r *PgxRevenueBookRepository) FindEntryByInvoiceID(ctx context.Context, invoiceID string) (*domain.RevenueBookEntry, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+revenueBookColumns+` FROM revenue_book_entries WHERE invoice_id = $1;`, invoiceID)
	m, err := scanRevenueBookEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find revenue book entry for invoice %s: %w", invoiceID, err)
	}
	entry := mapping.ToDomainRevenueBookEntry(m)
	return &entry, nil
}

// UpdateEntryStatus mirrors an invoice status change onto its entry.
func (r *PgxRevenueBookRepository) UpdateEntryStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE revenue_book_entries SET invoice_status = $2 WHERE invoice_id = $1;`, invoiceID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update revenue book status for invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListEntriesByFirmYear retrieves all entries of a firm for a calendar year,
// ordered by sequence number.
func (r *PgxRevenueBookRepository) ListEntriesByFirmYear(ctx context.Context, firmID string, year int) ([]domain.RevenueBookEntry, error) {
	query := `SELECT ` + revenueBookColumns + ` FROM revenue_book_entries WHERE firm_id = $1 AND year = $2 ORDER BY sequence_no;`
	rows, err := r.Pool.Query(ctx, query, firmID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue book of firm %s: %w", firmID, err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RevenueBookEntry, error) {
		return scanRevenueBookEntry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan revenue book of firm %s: %w", firmID, err)
	}

	entries := make([]domain.RevenueBookEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainRevenueBookEntry(m)
	}
	return entries, nil
}
