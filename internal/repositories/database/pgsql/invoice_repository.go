package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/obveznik/obveznik_backend/internal/apperrors"
	"github.com/obveznik/obveznik_backend/internal/core/domain"
	portsrepo "github.com/obveznik/obveznik_backend/internal/core/ports/repositories"
	"github.com/obveznik/obveznik_backend/internal/models"
	"github.com/obveznik/obveznik_backend/internal/utils/mapping"
	"github.com/obveznik/obveznik_backend/internal/utils/numbering"
	"github.com/obveznik/obveznik_backend/internal/utils/pagination"
)

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `
	invoice_id, firm_id, client_id, author_id, number, kind, status,
	currency_code, mid_rate, total_origin, total_domestic,
	transaction_date, payment_term_days, due_date, finalized_at,
	contract_number, decision_number, order_number, reference_number, reference_model,
	advance_invoice_id, proforma_invoice_id, linked_invoice_id,
	cancel_reason, cancelled_at, cancelled_by,
	pdf_status, email_status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID, &m.FirmID, &m.ClientID, &m.AuthorID, &m.Number, &m.Kind, &m.Status,
		&m.CurrencyCode, &m.MidRate, &m.TotalOrigin, &m.TotalDomestic,
		&m.TransactionDate, &m.PaymentTermDays, &m.DueDate, &m.FinalizedAt,
		&m.ContractNumber, &m.DecisionNumber, &m.OrderNumber, &m.ReferenceNumber, &m.ReferenceModel,
		&m.AdvanceInvoiceID, &m.ProformaInvoiceID, &m.LinkedInvoiceID,
		&m.CancelReason, &m.CancelledAt, &m.CancelledBy,
		&m.PDFStatus, &m.EmailStatus,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// insertInvoiceTx inserts the invoice row and its line items on the given
// transaction. Shared by SaveInvoice and ConvertProforma.
func insertInvoiceTx(ctx context.Context, tx pgx.Tx, invoice domain.Invoice, lines []domain.LineItem) error {
	m := mapping.ToModelInvoice(invoice)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32);
	`
	_, err := tx.Exec(ctx, query,
		m.InvoiceID, m.FirmID, m.ClientID, m.AuthorID, m.Number, m.Kind, m.Status,
		m.CurrencyCode, m.MidRate, m.TotalOrigin, m.TotalDomestic,
		m.TransactionDate, m.PaymentTermDays, m.DueDate, m.FinalizedAt,
		m.ContractNumber, m.DecisionNumber, m.OrderNumber, m.ReferenceNumber, m.ReferenceModel,
		m.AdvanceInvoiceID, m.ProformaInvoiceID, m.LinkedInvoiceID,
		m.CancelReason, m.CancelledAt, m.CancelledBy,
		m.PDFStatus, m.EmailStatus,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice %s: %w", m.InvoiceID, err)
	}

	return insertLineItemsTx(ctx, tx, lines)
}

func insertLineItemsTx(ctx context.Context, tx pgx.Tx, lines []domain.LineItem) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO invoice_lines (line_item_id, invoice_id, product_id, description, quantity, unit, unit_price, total, sequence_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, l := range lines {
		ml := mapping.ToModelLineItem(l)
		batch.Queue(lineQuery, ml.LineItemID, ml.InvoiceID, ml.ProductID, ml.Description, ml.Quantity, ml.Unit, ml.UnitPrice, ml.Total, ml.SequenceNo)
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert line item: %w", err)
		}
	}
	return nil
}

// counterColumn maps an invoice kind to the firm counter column it advances.
// The column name comes from this fixed switch, never from input.
func counterColumn(kind domain.InvoiceKind) string {
	switch kind {
	case domain.KindProforma:
		return "counter_proforma"
	case domain.KindAdvance:
		return "counter_advance"
	default:
		return "counter_standard"
	}
}

// SaveInvoice persists a new draft invoice and its line items.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertInvoiceTx(ctx, tx, invoice, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceInvoice updates a draft invoice's fields and replaces all of its line
// items. The guarded UPDATE fails the transaction when the row stopped being a
// draft since it was read.
func (r *PgxInvoiceRepository) ReplaceInvoice(ctx context.Context, invoice domain.Invoice, lines []domain.LineItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelInvoice(invoice)
	query := `
		UPDATE invoices SET
			currency_code = $2, mid_rate = $3, total_origin = $4, total_domestic = $5,
			transaction_date = $6, payment_term_days = $7, due_date = $8,
			contract_number = $9, decision_number = $10, order_number = $11,
			reference_number = $12, reference_model = $13,
			last_updated_at = $14, last_updated_by = $15
		WHERE invoice_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query,
		m.InvoiceID,
		m.CurrencyCode, m.MidRate, m.TotalOrigin, m.TotalDomestic,
		m.TransactionDate, m.PaymentTermDays, m.DueDate,
		m.ContractNumber, m.DecisionNumber, m.OrderNumber,
		m.ReferenceNumber, m.ReferenceModel,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update invoice %s: %w", m.InvoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s is no longer a draft", apperrors.ErrConflict, m.InvoiceID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_lines WHERE invoice_id = $1;`, m.InvoiceID); err != nil {
		return fmt.Errorf("failed to delete line items of invoice %s: %w", m.InvoiceID, err)
	}
	if err := insertLineItemsTx(ctx, tx, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// FinalizeInvoice assigns the official number and issues the invoice in one
// transaction. The firm row lock serialises concurrent finalizations per
// tenant, which is what keeps numbers gapless and duplicate-free.
func (r *PgxInvoiceRepository) FinalizeInvoice(ctx context.Context, invoiceID string, userID string, now time.Time) (*domain.Invoice, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	row := tx.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1 FOR UPDATE;`, invoiceID)
	m, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}
	if m.Status != string(domain.StatusDraft) {
		return nil, fmt.Errorf("%w: invoice %s is %s", apperrors.ErrConflict, invoiceID, m.Status)
	}
	kind := domain.InvoiceKind(m.Kind)
	column := counterColumn(kind)

	// Lock the firm row so concurrent finalizations for this tenant queue up.
	var prefix, suffix string
	var counter int
	firmQuery := fmt.Sprintf(`SELECT number_prefix, number_suffix, %s FROM firms WHERE firm_id = $1 FOR UPDATE;`, column)
	if err := tx.QueryRow(ctx, firmQuery, m.FirmID).Scan(&prefix, &suffix, &counter); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock firm %s: %w", m.FirmID, err)
	}

	// Calendar-year rollover is decided against the kind's previous
	// finalization under the same lock.
	var lastFinalizedAt *time.Time
	lastQuery := `SELECT MAX(finalized_at) FROM invoices WHERE firm_id = $1 AND kind = $2 AND finalized_at IS NOT NULL;`
	if err := tx.QueryRow(ctx, lastQuery, m.FirmID, m.Kind).Scan(&lastFinalizedAt); err != nil {
		return nil, fmt.Errorf("failed to find last finalization for firm %s: %w", m.FirmID, err)
	}

	assigned := numbering.NextCounter(lastFinalizedAt, counter, now)
	number := numbering.PeekNumber(prefix, suffix, kind, lastFinalizedAt, counter, now)

	issueQuery := `
		UPDATE invoices SET number = $2, status = 'ISSUED', finalized_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, issueQuery, invoiceID, number, now, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("%w: invoice %s is no longer a draft", apperrors.ErrConflict, invoiceID)
	}

	counterQuery := fmt.Sprintf(`UPDATE firms SET %s = $2, last_updated_at = $3, last_updated_by = $4 WHERE firm_id = $1;`, column)
	if _, err := tx.Exec(ctx, counterQuery, m.FirmID, assigned+1, now, userID); err != nil {
		return nil, fmt.Errorf("failed to advance counter for firm %s: %w", m.FirmID, err)
	}

	if m.AdvanceInvoiceID != nil {
		closeQuery := `
			UPDATE invoices SET status = 'CLOSED', linked_invoice_id = $2, last_updated_at = $3, last_updated_by = $4
			WHERE invoice_id = $1 AND status = 'ISSUED';
		`
		tag, err := tx.Exec(ctx, closeQuery, *m.AdvanceInvoiceID, invoiceID, now, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to close advance %s: %w", *m.AdvanceInvoiceID, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, fmt.Errorf("%w: advance %s is no longer issued", apperrors.ErrConflict, *m.AdvanceInvoiceID)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Number = number
	m.Status = string(domain.StatusIssued)
	m.FinalizedAt = &now
	m.LastUpdatedAt = now
	m.LastUpdatedBy = userID
	result := mapping.ToDomainInvoice(m)
	return &result, nil
}

// CancelInvoice transitions issued->cancelled recording reason, actor and timestamp.
func (r *PgxInvoiceRepository) CancelInvoice(ctx context.Context, invoiceID string, reason string, userID string, now time.Time) error {
	query := `
		UPDATE invoices SET status = 'CANCELLED', cancel_reason = $2, cancelled_at = $3, cancelled_by = $4,
			last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND status = 'ISSUED';
	`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, reason, now, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: invoice %s is not issued", apperrors.ErrConflict, invoiceID)
	}
	return nil
}

// ConvertProforma persists the new draft invoice and marks the source proforma
// converted, atomically.
func (r *PgxInvoiceRepository) ConvertProforma(ctx context.Context, invoice domain.Invoice, lines []domain.LineItem, proformaID string, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	convertQuery := `
		UPDATE invoices SET status = 'CONVERTED', linked_invoice_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE invoice_id = $1 AND kind = 'PROFORMA' AND status = 'ISSUED';
	`
	tag, err := tx.Exec(ctx, convertQuery, proformaID, invoice.InvoiceID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark proforma %s converted: %w", proformaID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: proforma %s is not convertible", apperrors.ErrConflict, proformaID)
	}

	if err := insertInvoiceTx(ctx, tx, invoice, lines); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// UpdatePDFStatus records the PDF side-effect flag for an invoice.
func (r *PgxInvoiceRepository) UpdatePDFStatus(ctx context.Context, invoiceID string, status domain.SideEffectStatus) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE invoices SET pdf_status = $2 WHERE invoice_id = $1;`, invoiceID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update pdf status of invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateEmailStatus records the email side-effect flag for an invoice.
func (r *PgxInvoiceRepository) UpdateEmailStatus(ctx context.Context, invoiceID string, status domain.SideEffectStatus) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE invoices SET email_status = $2 WHERE invoice_id = $1;`, invoiceID, string(status))
	if err != nil {
		return fmt.Errorf("failed to update email status of invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindInvoiceByID retrieves a single invoice without its line items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE invoice_id = $1;`, invoiceID)
	m, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice %s: %w", invoiceID, err)
	}
	result := mapping.ToDomainInvoice(m)
	return &result, nil
}

// FindLineItemsByInvoiceID retrieves the line items of an invoice ordered by
// sequence number.
func (r *PgxInvoiceRepository) FindLineItemsByInvoiceID(ctx context.Context, invoiceID string) ([]domain.LineItem, error) {
	query := `
		SELECT line_item_id, invoice_id, product_id, description, quantity, unit, unit_price, total, sequence_no
		FROM invoice_lines
		WHERE invoice_id = $1
		ORDER BY sequence_no;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line items of invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	modelLines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.LineItem, error) {
		var l models.LineItem
		err := row.Scan(&l.LineItemID, &l.InvoiceID, &l.ProductID, &l.Description, &l.Quantity, &l.Unit, &l.UnitPrice, &l.Total, &l.SequenceNo)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan line items of invoice %s: %w", invoiceID, err)
	}
	return mapping.ToDomainLineItemSlice(modelLines), nil
}

// ListInvoicesByFirm retrieves a paginated list of invoices for a firm using
// token-based pagination, newest first.
func (r *PgxInvoiceRepository) ListInvoicesByFirm(ctx context.Context, firmID string, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := []interface{}{firmID, limit + 1}
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE firm_id = $1`

	if nextToken != nil && *nextToken != "" {
		transactionDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (transaction_date, created_at) < ($3, $4)`
		args = append(args, transactionDate, createdAt)
	}
	query += ` ORDER BY transaction_date DESC, created_at DESC LIMIT $2;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices of firm %s: %w", firmID, err)
	}
	defer rows.Close()

	modelInvoices, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Invoice, error) {
		return scanInvoice(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan invoices of firm %s: %w", firmID, err)
	}

	var token *string
	if len(modelInvoices) > limit {
		modelInvoices = modelInvoices[:limit]
		last := modelInvoices[len(modelInvoices)-1]
		encoded := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &encoded
	}

	invoices := make([]domain.Invoice, len(modelInvoices))
	for i, m := range modelInvoices {
		invoices[i] = mapping.ToDomainInvoice(m)
	}
	return invoices, token, nil
}
