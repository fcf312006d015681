package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	portsrepo "github.com/obveznik/obveznik_backend/internal/core/ports/repositories"
)

type ReportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new repository for revenue aggregates.
func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &ReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReportingRepositoryFacade = (*ReportingRepository)(nil)

// SumIssuedRevenue sums the domestic totals of a firm's finalized,
// non-cancelled invoices whose transaction date falls within [from, to].
// Proformas never count as revenue; closed advances still do.
func (r *ReportingRepository) SumIssuedRevenue(ctx context.Context, firmID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_domestic), 0)
		FROM invoices
		WHERE firm_id = $1
		  AND kind != 'PROFORMA'
		  AND status IN ('ISSUED', 'CLOSED')
		  AND finalized_at IS NOT NULL
		  AND transaction_date >= $2
		  AND transaction_date <= $3;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, firmID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue of firm %s: %w", firmID, err)
	}
	return sum, nil
}
