package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportingRepositoryFacade exposes the revenue aggregates the rolling-limit
// calculator runs on.
type ReportingRepositoryFacade interface {
	// SumIssuedRevenue sums the domestic totals of a firm's non-cancelled,
	// finalized invoices whose transaction date falls within [from, to].
	// Proformas are excluded; they are not revenue.
	SumIssuedRevenue(ctx context.Context, firmID string, from, to time.Time) (decimal.Decimal, error)
}
