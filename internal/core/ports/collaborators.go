package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateSource is the external national-bank rate list. A single dated call
// returns mid-rates for every supported currency present in that day's list;
// partially-available responses are legal.
type RateSource interface {
	FetchDailyRates(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error)
}

// RateCache is the key-value store for daily mid-rates. Implementations must
// degrade to "always miss" when the backing store is unreachable rather than
// surface errors to rate lookups.
type RateCache interface {
	// Get returns the cached rate for (currency, date) and whether it was found.
	Get(ctx context.Context, currency string, date time.Time) (decimal.Decimal, bool)

	// Set stores the rate for (currency, date) with the given retention.
	Set(ctx context.Context, currency string, date time.Time, rate decimal.Decimal, ttl time.Duration)
}

// TaskDispatcher hands post-commit side effects to the external worker queue.
// Dispatch is fire-and-forget: an error here must never roll back the
// transaction that triggered it.
type TaskDispatcher interface {
	// EnqueuePDF requests PDF generation for an invoice.
	EnqueuePDF(ctx context.Context, invoiceID string) error

	// EnqueueEmail requests email delivery of an invoice's PDF.
	EnqueueEmail(ctx context.Context, invoiceID, recipient, cc, subject, body string) error
}
