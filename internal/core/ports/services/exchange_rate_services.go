package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRateSvcFacade resolves official middle exchange rates against the
// domestic currency.
type ExchangeRateSvcFacade interface {
	// GetRate returns the mid-rate for the currency on the given date. When the
	// day's list is not yet published it falls back to the most recent cached
	// rate up to seven days back.
	GetRate(ctx context.Context, currencyCode string, date time.Time) (decimal.Decimal, error)
}
