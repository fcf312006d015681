package domain

import "github.com/shopspring/decimal"

// Regulatory revenue ceilings for lump-sum taxpayers, in RSD.
var (
	RollingLimit365 = decimal.NewFromInt(8_000_000)
	YearlyLimit     = decimal.NewFromInt(6_000_000)
)

// LimitProjection is one sliding-window projection of the trailing 365-day
// revenue total, shifted HorizonDays into the future.
type LimitProjection struct {
	HorizonDays int             `json:"horizonDays"`
	Remaining   decimal.Decimal `json:"remaining"`
	OverLimit   bool            `json:"overLimit"`
}

// LimitStatus is a firm's standing against both regulatory ceilings, with
// short-horizon projections.
type LimitStatus struct {
	FirmID string `json:"firmID"`

	YearRevenue   decimal.Decimal `json:"yearRevenue"`
	YearRemaining decimal.Decimal `json:"yearRemaining"`

	Trailing365Revenue   decimal.Decimal `json:"trailing365Revenue"`
	Trailing365Remaining decimal.Decimal `json:"trailing365Remaining"`

	Projections []LimitProjection `json:"projections"`
}
