package dto

import (
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse is the official middle rate for one currency on one day.
type ExchangeRateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Date         string          `json:"date"`
	MidRate      decimal.Decimal `json:"midRate"`
}
