package invoicing

import (
	"time"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineTotal computes the total of a single line: quantity x unit price, unrounded.
// Rounding happens once at the document sum, never per line.
func LineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return quantity.Mul(unitPrice)
}

// SumLines adds up the line totals and rounds the sum to 2 decimal places.
func SumLines(lines []domain.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total)
	}
	return sum.Round(2)
}

// DomesticTotal converts an origin-currency total into the domestic currency:
// round(origin x rate, 2).
func DomesticTotal(originTotal, rate decimal.Decimal) decimal.Decimal {
	return originTotal.Mul(rate).Round(2)
}

// AdvanceAmount computes the percentage-mode advance amount:
// round(contract value x percent / 100, 2).
func AdvanceAmount(contractValue, percent decimal.Decimal) decimal.Decimal {
	return contractValue.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
}

// DueDate computes the payment due date from the transaction date and the
// payment term, shifting Saturday/Sunday results to the following Monday.
// State-holiday adjustment is deliberately not applied yet.
func DueDate(transactionDate time.Time, termDays int) time.Time {
	due := transactionDate.AddDate(0, 0, termDays)
	switch due.Weekday() {
	case time.Saturday:
		due = due.AddDate(0, 0, 2)
	case time.Sunday:
		due = due.AddDate(0, 0, 1)
	}
	return due
}
