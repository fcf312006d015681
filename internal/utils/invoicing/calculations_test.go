package invoicing_test

import (
	"testing"
	"time"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/obveznik/obveznik_backend/internal/utils/invoicing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestLineTotalIsUnrounded(t *testing.T) {
	// 3 x 33.333 = 99.999, kept exact until the document sum.
	total := invoicing.LineTotal(dec("3"), dec("33.333"))
	assert.True(t, total.Equal(dec("99.999")), "got %s", total)
}

func TestSumLinesRoundsOnceAtTheSum(t *testing.T) {
	lines := []domain.LineItem{
		{Total: invoicing.LineTotal(dec("1"), dec("0.005"))},
		{Total: invoicing.LineTotal(dec("1"), dec("0.005"))},
	}
	// Per-line rounding would give 0.00 + 0.00 = 0.00; rounding at the sum gives 0.01.
	assert.True(t, invoicing.SumLines(lines).Equal(dec("0.01")))
}

func TestDomesticTotal(t *testing.T) {
	got := invoicing.DomesticTotal(dec("100.00"), dec("117.5432"))
	assert.True(t, got.Equal(dec("11754.32")), "got %s", got)
}

func TestAdvanceAmount(t *testing.T) {
	got := invoicing.AdvanceAmount(dec("100000"), dec("33.3"))
	assert.True(t, got.Equal(dec("33300")), "got %s", got)

	got = invoicing.AdvanceAmount(dec("999.99"), dec("50"))
	assert.True(t, got.Equal(dec("500.00")), "got %s", got)
}

func TestDueDateWeekendShift(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	t.Run("weekday stays put", func(t *testing.T) {
		due := invoicing.DueDate(monday, 3) // Thursday
		assert.Equal(t, time.Thursday, due.Weekday())
		assert.Equal(t, 5, due.Day())
	})

	t.Run("saturday moves to monday", func(t *testing.T) {
		due := invoicing.DueDate(monday, 5) // Saturday 2025-06-07
		assert.Equal(t, time.Monday, due.Weekday())
		assert.Equal(t, 9, due.Day())
	})

	t.Run("sunday moves to monday", func(t *testing.T) {
		due := invoicing.DueDate(monday, 6) // Sunday 2025-06-08
		assert.Equal(t, time.Monday, due.Weekday())
		assert.Equal(t, 9, due.Day())
	})
}
