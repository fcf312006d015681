package numbering

import (
	"fmt"
	"time"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
)

// typeTag returns the kind marker embedded in display numbers. Standard invoices
// carry no marker.
func typeTag(kind domain.InvoiceKind) string {
	switch kind {
	case domain.KindProforma:
		return "PRO"
	case domain.KindAdvance:
		return "AVN"
	default:
		return ""
	}
}

// FormatNumber builds the user-visible document number:
// {prefix}{TYPE-TAG}{counter:04d}{suffix}.
func FormatNumber(prefix string, kind domain.InvoiceKind, counter int, suffix string) string {
	return fmt.Sprintf("%s%s%04d%s", prefix, typeTag(kind), counter, suffix)
}

// DraftNumber is the placeholder shown on documents that were never finalized.
func DraftNumber(invoiceID string) string {
	return "DRAFT-" + invoiceID
}

// NextCounter decides the number the invoice being finalized receives. The
// stored counter holds the next number to assign within the calendar year of the
// kind's last finalization; crossing into a new year resets the sequence to 1.
// The rollover check runs against the previous finalization, not today's date,
// so the first document of a new year is always #1 regardless of how high the
// counter climbed.
func NextCounter(lastFinalizedAt *time.Time, counter int, now time.Time) int {
	if lastFinalizedAt != nil && lastFinalizedAt.Year() != now.Year() {
		return 1
	}
	if counter < 1 {
		return 1
	}
	return counter
}

// PeekNumber previews the number the next finalization of the given kind would
// assign, without committing anything. Finalization itself evaluates the same
// functions under the firm-row lock, so the preview can go stale the moment
// another document is finalized.
func PeekNumber(prefix, suffix string, kind domain.InvoiceKind, lastFinalizedAt *time.Time, counter int, now time.Time) string {
	return FormatNumber(prefix, kind, NextCounter(lastFinalizedAt, counter, now), suffix)
}
