package numbering_test

import (
	"testing"
	"time"

	"github.com/obveznik/obveznik_backend/internal/core/domain"
	"github.com/obveznik/obveznik_backend/internal/utils/numbering"
	"github.com/stretchr/testify/assert"
)

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "MK-0001/25", numbering.FormatNumber("MK-", domain.KindStandard, 1, "/25"))
	assert.Equal(t, "MK-PRO0042/25", numbering.FormatNumber("MK-", domain.KindProforma, 42, "/25"))
	assert.Equal(t, "MK-AVN0984/25", numbering.FormatNumber("MK-", domain.KindAdvance, 984, "/25"))
	assert.Equal(t, "1234", numbering.FormatNumber("", domain.KindStandard, 1234, ""))
	assert.Equal(t, "12345", numbering.FormatNumber("", domain.KindStandard, 12345, ""))
}

func TestDraftNumber(t *testing.T) {
	assert.Equal(t, "DRAFT-abc", numbering.DraftNumber("abc"))
}

func TestNextCounter(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sameYear := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	prevYear := time.Date(2025, 12, 30, 9, 0, 0, 0, time.UTC)

	t.Run("no prior finalization starts at 1", func(t *testing.T) {
		assert.Equal(t, 1, numbering.NextCounter(nil, 0, now))
		assert.Equal(t, 1, numbering.NextCounter(nil, 1, now))
	})

	t.Run("no prior finalization honours a pre-seeded counter", func(t *testing.T) {
		assert.Equal(t, 120, numbering.NextCounter(nil, 120, now))
	})

	t.Run("same year continues the sequence", func(t *testing.T) {
		assert.Equal(t, 985, numbering.NextCounter(&sameYear, 985, now))
	})

	t.Run("year rollover resets to 1", func(t *testing.T) {
		// Last invoice of 2025 was #984, counter sits at 985.
		assert.Equal(t, 1, numbering.NextCounter(&prevYear, 985, now))
	})
}

func TestPeekNumber(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	sameYear := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)
	prevYear := time.Date(2025, 12, 30, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "MK-0042/26", numbering.PeekNumber("MK-", "/26", domain.KindStandard, &sameYear, 42, now))
	assert.Equal(t, "MK-AVN0001/26", numbering.PeekNumber("MK-", "/26", domain.KindAdvance, &prevYear, 985, now))
	assert.Equal(t, "PRO0001", numbering.PeekNumber("", "", domain.KindProforma, nil, 0, now))
}
