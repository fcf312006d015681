package pagination_test

import (
	"testing"
	"time"

	"github.com/obveznik/obveznik_backend/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	txnDate := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2025, 11, 3, 14, 22, 51, 123456789, time.UTC)

	token := pagination.EncodeToken(txnDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)
	require.NoError(t, err)
	assert.True(t, txnDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeTokenRejectsGarbage(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("aGVsbG8=") // base64("hello"), no separator
	assert.Error(t, err)
}
