package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shuja-Siddiqui/procure-accounting-backend/internal/utils/pagination"
)

func TestEncodeDecodeToken(t *testing.T) {
	recordDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 15, 10, 30, 45, 123456789, time.UTC)

	token := pagination.EncodeToken(recordDate, createdAt)
	gotDate, gotCreated, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, recordDate.Equal(gotDate))
	assert.True(t, createdAt.Equal(gotCreated))
}

func TestDecodeToken_RejectsGarbage(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!!")
	assert.Error(t, err)

	// Valid base64 but wrong shape.
	_, _, err = pagination.DecodeToken("aGVsbG8=")
	assert.Error(t, err)
}
