package pagination_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tillpoint/tillpoint_backend/internal/utils/pagination"
)

func TestEncodeDecodeToken(t *testing.T) {
	createdAt := time.Date(2025, 6, 12, 9, 30, 15, 123456789, time.UTC)
	id := "f3b5c3f2-1f46-4f6e-9b0a-6a1c6f0a9e11"

	token := pagination.EncodeToken(createdAt, id)
	gotTime, gotID, err := pagination.DecodeToken(token)

	require.NoError(t, err)
	assert.True(t, createdAt.Equal(gotTime))
	assert.Equal(t, id, gotID)
}

func TestDecodeToken_Invalid(t *testing.T) {
	_, _, err := pagination.DecodeToken("not-base64!!")
	assert.Error(t, err)

	_, _, err = pagination.DecodeToken("bm8tc2VwYXJhdG9y") // "no-separator"
	assert.Error(t, err)
}
