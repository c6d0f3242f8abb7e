package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard values
	submittedAt := time.Date(2025, 5, 15, 14, 30, 45, 123456789, time.UTC)
	expenseID := "3f8f6f3a-8a1e-4f8c-9f6e-0b0a1c2d3e4f"

	token := EncodeToken(submittedAt, expenseID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, submittedAt, decodedAt, "Submission time should match after decode")
	assert.Equal(t, expenseID, decodedID, "Expense ID should match after decode")

	// Zero time
	zeroToken := EncodeToken(time.Time{}, "id")
	decodedZero, _, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, time.Time{}, decodedZero, "Zero time should match after decode")

	// Current time; use Equal to sidestep monotonic clock differences
	now := time.Now().UTC()
	nowToken := EncodeToken(now, expenseID)
	decodedNow, _, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNow), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Missing separator
	invalidToken := "MjAyNS0wNS0xNVQwMDowMDowMFo=" // Base64 encoded timestamp without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Invalid timestamp
	invalidDateToken := "bm90YWRhdGV8c29tZS1pZA==" // Base64 encoded "notadate|some-id"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid timestamp")
	assert.Contains(t, err.Error(), "submitted_at parse", "Error should mention timestamp parsing issue")
}
