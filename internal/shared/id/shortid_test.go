package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_LengthAndAlphabet(t *testing.T) {
	s, err := Generate(16)
	require.NoError(t, err)
	assert.Len(t, s, 16)
	for _, r := range s {
		assert.Contains(t, alphabet, string(r))
	}

	s, err = Generate(0)
	require.NoError(t, err)
	assert.Len(t, s, DefaultLength)
}

func TestNewReceiptNumber(t *testing.T) {
	day := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	r, err := NewReceiptNumber(day)
	require.NoError(t, err)

	assert.Regexp(t, `^RCPT-20260115-[0-9A-Z]{6}$`, r)
	assert.True(t, IsReceiptNumber(r))
	assert.False(t, IsReceiptNumber("RCPT-2026-ABCDEF"))
	assert.False(t, IsReceiptNumber("INV-20260115-ABCDEF"))
}
