package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12

	receiptSuffixLength = 6
)

// Prefixes for human-readable identifiers.
const (
	PrefixReceipt = "RCPT"
)

// Generate creates a cryptographically random base62 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// NewReceiptNumber returns a payment receipt number of the form
// RCPT-YYYYMMDD-XXXXXX, dated by day. The suffix is upper-cased.
func NewReceiptNumber(day time.Time) (string, error) {
	suffix, err := Generate(receiptSuffixLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", PrefixReceipt, day.UTC().Format("20060102"), strings.ToUpper(suffix)), nil
}

// IsReceiptNumber reports whether s has the receipt number shape.
func IsReceiptNumber(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 3 || parts[0] != PrefixReceipt || len(parts[1]) != 8 || len(parts[2]) != receiptSuffixLength {
		return false
	}
	if _, err := time.Parse("20060102", parts[1]); err != nil {
		return false
	}
	return true
}
