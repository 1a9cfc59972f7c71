package valueobjects

import (
	"fmt"
	"strings"
)

// PaymentStatus is shared by subscriptions (their billing state) and
// payment records (the state of a single payment event).
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

var ValidPaymentStatuses = map[PaymentStatus]bool{
	PaymentStatusPending:  true,
	PaymentStatusPaid:     true,
	PaymentStatusFailed:   true,
	PaymentStatusRefunded: true,
}

func ParsePaymentStatus(value string) (PaymentStatus, error) {
	s := PaymentStatus(strings.ToLower(strings.TrimSpace(value)))
	if !ValidPaymentStatuses[s] {
		return "", fmt.Errorf("invalid payment status: %q", value)
	}
	return s, nil
}

func (p PaymentStatus) String() string {
	return string(p)
}

func (p PaymentStatus) IsValid() bool {
	return ValidPaymentStatuses[p]
}

func (p PaymentStatus) IsPaid() bool {
	return p == PaymentStatusPaid
}
