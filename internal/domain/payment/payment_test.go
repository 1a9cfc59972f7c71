package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/id"
)

func newTestPayment(t *testing.T) *Payment {
	t.Helper()
	p, err := NewPayment(NewPaymentParams{
		SubscriptionID: 11,
		ClientID:       3,
		Amount:         decimal.RequireFromString("11940.00"),
		Currency:       "inr",
		Method:         MethodUPI,
		RecordedBy:     2,
	})
	require.NoError(t, err)
	return p
}

func TestNewPayment(t *testing.T) {
	p := newTestPayment(t)
	assert.Equal(t, vo.PaymentStatusPending, p.Status())
	assert.Equal(t, "INR", p.Currency())
	assert.True(t, id.IsReceiptNumber(p.ReceiptNumber()))
	assert.Nil(t, p.TransactionID())
	assert.Equal(t, 1, p.Version())
}

func TestNewPayment_Validation(t *testing.T) {
	base := NewPaymentParams{SubscriptionID: 1, Amount: decimal.NewFromInt(10), Method: MethodCash}

	bad := base
	bad.Amount = decimal.Zero
	_, err := NewPayment(bad)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	bad = base
	bad.Amount = decimal.RequireFromString("10.005")
	_, err = NewPayment(bad)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	bad = base
	bad.Method = "crypto"
	_, err = NewPayment(bad)
	assert.ErrorIs(t, err, ErrInvalidMethod)
}

func TestPayment_MarkAsPaid(t *testing.T) {
	p := newTestPayment(t)

	changed, err := p.MarkAsPaid("UTR123")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, vo.PaymentStatusPaid, p.Status())
	require.NotNil(t, p.PaidAt())
	assert.Equal(t, "UTR123", *p.TransactionID())
	assert.Equal(t, 2, p.Version())

	changed, err = p.MarkAsPaid("")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 2, p.Version())
}

func TestPayment_FailedThenPaid(t *testing.T) {
	p := newTestPayment(t)

	assert.ErrorIs(t, p.MarkAsFailed("  "), ErrReasonRequired)
	require.NoError(t, p.MarkAsFailed("card declined"))
	assert.Equal(t, "card declined", *p.FailureReason())
	assert.ErrorIs(t, p.MarkAsFailed("again"), ErrInvalidTransition)

	changed, err := p.MarkAsPaid("")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Nil(t, p.FailureReason())
}

func TestPayment_Refund(t *testing.T) {
	p := newTestPayment(t)
	assert.ErrorIs(t, p.Refund("duplicate"), ErrInvalidTransition)

	_, err := p.MarkAsPaid("")
	require.NoError(t, err)
	require.NoError(t, p.Refund("duplicate"))
	assert.Equal(t, vo.PaymentStatusRefunded, p.Status())

	_, err = p.MarkAsPaid("")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestParseMethod(t *testing.T) {
	m, err := ParseMethod(" Bank_Transfer ")
	require.NoError(t, err)
	assert.Equal(t, MethodBankTransfer, m)

	m, err = ParseMethod("bank-transfer")
	require.NoError(t, err)
	assert.Equal(t, MethodBankTransfer, m)

	_, err = ParseMethod("barter")
	assert.ErrorIs(t, err, ErrInvalidMethod)
}
