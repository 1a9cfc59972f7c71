package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/query"
)

func TestPaymentAndHistoryRepositories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	payments := NewPaymentRepository(f.db)
	history := NewHistoryRepository(f.db)

	p := f.plan(t, "Standard")
	mine := f.client(t, "mine@acme.in", 5)
	theirs := f.client(t, "theirs@acme.in", 6)
	s := f.subscription(t, mine, p, day(2026, time.January, 1), day(2026, time.March, 31))
	s2 := f.subscription(t, theirs, p, day(2026, time.January, 1), day(2026, time.March, 31))

	pay, err := payment.NewPayment(payment.NewPaymentParams{
		SubscriptionID: s.ID(),
		ClientID:       mine.ID(),
		Amount:         s.FinalAmount(),
		Currency:       "INR",
		Method:         payment.MethodUPI,
		RecordedBy:     5,
	})
	require.NoError(t, err)
	require.NoError(t, payments.Create(ctx, pay))

	other, err := payment.NewPayment(payment.NewPaymentParams{
		SubscriptionID: s2.ID(),
		ClientID:       theirs.ID(),
		Amount:         decimal.NewFromInt(100),
		Currency:       "INR",
		Method:         payment.MethodCash,
		RecordedBy:     6,
	})
	require.NoError(t, err)
	require.NoError(t, payments.Create(ctx, other))

	stale, err := payments.GetByID(ctx, pay.ID())
	require.NoError(t, err)

	_, err = pay.MarkAsPaid("UTR-991")
	require.NoError(t, err)
	require.NoError(t, payments.Update(ctx, pay))

	require.NoError(t, stale.MarkAsFailed("bounced"))
	assert.ErrorIs(t, payments.Update(ctx, stale), payment.ErrConcurrentModification)

	owner := uint(5)
	list, total, err := payments.List(ctx, payment.Filter{BaseFilter: query.NewBaseFilter(), OwnerID: &owner})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, vo.PaymentStatusPaid, list[0].Status())
	assert.Equal(t, "UTR-991", *list[0].TransactionID())
	assert.Equal(t, pay.ReceiptNumber(), list[0].ReceiptNumber())

	h, err := subscription.NewHistory(s, subscription.EventPaymentReceived, 5)
	require.NoError(t, err)
	h.AddMetadata("payment_id", pay.ID())
	require.NoError(t, history.Create(ctx, h))

	entries, err := history.ListBySubscription(ctx, s.ID())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, subscription.EventPaymentReceived, entries[0].EventType())
	assert.EqualValues(t, pay.ID(), entries[0].Metadata()["payment_id"])
}
