package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	paymentdto "github.com/orris-inc/backoffice/internal/application/payment/dto"
	"github.com/orris-inc/backoffice/internal/application/payment/usecases"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/errors"
)

type mockRecordPaymentUC struct {
	cmd usecases.RecordPaymentCommand
	err error
}

func (m *mockRecordPaymentUC) Execute(ctx context.Context, cmd usecases.RecordPaymentCommand) (*paymentdto.PaymentDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &paymentdto.PaymentDTO{ID: 5, SubscriptionID: cmd.SubscriptionID, Amount: cmd.Amount.StringFixed(2), Status: "pending"}, nil
}

type mockMarkPaidUC struct {
	cmd usecases.MarkPaymentPaidCommand
	err error
}

func (m *mockMarkPaidUC) Execute(ctx context.Context, cmd usecases.MarkPaymentPaidCommand) (*paymentdto.PaymentDTO, error) {
	m.cmd = cmd
	if m.err != nil {
		return nil, m.err
	}
	return &paymentdto.PaymentDTO{ID: cmd.PaymentID, Status: "paid"}, nil
}

type mockMarkFailedUC struct {
	cmd usecases.MarkPaymentFailedCommand
}

func (m *mockMarkFailedUC) Execute(ctx context.Context, cmd usecases.MarkPaymentFailedCommand) (*paymentdto.PaymentDTO, error) {
	m.cmd = cmd
	return &paymentdto.PaymentDTO{ID: cmd.PaymentID, Status: "failed"}, nil
}

type mockRefundUC struct {
	cmd usecases.RefundPaymentCommand
}

func (m *mockRefundUC) Execute(ctx context.Context, cmd usecases.RefundPaymentCommand) (*paymentdto.PaymentDTO, error) {
	m.cmd = cmd
	return &paymentdto.PaymentDTO{ID: cmd.PaymentID, Status: "refunded"}, nil
}

type mockGetPaymentUC struct {
	err error
}

func (m *mockGetPaymentUC) Execute(ctx context.Context, scope authorization.Scope, paymentID uint) (*paymentdto.PaymentDTO, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &paymentdto.PaymentDTO{ID: paymentID}, nil
}

type mockListPaymentsUC struct {
	query usecases.ListPaymentsQuery
}

func (m *mockListPaymentsUC) Execute(ctx context.Context, query usecases.ListPaymentsQuery) (*usecases.ListPaymentsResult, error) {
	m.query = query
	return &usecases.ListPaymentsResult{Payments: []*paymentdto.PaymentDTO{}, Page: query.Page, PageSize: query.PageSize}, nil
}

func TestPaymentHandler_RecordPayment(t *testing.T) {
	mockUC := &mockRecordPaymentUC{}
	handler := NewPaymentHandler(mockUC, nil, nil, nil, nil, nil, testutil.NewMockLogger())

	body := map[string]interface{}{
		"subscription_id": 31,
		"amount":          "11940.00",
		"payment_method":  "UPI",
		"transaction_id":  "UTR-889201",
		"paid":            true,
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/payments", body)
	testutil.SetAuthContext(c, 7, authorization.RoleUser)

	handler.RecordPayment(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	cmd := mockUC.cmd
	assert.Equal(t, uint(31), cmd.SubscriptionID)
	assert.True(t, cmd.Amount.Equal(decimal.NewFromInt(11940)))
	assert.Equal(t, payment.MethodUPI, cmd.Method)
	assert.Equal(t, "UTR-889201", cmd.TransactionID)
	assert.True(t, cmd.Paid)
	assert.Equal(t, uint(7), cmd.Scope.UserID)
}

func TestPaymentHandler_RecordPayment_Invalid(t *testing.T) {
	mockUC := &mockRecordPaymentUC{}
	handler := NewPaymentHandler(mockUC, nil, nil, nil, nil, nil, testutil.NewMockLogger())

	body := map[string]interface{}{"subscription_id": 31, "amount": "100", "payment_method": "crypto"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/payments", body)

	handler.RecordPayment(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, mockUC.cmd.SubscriptionID)
}

func TestPaymentHandler_RecordPayment_ClosedSubscription(t *testing.T) {
	handler := NewPaymentHandler(&mockRecordPaymentUC{err: errors.NewConflictError("subscription is cancelled")},
		nil, nil, nil, nil, nil, testutil.NewMockLogger())

	body := map[string]interface{}{"subscription_id": 31, "amount": 100, "payment_method": "cash"}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/payments", body)

	handler.RecordPayment(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPaymentHandler_MarkPaid(t *testing.T) {
	mockUC := &mockMarkPaidUC{}
	handler := NewPaymentHandler(nil, mockUC, nil, nil, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/payments/5/paid", map[string]string{"transaction_id": "CHQ-0042"})
	testutil.SetURLParam(c, "id", "5")

	handler.MarkPaid(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), mockUC.cmd.PaymentID)
	assert.Equal(t, "CHQ-0042", mockUC.cmd.TransactionID)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/payments/5/paid", nil)
	testutil.SetURLParam(c, "id", "5")
	handler.MarkPaid(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mockUC.cmd.TransactionID)
}

func TestPaymentHandler_FailAndRefundRequireReason(t *testing.T) {
	failed := &mockMarkFailedUC{}
	refund := &mockRefundUC{}
	handler := NewPaymentHandler(nil, nil, failed, refund, nil, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/payments/5/failed", map[string]string{"reason": "cheque bounced"})
	testutil.SetURLParam(c, "id", "5")
	handler.MarkFailed(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cheque bounced", failed.cmd.Reason)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/payments/5/refund", map[string]string{})
	testutil.SetURLParam(c, "id", "5")
	handler.Refund(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, refund.cmd.PaymentID)

	c, w = testutil.NewTestContext(http.MethodPost, "/api/payments/5/refund", map[string]string{"reason": "duplicate transfer"})
	testutil.SetURLParam(c, "id", "5")
	handler.Refund(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), refund.cmd.PaymentID)
}

func TestPaymentHandler_GetPayment_NotFound(t *testing.T) {
	handler := NewPaymentHandler(nil, nil, nil, nil, &mockGetPaymentUC{err: errors.NewNotFoundError("payment not found")}, nil, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/payments/77", nil)
	testutil.SetURLParam(c, "id", "77")

	handler.GetPayment(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentHandler_ListPayments_Filters(t *testing.T) {
	mockUC := &mockListPaymentsUC{}
	handler := NewPaymentHandler(nil, nil, nil, nil, nil, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/payments", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleUser)
	testutil.SetQueryParams(c, map[string]string{
		"subscription_id": "31",
		"status":          "paid",
		"payment_method":  "bank_transfer",
	})

	handler.ListPayments(c)

	assert.Equal(t, http.StatusOK, w.Code)
	q := mockUC.query
	require.NotNil(t, q.SubscriptionID)
	assert.Equal(t, uint(31), *q.SubscriptionID)
	assert.Nil(t, q.ClientID)
	require.NotNil(t, q.Status)
	assert.Equal(t, vo.PaymentStatusPaid, *q.Status)
	require.NotNil(t, q.Method)
	assert.Equal(t, payment.MethodBankTransfer, *q.Method)

	c, w = testutil.NewTestContext(http.MethodGet, "/api/payments", nil)
	testutil.SetQueryParams(c, map[string]string{"client_id": "x"})
	handler.ListPayments(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentHandler_ListPayments_RejectsBadQuery(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		detail string
	}{
		{"zero subscription id", map[string]string{"subscription_id": "0"}, "subscription_id must be at least 1"},
		{"unknown method", map[string]string{"payment_method": "barter"}, "payment_method must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockListPaymentsUC{}
			handler := NewPaymentHandler(nil, nil, nil, nil, nil, mockUC, testutil.NewMockLogger())

			c, w := testutil.NewTestContext(http.MethodGet, "/api/payments", nil)
			testutil.SetAuthContext(c, 7, authorization.RoleUser)
			testutil.SetQueryParams(c, tt.params)
			handler.ListPayments(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.detail)
			assert.Zero(t, mockUC.query.Scope.UserID, "use case must not run")
		})
	}
}
