package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/id"
)

// Payment is a single money movement recorded against a subscription.
type Payment struct {
	id             uint
	subscriptionID uint
	clientID       uint
	amount         decimal.Decimal
	currency       string
	method         Method
	status         vo.PaymentStatus
	receiptNumber  string
	transactionID  *string
	failureReason  *string
	refundReason   *string
	notes          string
	paidAt         *time.Time
	recordedBy     uint
	version        int
	createdAt      time.Time
	updatedAt      time.Time
}

type NewPaymentParams struct {
	SubscriptionID uint
	ClientID       uint
	Amount         decimal.Decimal
	Currency       string
	Method         Method
	TransactionID  string
	Notes          string
	RecordedBy     uint
}

func NewPayment(p NewPaymentParams) (*Payment, error) {
	if p.SubscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if !p.Amount.IsPositive() || !p.Amount.Equal(p.Amount.Round(2)) {
		return nil, ErrInvalidAmount
	}
	if !p.Method.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMethod, p.Method)
	}

	now := biztime.NowUTC()
	receipt, err := id.NewReceiptNumber(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate receipt number: %w", err)
	}
	pay := &Payment{
		subscriptionID: p.SubscriptionID,
		clientID:       p.ClientID,
		amount:         p.Amount,
		currency:       strings.ToUpper(p.Currency),
		method:         p.Method,
		status:         vo.PaymentStatusPending,
		receiptNumber:  receipt,
		notes:          p.Notes,
		recordedBy:     p.RecordedBy,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}
	if ref := strings.TrimSpace(p.TransactionID); ref != "" {
		pay.transactionID = &ref
	}
	return pay, nil
}

func ReconstructPayment(
	id, subscriptionID, clientID uint,
	amount decimal.Decimal,
	currency string,
	method Method,
	status vo.PaymentStatus,
	receiptNumber string,
	transactionID, failureReason, refundReason *string,
	notes string,
	paidAt *time.Time,
	recordedBy uint,
	version int,
	createdAt, updatedAt time.Time,
) *Payment {
	return &Payment{
		id:             id,
		subscriptionID: subscriptionID,
		clientID:       clientID,
		amount:         amount,
		currency:       currency,
		method:         method,
		status:         status,
		receiptNumber:  receiptNumber,
		transactionID:  transactionID,
		failureReason:  failureReason,
		refundReason:   refundReason,
		notes:          notes,
		paidAt:         paidAt,
		recordedBy:     recordedBy,
		version:        version,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}
}

// MarkAsPaid moves a pending or failed payment to paid. Calling it on an
// already paid payment is a no-op and returns changed=false.
func (p *Payment) MarkAsPaid(transactionID string) (changed bool, err error) {
	switch p.status {
	case vo.PaymentStatusPaid:
		return false, nil
	case vo.PaymentStatusPending, vo.PaymentStatusFailed:
	default:
		return false, fmt.Errorf("%w: %s -> paid", ErrInvalidTransition, p.status)
	}

	now := biztime.NowUTC()
	p.status = vo.PaymentStatusPaid
	p.paidAt = &now
	p.failureReason = nil
	if ref := strings.TrimSpace(transactionID); ref != "" {
		p.transactionID = &ref
	}
	p.touch(now)
	return true, nil
}

func (p *Payment) MarkAsFailed(reason string) error {
	if p.status != vo.PaymentStatusPending {
		return fmt.Errorf("%w: %s -> failed", ErrInvalidTransition, p.status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	p.status = vo.PaymentStatusFailed
	p.failureReason = &reason
	p.touch(biztime.NowUTC())
	return nil
}

func (p *Payment) Refund(reason string) error {
	if p.status != vo.PaymentStatusPaid {
		return fmt.Errorf("%w: %s -> refunded", ErrInvalidTransition, p.status)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrReasonRequired
	}
	p.status = vo.PaymentStatusRefunded
	p.refundReason = &reason
	p.touch(biztime.NowUTC())
	return nil
}

func (p *Payment) touch(now time.Time) {
	p.updatedAt = now
	p.version++
}

func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID is already set")
	}
	p.id = id
	return nil
}

func (p *Payment) ID() uint                 { return p.id }
func (p *Payment) SubscriptionID() uint     { return p.subscriptionID }
func (p *Payment) ClientID() uint           { return p.clientID }
func (p *Payment) Amount() decimal.Decimal  { return p.amount }
func (p *Payment) Currency() string         { return p.currency }
func (p *Payment) Method() Method           { return p.method }
func (p *Payment) Status() vo.PaymentStatus { return p.status }
func (p *Payment) ReceiptNumber() string    { return p.receiptNumber }
func (p *Payment) TransactionID() *string   { return p.transactionID }
func (p *Payment) FailureReason() *string   { return p.failureReason }
func (p *Payment) RefundReason() *string    { return p.refundReason }
func (p *Payment) Notes() string            { return p.notes }
func (p *Payment) PaidAt() *time.Time       { return p.paidAt }
func (p *Payment) RecordedBy() uint         { return p.recordedBy }
func (p *Payment) Version() int             { return p.version }
func (p *Payment) CreatedAt() time.Time     { return p.createdAt }
func (p *Payment) UpdatedAt() time.Time     { return p.updatedAt }
