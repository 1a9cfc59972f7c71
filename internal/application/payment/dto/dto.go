package dto

import (
	"time"

	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/shared/mapper"
)

type PaymentDTO struct {
	ID             uint       `json:"id"`
	SubscriptionID uint       `json:"subscription_id"`
	ClientID       uint       `json:"client_id"`
	Amount         string     `json:"amount"`
	Currency       string     `json:"currency"`
	Method         string     `json:"payment_method"`
	Status         string     `json:"status"`
	ReceiptNumber  string     `json:"receipt_number"`
	TransactionID  *string    `json:"transaction_id,omitempty"`
	FailureReason  *string    `json:"failure_reason,omitempty"`
	RefundReason   *string    `json:"refund_reason,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	RecordedBy     uint       `json:"recorded_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ToPaymentDTO(p *payment.Payment) *PaymentDTO {
	if p == nil {
		return nil
	}
	return &PaymentDTO{
		ID:             p.ID(),
		SubscriptionID: p.SubscriptionID(),
		ClientID:       p.ClientID(),
		Amount:         p.Amount().StringFixed(2),
		Currency:       p.Currency(),
		Method:         p.Method().String(),
		Status:         p.Status().String(),
		ReceiptNumber:  p.ReceiptNumber(),
		TransactionID:  p.TransactionID(),
		FailureReason:  p.FailureReason(),
		RefundReason:   p.RefundReason(),
		Notes:          p.Notes(),
		PaidAt:         p.PaidAt(),
		RecordedBy:     p.RecordedBy(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func ToPaymentDTOs(items []*payment.Payment) []*PaymentDTO {
	if items == nil {
		return []*PaymentDTO{}
	}
	return mapper.MapSlice(items, ToPaymentDTO)
}
