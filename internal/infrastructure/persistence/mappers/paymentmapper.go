package mappers

import (
	"github.com/orris-inc/backoffice/internal/domain/payment"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/models"
	"github.com/orris-inc/backoffice/internal/shared/mapper"
)

func PaymentToModel(p *payment.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:             p.ID(),
		SubscriptionID: p.SubscriptionID(),
		ClientID:       p.ClientID(),
		Amount:         p.Amount(),
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
		Version:        p.Version(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func PaymentToEntity(m *models.PaymentModel) *payment.Payment {
	if m == nil {
		return nil
	}
	return payment.ReconstructPayment(
		m.ID,
		m.SubscriptionID,
		m.ClientID,
		m.Amount,
		m.Currency,
		payment.Method(m.Method),
		vo.PaymentStatus(m.Status),
		m.ReceiptNumber,
		m.TransactionID,
		m.FailureReason,
		m.RefundReason,
		m.Notes,
		m.PaidAt,
		m.RecordedBy,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func PaymentsToEntities(items []*models.PaymentModel) []*payment.Payment {
	return mapper.MapSlice(items, PaymentToEntity)
}
