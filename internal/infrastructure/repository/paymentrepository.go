package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/models"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/db"
)

var paymentSortColumns = map[string]string{
	"id":         "payments.id",
	"amount":     "payments.amount",
	"status":     "payments.status",
	"paid_at":    "payments.paid_at",
	"created_at": "payments.created_at",
}

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *PaymentRepository) Update(ctx context.Context, p *payment.Payment) error {
	model := mappers.PaymentToModel(p)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Updates(map[string]interface{}{
			"status":         model.Status,
			"transaction_id": model.TransactionID,
			"failure_reason": model.FailureReason,
			"refund_reason":  model.RefundReason,
			"paid_at":        model.PaidAt,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update payment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: payment %d", payment.ErrConcurrentModification, model.ID)
	}
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*payment.Payment, error) {
	var model models.PaymentModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return mappers.PaymentToEntity(&model), nil
}

func (r *PaymentRepository) List(ctx context.Context, filter payment.Filter) ([]*payment.Payment, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.PaymentModel{})
	if filter.OwnerID != nil {
		query = query.
			Joins("JOIN clients ON clients.id = payments.client_id").
			Scopes(authorization.ByOwner("clients.created_by", filter.OwnerID))
	}
	if filter.SubscriptionID != nil {
		query = query.Where("payments.subscription_id = ?", *filter.SubscriptionID)
	}
	if filter.ClientID != nil {
		query = query.Where("payments.client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("payments.status = ?", filter.Status.String())
	}
	if filter.Method != nil {
		query = query.Where("payments.method = ?", filter.Method.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count payments: %w", err)
	}

	var rows []*models.PaymentModel
	if err := query.
		Select("payments.*").
		Order(filter.OrderClause(paymentSortColumns, "payments.id DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}
	return mappers.PaymentsToEntities(rows), total, nil
}
