package mappers

import (
	"fmt"

	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/models"
	"github.com/orris-inc/backoffice/internal/shared/mapper"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) *models.SubscriptionModel
	ToEntities(items []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type SubscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &SubscriptionMapperImpl{}
}

func (m *SubscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	cycle, err := vo.ParseBillingCycle(model.BillingCycle)
	if err != nil {
		return nil, fmt.Errorf("subscription %d: %w", model.ID, err)
	}

	var cancelReason string
	if model.CancelReason != nil {
		cancelReason = *model.CancelReason
	}

	entity, err := subscription.ReconstructSubscription(
		model.ID,
		model.ClientID,
		model.PlanID,
		model.StartDate,
		model.EndDate,
		cycle,
		model.BillingMonths,
		model.NumUsers,
		model.AmountPaid,
		model.Discount,
		model.FinalAmount,
		vo.PaymentStatus(model.PaymentStatus),
		vo.SubscriptionStatus(model.SubscriptionStatus),
		model.AutoRenew,
		model.PaymentReceivedAt,
		model.NextPaymentDue,
		model.CancelledAt,
		cancelReason,
		model.CreatedBy,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription entity: %w", err)
	}
	return entity, nil
}

func (m *SubscriptionMapperImpl) ToModel(entity *subscription.Subscription) *models.SubscriptionModel {
	if entity == nil {
		return nil
	}

	var cancelReason *string
	if r := entity.CancelReason(); r != "" {
		cancelReason = &r
	}

	return &models.SubscriptionModel{
		ID:                 entity.ID(),
		ClientID:           entity.ClientID(),
		PlanID:             entity.PlanID(),
		StartDate:          entity.StartDate(),
		EndDate:            entity.EndDate(),
		BillingCycle:       entity.BillingCycle().String(),
		BillingMonths:      entity.BillingMonths(),
		NumUsers:           entity.NumUsers(),
		AmountPaid:         entity.AmountPaid(),
		Discount:           entity.Discount(),
		FinalAmount:        entity.FinalAmount(),
		PaymentStatus:      entity.PaymentStatus().String(),
		SubscriptionStatus: entity.Status().String(),
		AutoRenew:          entity.AutoRenew(),
		PaymentReceivedAt:  entity.PaymentReceivedAt(),
		NextPaymentDue:     entity.NextPaymentDue(),
		CancelledAt:        entity.CancelledAt(),
		CancelReason:       cancelReason,
		CreatedBy:          entity.CreatedBy(),
		Version:            entity.Version(),
		CreatedAt:          entity.CreatedAt(),
		UpdatedAt:          entity.UpdatedAt(),
	}
}

func (m *SubscriptionMapperImpl) ToEntities(items []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	return mapper.MapPtrsWithID(items, m.ToEntity, func(model *models.SubscriptionModel) uint { return model.ID })
}
