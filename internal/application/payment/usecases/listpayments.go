package usecases

import (
	"context"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/payment/dto"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/logger"
	"github.com/orris-inc/backoffice/internal/shared/query"
)

type GetPaymentUseCase struct {
	paymentRepo payment.Repository
	loader      *common.SubscriptionLoader
	logger      logger.Interface
}

func NewGetPaymentUseCase(paymentRepo payment.Repository, loader *common.SubscriptionLoader, logger logger.Interface) *GetPaymentUseCase {
	return &GetPaymentUseCase{paymentRepo: paymentRepo, loader: loader, logger: logger}
}

func (uc *GetPaymentUseCase) Execute(ctx context.Context, scope authorization.Scope, paymentID uint) (*dto.PaymentDTO, error) {
	pc, err := loadPayment(ctx, uc.paymentRepo, uc.loader, scope, paymentID, false)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to get payment", err, "payment_id", paymentID)
	}
	return dto.ToPaymentDTO(pc.payment), nil
}

type ListPaymentsQuery struct {
	Scope          authorization.Scope
	SubscriptionID *uint
	ClientID       *uint
	Status         *vo.PaymentStatus
	Method         *payment.Method
	Page           int
	PageSize       int
	SortBy         string
	SortOrder      string
}

type ListPaymentsResult struct {
	Payments []*dto.PaymentDTO `json:"payments"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type ListPaymentsUseCase struct {
	paymentRepo payment.Repository
	logger      logger.Interface
}

func NewListPaymentsUseCase(paymentRepo payment.Repository, logger logger.Interface) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{paymentRepo: paymentRepo, logger: logger}
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, q ListPaymentsQuery) (*ListPaymentsResult, error) {
	filter := payment.Filter{
		BaseFilter:     query.NewBaseFilter(query.WithPage(q.Page, q.PageSize), query.WithSort(q.SortBy, q.SortOrder)),
		OwnerID:        q.Scope.OwnerID(),
		SubscriptionID: q.SubscriptionID,
		ClientID:       q.ClientID,
		Status:         q.Status,
		Method:         q.Method,
	}

	items, total, err := uc.paymentRepo.List(ctx, filter)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to list payments", err)
	}

	return &ListPaymentsResult{
		Payments: dto.ToPaymentDTOs(items),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}
