package payment

import (
	"context"

	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByID(ctx context.Context, id uint) (*Payment, error)
	Update(ctx context.Context, payment *Payment) error
	List(ctx context.Context, filter Filter) ([]*Payment, int64, error)
}

type Filter struct {
	query.BaseFilter
	// OwnerID restricts results to payments of clients created by this user.
	OwnerID        *uint
	SubscriptionID *uint
	ClientID       *uint
	Status         *vo.PaymentStatus
	Method         *Method
}
