package subscription

import (
	"context"
	"time"

	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/query"
)

// SubscriptionRepository persists subscriptions. Lookups return (nil, nil)
// when the row does not exist. All methods honour a transaction carried in ctx.
type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	// Update writes the aggregate guarded by its version; a stale version
	// yields ErrConcurrentModification.
	Update(ctx context.Context, subscription *Subscription) error
	List(ctx context.Context, filter SubscriptionFilter) ([]*Subscription, int64, error)

	// FindOverlapping returns an active subscription of clientID whose range
	// intersects r, ignoring excludeID (0 for none), or nil.
	FindOverlapping(ctx context.Context, clientID uint, r DateRange, excludeID uint) (*Subscription, error)
	CountActiveByClient(ctx context.Context, clientID uint) (int64, error)
	CountByPlan(ctx context.Context, planID uint) (int64, error)

	// ExpireEnded moves every active subscription whose end date is before
	// asOf to expired in a single statement and returns the affected count.
	ExpireEnded(ctx context.Context, asOf time.Time) (int64, error)
	GetStats(ctx context.Context, ownerID *uint) (*Stats, error)
}

// SubscriptionFilter narrows list queries. OwnerID restricts results to
// clients created by that user and is set by the access scope.
type SubscriptionFilter struct {
	query.BaseFilter
	OwnerID       *uint
	ClientID      *uint
	PlanID        *uint
	Status        *vo.SubscriptionStatus
	PaymentStatus *vo.PaymentStatus
	EndingBefore  *time.Time
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	Update(ctx context.Context, plan *Plan) error
	List(ctx context.Context, filter PlanFilter) ([]*Plan, int64, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
}

type PlanFilter struct {
	query.BaseFilter
	IsActive     *bool
	BillingCycle *vo.BillingCycle
}

type HistoryRepository interface {
	Create(ctx context.Context, history *History) error
	ListBySubscription(ctx context.Context, subscriptionID uint) ([]*History, error)
}
