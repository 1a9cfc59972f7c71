package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/models"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/constants"
	"github.com/orris-inc/backoffice/internal/shared/db"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// subscriptionSortColumns maps request sort fields to whitelisted ORDER BY columns.
var subscriptionSortColumns = map[string]string{
	"id":             "subscriptions.id",
	"start_date":     "subscriptions.start_date",
	"end_date":       "subscriptions.end_date",
	"final_amount":   "subscriptions.final_amount",
	"num_users":      "subscriptions.num_users",
	"status":         "subscriptions.subscription_status",
	"payment_status": "subscriptions.payment_status",
	"created_at":     "subscriptions.created_at",
	"updated_at":     "subscriptions.updated_at",
}

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, entity *subscription.Subscription) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "client_id", model.ClientID, "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created", "id", model.ID, "client_id", model.ClientID, "plan_id", model.PlanID)
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Update persists every mutable column. The write only lands when the stored
// version is older than the aggregate's, so a concurrent writer that got
// there first turns this into ErrConcurrentModification.
func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, entity *subscription.Subscription) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("id = ? AND version < ?", model.ID, model.Version).
		Updates(map[string]interface{}{
			"plan_id":             model.PlanID,
			"start_date":          model.StartDate,
			"end_date":            model.EndDate,
			"billing_cycle":       model.BillingCycle,
			"billing_months":      model.BillingMonths,
			"num_users":           model.NumUsers,
			"amount_paid":         model.AmountPaid,
			"discount":            model.Discount,
			"final_amount":        model.FinalAmount,
			"payment_status":      model.PaymentStatus,
			"subscription_status": model.SubscriptionStatus,
			"auto_renew":          model.AutoRenew,
			"payment_received_at": model.PaymentReceivedAt,
			"next_payment_due":    model.NextPaymentDue,
			"cancelled_at":        model.CancelledAt,
			"cancel_reason":       model.CancelReason,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrConcurrentModification
	}

	r.logger.Infow("subscription updated", "id", model.ID, "version", model.Version)
	return nil
}

func (r *SubscriptionRepositoryImpl) List(ctx context.Context, filter subscription.SubscriptionFilter) ([]*subscription.Subscription, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{})

	if filter.OwnerID != nil {
		query = query.
			Joins("JOIN clients ON clients.id = subscriptions.client_id").
			Scopes(authorization.ByOwner("clients.created_by", filter.OwnerID))
	}
	if filter.ClientID != nil {
		query = query.Where("subscriptions.client_id = ?", *filter.ClientID)
	}
	if filter.PlanID != nil {
		query = query.Where("subscriptions.plan_id = ?", *filter.PlanID)
	}
	if filter.Status != nil {
		query = query.Where("subscriptions.subscription_status = ?", filter.Status.String())
	}
	if filter.PaymentStatus != nil {
		query = query.Where("subscriptions.payment_status = ?", filter.PaymentStatus.String())
	}
	if filter.EndingBefore != nil {
		query = query.Where("subscriptions.end_date < ?", filter.EndingBefore.UTC().Truncate(24*time.Hour))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	var rows []*models.SubscriptionModel
	if err := query.
		Select("subscriptions.*").
		Order(filter.OrderClause(subscriptionSortColumns, "subscriptions.id DESC")).
		Scopes(db.Paginate(filter.Offset(), filter.Limit())).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	entities, err := r.mapper.ToEntities(rows)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// FindOverlapping runs the inclusive intersection test s1 <= e2 AND s2 <= e1
// against the client's active subscriptions.
func (r *SubscriptionRepositoryImpl) FindOverlapping(ctx context.Context, clientID uint, rng subscription.DateRange, excludeID uint) (*subscription.Subscription, error) {
	query := db.GetTxFromContext(ctx, r.db).
		Where("client_id = ? AND subscription_status = ?", clientID, vo.StatusActive.String()).
		Where("start_date <= ? AND end_date >= ?", rng.End, rng.Start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var model models.SubscriptionModel
	if err := query.Order("start_date ASC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to check overlapping subscriptions", "client_id", clientID, "error", err)
		return nil, fmt.Errorf("failed to check overlapping subscriptions: %w", err)
	}
	return r.mapper.ToEntity(&model)
}

func (r *SubscriptionRepositoryImpl) CountActiveByClient(ctx context.Context, clientID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("client_id = ? AND subscription_status IN ?", clientID,
			[]string{vo.StatusActive.String(), vo.StatusTrial.String()}).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active subscriptions: %w", err)
	}
	return count, nil
}

func (r *SubscriptionRepositoryImpl) CountByPlan(ctx context.Context, planID uint) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).
		Model(&models.SubscriptionModel{}).
		Where("plan_id = ?", planID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count subscriptions by plan: %w", err)
	}
	return count, nil
}

// expiredHistorySQL snapshots every row the sweep is about to expire. It
// shares the UPDATE's predicate and runs first in the same transaction.
var expiredHistorySQL = fmt.Sprintf(`INSERT INTO %s
	(subscription_id, event_type, previous_end_date, subscription_status, payment_status, final_amount, reason, actor_id, created_at)
SELECT id, ?, end_date, ?, payment_status, final_amount, ?, 0, ?
FROM %s
WHERE subscription_status = ? AND end_date < ? AND deleted_at IS NULL`,
	constants.TableSubscriptionHistory, constants.TableSubscriptions)

// ExpireEnded moves ended subscriptions to expired with one set-based
// UPDATE and writes one expired history row per subscription. asOf is a
// calendar date (UTC midnight); a second run for the same day affects zero
// rows.
func (r *SubscriptionRepositoryImpl) ExpireEnded(ctx context.Context, asOf time.Time) (int64, error) {
	day := asOf.UTC().Truncate(24 * time.Hour)
	now := biztime.NowUTC()

	var expired int64
	err := db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(expiredHistorySQL,
			string(subscription.EventExpired), vo.StatusExpired.String(), "end date passed", now,
			vo.StatusActive.String(), day,
		).Error; err != nil {
			return fmt.Errorf("failed to record expiry history: %w", err)
		}

		result := tx.Model(&models.SubscriptionModel{}).
			Where("subscription_status = ? AND end_date < ?", vo.StatusActive.String(), day).
			Updates(map[string]interface{}{
				"subscription_status": vo.StatusExpired.String(),
				"updated_at":          now,
				"version":             gorm.Expr("version + 1"),
			})
		if result.Error != nil {
			return result.Error
		}
		expired = result.RowsAffected
		return nil
	})
	if err != nil {
		r.logger.Errorw("failed to expire subscriptions", "as_of", biztime.FormatDate(day), "error", err)
		return 0, fmt.Errorf("failed to expire subscriptions: %w", err)
	}
	return expired, nil
}

type statusCountRow struct {
	Status string
	Count  int64
}

type revenueRow struct {
	Billed    decimal.Decimal
	Collected decimal.Decimal
}

func (r *SubscriptionRepositoryImpl) scoped(ctx context.Context, ownerID *uint) *gorm.DB {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{})
	if ownerID != nil {
		query = query.
			Joins("JOIN clients ON clients.id = subscriptions.client_id").
			Scopes(authorization.ByOwner("clients.created_by", ownerID))
	}
	return query
}

// GetStats runs its three aggregates concurrently. Inside a transaction
// they share one connection and run one at a time.
func (r *SubscriptionRepositoryImpl) GetStats(ctx context.Context, ownerID *uint) (*subscription.Stats, error) {
	stats := subscription.NewStats()

	var (
		byStatus  []statusCountRow
		byPayment []statusCountRow
		revenue   revenueRow
	)

	g, gctx := errgroup.WithContext(ctx)
	if db.InTransaction(ctx) {
		g.SetLimit(1)
	}

	g.Go(func() error {
		if err := r.scoped(gctx, ownerID).
			Select("subscriptions.subscription_status AS status, COUNT(*) AS count").
			Group("subscriptions.subscription_status").
			Scan(&byStatus).Error; err != nil {
			return fmt.Errorf("failed to aggregate subscription statuses: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.scoped(gctx, ownerID).
			Select("subscriptions.payment_status AS status, COUNT(*) AS count").
			Group("subscriptions.payment_status").
			Scan(&byPayment).Error; err != nil {
			return fmt.Errorf("failed to aggregate payment statuses: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := r.scoped(gctx, ownerID).
			Select(
				"COALESCE(SUM(CASE WHEN subscriptions.subscription_status <> ? THEN subscriptions.final_amount ELSE 0 END), 0) AS billed, "+
					"COALESCE(SUM(CASE WHEN subscriptions.payment_status = ? THEN subscriptions.final_amount ELSE 0 END), 0) AS collected",
				vo.StatusCancelled.String(), vo.PaymentStatusPaid.String(),
			).
			Scan(&revenue).Error; err != nil {
			return fmt.Errorf("failed to aggregate revenue: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		r.logger.Errorw("failed to get subscription stats", "error", err)
		return nil, err
	}

	for _, row := range byStatus {
		stats.ByStatus[vo.SubscriptionStatus(row.Status)] = row.Count
		stats.Total += row.Count
	}
	for _, row := range byPayment {
		stats.ByPayment[vo.PaymentStatus(row.Status)] = row.Count
	}
	stats.BilledRevenue = revenue.Billed.Round(2)
	stats.CollectedTotal = revenue.Collected.Round(2)

	return stats, nil
}
