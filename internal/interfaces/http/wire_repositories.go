package http

import (
	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/infrastructure/repository"
	"github.com/orris-inc/backoffice/internal/shared/db"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.SubscriptionRepository
	historyRepo      subscription.HistoryRepository
	clientRepo       client.Repository
	paymentRepo      payment.Repository

	txMgr  *db.TransactionManager
	loader *common.SubscriptionLoader
}

func (c *Container) initRepositories() {
	r := &repositories{
		planRepo:         repository.NewPlanRepository(c.db, c.log),
		subscriptionRepo: repository.NewSubscriptionRepository(c.db, c.log),
		historyRepo:      repository.NewHistoryRepository(c.db),
		clientRepo:       repository.NewClientRepository(c.db, c.log),
		paymentRepo:      repository.NewPaymentRepository(c.db),
		txMgr:            db.NewTransactionManager(c.db),
	}
	r.loader = common.NewSubscriptionLoader(r.subscriptionRepo, r.clientRepo)
	c.repos = r
}
