package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/infrastructure/database/testutil"
	"github.com/orris-inc/backoffice/internal/infrastructure/repository"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/db"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

var (
	adminScope = authorization.NewScope(1, authorization.RoleAdmin)
	ownerScope = authorization.NewScope(7, authorization.RoleUser)
	otherScope = authorization.NewScope(8, authorization.RoleUser)
)

type testEnv struct {
	subs    subscription.SubscriptionRepository
	plans   subscription.PlanRepository
	history *repository.HistoryRepository
	clients *repository.ClientRepository
	loader  *common.SubscriptionLoader
	txMgr   *db.TransactionManager
	log     logger.Interface
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := testutil.NewSQLiteDB(t)
	log := logger.NewNop()
	subs := repository.NewSubscriptionRepository(gdb, log)
	clients := repository.NewClientRepository(gdb, log)
	return &testEnv{
		subs:    subs,
		plans:   repository.NewPlanRepository(gdb, log),
		history: repository.NewHistoryRepository(gdb),
		clients: clients,
		loader:  common.NewSubscriptionLoader(subs, clients),
		txMgr:   db.NewTransactionManager(gdb),
		log:     log,
	}
}

func (e *testEnv) createUC() *CreateSubscriptionUseCase {
	return NewCreateSubscriptionUseCase(e.subs, e.plans, e.history, e.loader, e.txMgr, e.log)
}

func (e *testEnv) updateUC() *UpdateSubscriptionUseCase {
	return NewUpdateSubscriptionUseCase(e.subs, e.plans, e.history, e.loader, e.txMgr, e.log)
}

func (e *testEnv) cancelUC() *CancelSubscriptionUseCase {
	return NewCancelSubscriptionUseCase(e.subs, e.plans, e.history, e.loader, e.txMgr, e.log)
}

func (e *testEnv) renewUC() *RenewSubscriptionUseCase {
	return NewRenewSubscriptionUseCase(e.subs, e.plans, e.history, e.loader, e.txMgr, e.log)
}

// growthPlan is the quarterly plan used by the pricing example: 199 per user,
// 10 to 50 users.
func (e *testEnv) growthPlan(t *testing.T) *subscription.Plan {
	return e.plan(t, "Growth", 199, vo.BillingCycleQuarterly)
}

func (e *testEnv) plan(t *testing.T, name string, price int64, cycle vo.BillingCycle) *subscription.Plan {
	t.Helper()
	p, err := subscription.NewPlan(subscription.NewPlanParams{
		Name:         name,
		PricePerUser: decimal.NewFromInt(price),
		BillingCycle: cycle,
		MinUsers:     10,
		MaxUsers:     50,
		ModuleAccess: map[string]bool{"payroll": true, "crm": true},
	})
	require.NoError(t, err)
	require.NoError(t, e.plans.Create(context.Background(), p))
	return p
}

func (e *testEnv) client(t *testing.T, email string, owner uint) *client.Client {
	t.Helper()
	c, err := client.NewClient(client.Profile{Name: "Client " + email, Email: email}, owner)
	require.NoError(t, err)
	require.NoError(t, e.clients.Create(context.Background(), c))
	return c
}

func (e *testEnv) subscribe(t *testing.T, c *client.Client, p *subscription.Plan, start time.Time) *dto.SubscriptionDTO {
	t.Helper()
	out, err := e.createUC().Execute(context.Background(), CreateSubscriptionCommand{
		Scope:     ownerScope,
		ClientID:  c.ID(),
		PlanID:    p.ID(),
		NumUsers:  20,
		StartDate: &start,
	})
	require.NoError(t, err)
	return out
}

func (e *testEnv) events(t *testing.T, subscriptionID uint) []subscription.EventType {
	t.Helper()
	items, err := e.history.ListBySubscription(context.Background(), subscriptionID)
	require.NoError(t, err)
	out := make([]subscription.EventType, 0, len(items))
	for _, h := range items {
		out = append(out, h.EventType())
	}
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return biztime.Date(y, m, d)
}

func ptr[T any](v T) *T {
	return &v
}

type recordingNotifier struct {
	changes chan common.SubscriptionChange
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{changes: make(chan common.SubscriptionChange, 8)}
}

func (n *recordingNotifier) NotifySubscriptionChange(_ context.Context, change common.SubscriptionChange) {
	n.changes <- change
}

func (n *recordingNotifier) next(t *testing.T) common.SubscriptionChange {
	t.Helper()
	select {
	case c := <-n.changes:
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
	return common.SubscriptionChange{}
}
