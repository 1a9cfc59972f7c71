package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/infrastructure/database/testutil"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	return testutil.NewSQLiteDB(t)
}

type fixture struct {
	db      *gorm.DB
	plans   subscription.PlanRepository
	clients *ClientRepository
	subs    subscription.SubscriptionRepository
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	return &fixture{
		db:      db,
		plans:   NewPlanRepository(db, logger.NewNop()),
		clients: NewClientRepository(db, logger.NewNop()),
		subs:    NewSubscriptionRepository(db, logger.NewNop()),
	}
}

func (f *fixture) plan(t *testing.T, name string) *subscription.Plan {
	t.Helper()
	p, err := subscription.NewPlan(subscription.NewPlanParams{
		Name:         name,
		PricePerUser: decimal.NewFromInt(199),
		BillingCycle: vo.BillingCycleQuarterly,
		MinUsers:     10,
		MaxUsers:     50,
		ModuleAccess: map[string]bool{"payroll": true},
	})
	require.NoError(t, err)
	require.NoError(t, f.plans.Create(context.Background(), p))
	return p
}

func (f *fixture) client(t *testing.T, email string, owner uint) *client.Client {
	t.Helper()
	c, err := client.NewClient(client.Profile{Name: "Client " + email, Email: email}, owner)
	require.NoError(t, err)
	require.NoError(t, f.clients.Create(context.Background(), c))
	return c
}

func (f *fixture) subscription(t *testing.T, c *client.Client, p *subscription.Plan, start, end time.Time) *subscription.Subscription {
	t.Helper()
	s, err := subscription.NewSubscription(subscription.NewSubscriptionParams{
		ClientID:  c.ID(),
		Plan:      p,
		NumUsers:  20,
		StartDate: &start,
		EndDate:   &end,
		CreatedBy: c.CreatedBy(),
	})
	require.NoError(t, err)
	require.NoError(t, f.subs.Create(context.Background(), s))
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return biztime.Date(y, m, d)
}
