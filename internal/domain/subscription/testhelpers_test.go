package subscription

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
)

// quarterlyPlan is the reference plan: 199 per user, quarterly, 10..50 users.
func quarterlyPlan(t *testing.T) *Plan {
	t.Helper()
	p, err := NewPlan(NewPlanParams{
		Name:         "HRMS Standard",
		PricePerUser: decimal.NewFromInt(199),
		BillingCycle: vo.BillingCycleQuarterly,
		MinUsers:     10,
		MaxUsers:     50,
		ModuleAccess: map[string]bool{"payroll": true, "attendance": true},
	})
	require.NoError(t, err)
	require.NoError(t, p.SetID(1))
	return p
}

func date(y int, m time.Month, d int) *time.Time {
	v := biztime.Date(y, m, d)
	return &v
}

func newTestSubscription(t *testing.T, plan *Plan, start *time.Time) *Subscription {
	t.Helper()
	s, err := NewSubscription(NewSubscriptionParams{
		ClientID:  7,
		Plan:      plan,
		NumUsers:  20,
		StartDate: start,
		CreatedBy: 3,
	})
	require.NoError(t, err)
	require.NoError(t, s.SetID(100))
	return s
}
