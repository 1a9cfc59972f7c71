package usecases

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	apperrors "github.com/orris-inc/backoffice/internal/shared/errors"
)

func TestCreatePlan(t *testing.T) {
	env := newTestEnv(t)
	uc := NewCreatePlanUseCase(env.plans, env.log)
	ctx := context.Background()

	out, err := uc.Execute(ctx, CreatePlanCommand{
		Name:         "Enterprise",
		PricePerUser: decimal.RequireFromString("149.50"),
		BillingCycle: vo.BillingCycleYearly,
		MinUsers:     50,
		MaxUsers:     500,
		ModuleAccess: map[string]bool{"payroll": true, "recruitment": false},
	})
	require.NoError(t, err)
	assert.Equal(t, "149.50", out.PricePerUser)
	assert.Equal(t, 12, out.BillingMonths)
	assert.True(t, out.IsActive)
	assert.True(t, out.ModuleAccess["payroll"])

	_, err = uc.Execute(ctx, CreatePlanCommand{
		Name:         "Enterprise",
		PricePerUser: decimal.NewFromInt(100),
		BillingCycle: vo.BillingCycleMonthly,
		MinUsers:     1,
		MaxUsers:     10,
	})
	assert.ErrorIs(t, err, subscription.ErrPlanNameExists)
	assert.True(t, apperrors.IsConflictError(err))

	_, err = uc.Execute(ctx, CreatePlanCommand{
		Name:          "Broken",
		PricePerUser:  decimal.NewFromInt(100),
		BillingCycle:  vo.BillingCycleQuarterly,
		BillingMonths: 4,
		MinUsers:      1,
		MaxUsers:      10,
	})
	assert.ErrorIs(t, err, subscription.ErrInvalidPlan)
	assert.True(t, apperrors.IsValidationError(err))
}

func TestUpdatePlan_AndList(t *testing.T) {
	env := newTestEnv(t)
	growth := env.growthPlan(t)
	env.plan(t, "Starter", 99, vo.BillingCycleMonthly)
	ctx := context.Background()

	_, err := NewUpdatePlanUseCase(env.plans, env.log).Execute(ctx, UpdatePlanCommand{
		PlanID: growth.ID(),
		Name:   ptr("Starter"),
	})
	assert.ErrorIs(t, err, subscription.ErrPlanNameExists)

	out, err := NewUpdatePlanUseCase(env.plans, env.log).Execute(ctx, UpdatePlanCommand{
		PlanID:   growth.ID(),
		MaxUsers: ptr(80),
	})
	require.NoError(t, err)
	assert.Equal(t, 80, out.MaxUsers)

	_, err = NewSetPlanActiveUseCase(env.plans, env.log).Execute(ctx, growth.ID(), false)
	require.NoError(t, err)

	active := true
	res, err := NewListPlansUseCase(env.plans, env.log).Execute(ctx, ListPlansQuery{IsActive: &active})
	require.NoError(t, err)
	require.Len(t, res.Plans, 1)
	assert.Equal(t, "Starter", res.Plans[0].Name)

	got, err := NewGetPlanUseCase(env.plans, env.log).Execute(ctx, growth.ID())
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, 80, got.MaxUsers)

	_, err = NewGetPlanUseCase(env.plans, env.log).Execute(ctx, 999)
	assert.True(t, apperrors.IsNotFoundError(err))
}
