package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	apperrors "github.com/orris-inc/backoffice/internal/shared/errors"
)

func TestCreateSubscription_PricesAndDerivesEndDate(t *testing.T) {
	env := newTestEnv(t)
	plan := env.growthPlan(t)
	c := env.client(t, "acme@example.com", ownerScope.UserID)

	notifications := newRecordingNotifier()
	uc := env.createUC()
	uc.SetSubscriptionNotifier(notifications)

	start := date(2026, time.January, 1)
	out, err := uc.Execute(context.Background(), CreateSubscriptionCommand{
		Scope:     ownerScope,
		ClientID:  c.ID(),
		PlanID:    plan.ID(),
		NumUsers:  20,
		StartDate: &start,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-01-01", out.StartDate)
	assert.Equal(t, "2026-04-01", out.EndDate)
	assert.Equal(t, "11940.00", out.AmountPaid)
	assert.Equal(t, "0.00", out.Discount)
	assert.Equal(t, "11940.00", out.FinalAmount)
	assert.Equal(t, "quarterly", out.BillingCycle)
	assert.Equal(t, 3, out.BillingMonths)
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, "pending", out.PaymentStatus)
	assert.Equal(t, ownerScope.UserID, out.CreatedBy)

	assert.Equal(t, []subscription.EventType{subscription.EventCreated}, env.events(t, out.ID))

	change := notifications.next(t)
	assert.Equal(t, subscription.EventCreated, change.Event)
	assert.Equal(t, out.ID, change.Subscription.ID())
	assert.Equal(t, "Growth", change.Plan.Name())
	assert.Equal(t, c.ID(), change.Client.ID())
}

func TestCreateSubscription_DiscountAndTrial(t *testing.T) {
	env := newTestEnv(t)
	plan := env.growthPlan(t)
	c := env.client(t, "acme@example.com", ownerScope.UserID)

	start := date(2026, time.January, 1)
	end := date(2026, time.February, 15)
	out, err := env.createUC().Execute(context.Background(), CreateSubscriptionCommand{
		Scope:     ownerScope,
		ClientID:  c.ID(),
		PlanID:    plan.ID(),
		NumUsers:  10,
		StartDate: &start,
		EndDate:   &end,
		Discount:  decimal.RequireFromString("970.50"),
		Trial:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-02-15", out.EndDate)
	assert.Equal(t, "5970.00", out.AmountPaid)
	assert.Equal(t, "4999.50", out.FinalAmount)
	assert.Equal(t, "trial", out.Status)
}

func TestCreateSubscription_RejectsOverlap(t *testing.T) {
	env := newTestEnv(t)
	plan := env.growthPlan(t)
	c := env.client(t, "acme@example.com", ownerScope.UserID)
	first := env.subscribe(t, c, plan, date(2026, time.January, 1))

	tests := []struct {
		name    string
		start   time.Time
		wantErr bool
	}{
		{"shares the end date", date(2026, time.April, 1), true},
		{"inside the range", date(2026, time.February, 10), true},
		{"ends on the start date", date(2025, time.October, 1), true},
		{"day after the end date", date(2026, time.April, 2), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := tt.start
			out, err := env.createUC().Execute(context.Background(), CreateSubscriptionCommand{
				Scope:     ownerScope,
				ClientID:  c.ID(),
				PlanID:    plan.ID(),
				NumUsers:  20,
				StartDate: &start,
			})
			if !tt.wantErr {
				require.NoError(t, err)
				// release the calendar for the cases that follow
				_, err = env.cancelUC().Execute(context.Background(), CancelSubscriptionCommand{Scope: ownerScope, SubscriptionID: out.ID})
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsConflictError(err))
			assert.ErrorIs(t, err, subscription.ErrOverlappingSubscription)

			var overlap *subscription.OverlapError
			require.True(t, errors.As(err, &overlap))
			assert.Equal(t, first.ID, overlap.ConflictingID)
		})
	}
}

func TestCreateSubscription_CancelledDoesNotBlock(t *testing.T) {
	env := newTestEnv(t)
	plan := env.growthPlan(t)
	c := env.client(t, "acme@example.com", ownerScope.UserID)
	first := env.subscribe(t, c, plan, date(2026, time.January, 1))

	_, err := env.cancelUC().Execute(context.Background(), CancelSubscriptionCommand{Scope: ownerScope, SubscriptionID: first.ID})
	require.NoError(t, err)

	second := env.subscribe(t, c, plan, date(2026, time.January, 1))
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCreateSubscription_Rejections(t *testing.T) {
	env := newTestEnv(t)
	plan := env.growthPlan(t)
	retired := env.plan(t, "Legacy", 99, vo.BillingCycleMonthly)
	retired.Deactivate()
	require.NoError(t, env.plans.Update(context.Background(), retired))

	active := env.client(t, "acme@example.com", ownerScope.UserID)
	suspended := env.client(t, "idle@example.com", ownerScope.UserID)
	require.NoError(t, suspended.ChangeStatus(client.StatusSuspended))
	require.NoError(t, env.clients.Update(context.Background(), suspended))

	start := date(2026, time.January, 1)
	tests := []struct {
		name     string
		cmd      CreateSubscriptionCommand
		sentinel error
		errType  apperrors.ErrorType
	}{
		{
			name:     "too few users",
			cmd:      CreateSubscriptionCommand{Scope: ownerScope, ClientID: active.ID(), PlanID: plan.ID(), NumUsers: 9},
			sentinel: subscription.ErrOutOfRangeUsers,
			errType:  apperrors.ErrorTypeValidation,
		},
		{
			name:     "too many users",
			cmd:      CreateSubscriptionCommand{Scope: ownerScope, ClientID: active.ID(), PlanID: plan.ID(), NumUsers: 51},
			sentinel: subscription.ErrOutOfRangeUsers,
			errType:  apperrors.ErrorTypeValidation,
		},
		{
			name:     "inactive plan",
			cmd:      CreateSubscriptionCommand{Scope: ownerScope, ClientID: active.ID(), PlanID: retired.ID(), NumUsers: 20},
			sentinel: subscription.ErrPlanInactive,
			errType:  apperrors.ErrorTypeConflict,
		},
		{
			name:     "unknown plan",
			cmd:      CreateSubscriptionCommand{Scope: ownerScope, ClientID: active.ID(), PlanID: 999, NumUsers: 20},
			sentinel: subscription.ErrPlanNotFound,
			errType:  apperrors.ErrorTypeNotFound,
		},
		{
			name:     "unknown client",
			cmd:      CreateSubscriptionCommand{Scope: ownerScope, ClientID: 999, PlanID: plan.ID(), NumUsers: 20},
			sentinel: client.ErrClientNotFound,
			errType:  apperrors.ErrorTypeNotFound,
		},
		{
			name:     "suspended client",
			cmd:      CreateSubscriptionCommand{Scope: ownerScope, ClientID: suspended.ID(), PlanID: plan.ID(), NumUsers: 20},
			sentinel: client.ErrClientInactive,
			errType:  apperrors.ErrorTypeConflict,
		},
		{
			name:    "another user's client",
			cmd:     CreateSubscriptionCommand{Scope: otherScope, ClientID: active.ID(), PlanID: plan.ID(), NumUsers: 20},
			errType: apperrors.ErrorTypeForbidden,
		},
		{
			name:     "negative discount",
			cmd:      CreateSubscriptionCommand{Scope: ownerScope, ClientID: active.ID(), PlanID: plan.ID(), NumUsers: 20, Discount: decimal.NewFromInt(-1)},
			sentinel: subscription.ErrInvalidDiscount,
			errType:  apperrors.ErrorTypeValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd
			cmd.StartDate = &start
			_, err := env.createUC().Execute(context.Background(), cmd)
			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.errType, appErr.Type)
			if tt.sentinel != nil {
				assert.ErrorIs(t, err, tt.sentinel)
			}
		})
	}

	list, _, err := env.subs.List(context.Background(), subscription.SubscriptionFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateSubscription_UserBoundDetails(t *testing.T) {
	env := newTestEnv(t)
	plan := env.growthPlan(t)
	c := env.client(t, "acme@example.com", ownerScope.UserID)

	_, err := env.createUC().Execute(context.Background(), CreateSubscriptionCommand{
		Scope:    ownerScope,
		ClientID: c.ID(),
		PlanID:   plan.ID(),
		NumUsers: 60,
	})
	var bound *subscription.UserBoundError
	require.True(t, errors.As(err, &bound))
	assert.Equal(t, "max_users", bound.Bound())
	assert.Equal(t, 50, bound.MaxUsers)
	assert.Equal(t, 60, bound.NumUsers)
}
