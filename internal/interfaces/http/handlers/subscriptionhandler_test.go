package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	subdto "github.com/orris-inc/backoffice/internal/application/subscription/dto"
	"github.com/orris-inc/backoffice/internal/application/subscription/usecases"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/interfaces/http/handlers/testutil"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/errors"
)

// =====================================================================
// Mock use cases
// =====================================================================

type mockCreateSubscriptionUC struct {
	cmd    usecases.CreateSubscriptionCommand
	result *subdto.SubscriptionDTO
	err    error
}

func (m *mockCreateSubscriptionUC) Execute(ctx context.Context, cmd usecases.CreateSubscriptionCommand) (*subdto.SubscriptionDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockUpdateSubscriptionUC struct {
	cmd    usecases.UpdateSubscriptionCommand
	result *subdto.SubscriptionDTO
	err    error
}

func (m *mockUpdateSubscriptionUC) Execute(ctx context.Context, cmd usecases.UpdateSubscriptionCommand) (*subdto.SubscriptionDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockCancelSubscriptionUC struct {
	cmd    usecases.CancelSubscriptionCommand
	result *subdto.SubscriptionDTO
	err    error
}

func (m *mockCancelSubscriptionUC) Execute(ctx context.Context, cmd usecases.CancelSubscriptionCommand) (*subdto.SubscriptionDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockRenewSubscriptionUC struct {
	cmd    usecases.RenewSubscriptionCommand
	result *subdto.SubscriptionDTO
	err    error
}

func (m *mockRenewSubscriptionUC) Execute(ctx context.Context, cmd usecases.RenewSubscriptionCommand) (*subdto.SubscriptionDTO, error) {
	m.cmd = cmd
	return m.result, m.err
}

type mockGetSubscriptionUC struct {
	query  usecases.GetSubscriptionQuery
	result *subdto.SubscriptionDTO
	err    error
}

func (m *mockGetSubscriptionUC) Execute(ctx context.Context, query usecases.GetSubscriptionQuery) (*subdto.SubscriptionDTO, error) {
	m.query = query
	return m.result, m.err
}

type mockListSubscriptionsUC struct {
	query  usecases.ListSubscriptionsQuery
	result *usecases.ListSubscriptionsResult
	err    error
}

func (m *mockListSubscriptionsUC) Execute(ctx context.Context, query usecases.ListSubscriptionsQuery) (*usecases.ListSubscriptionsResult, error) {
	m.query = query
	return m.result, m.err
}

type mockStatsUC struct {
	query  usecases.GetSubscriptionStatsQuery
	result *subdto.StatsDTO
}

func (m *mockStatsUC) Execute(ctx context.Context, query usecases.GetSubscriptionStatsQuery) (*subdto.StatsDTO, error) {
	m.query = query
	return m.result, nil
}

type mockHistoryUC struct {
	result []*subdto.HistoryDTO
	err    error
}

func (m *mockHistoryUC) Execute(ctx context.Context, query usecases.ListSubscriptionHistoryQuery) ([]*subdto.HistoryDTO, error) {
	return m.result, m.err
}

type mockExpireUC struct {
	count int64
	err   error
}

func (m *mockExpireUC) Execute(ctx context.Context) (int64, error) {
	return m.count, m.err
}

// =====================================================================
// Test helpers
// =====================================================================

func testSubscriptionDTO() *subdto.SubscriptionDTO {
	now := time.Now().UTC()
	return &subdto.SubscriptionDTO{
		ID:            31,
		ClientID:      9,
		PlanID:        4,
		StartDate:     "2026-01-01",
		EndDate:       "2026-04-01",
		BillingCycle:  "quarterly",
		BillingMonths: 3,
		NumUsers:      20,
		AmountPaid:    "11940.00",
		Discount:      "0.00",
		FinalAmount:   "11940.00",
		PaymentStatus: "pending",
		Status:        "active",
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func newTestSubscriptionHandler(ucs SubscriptionUseCases) *SubscriptionHandler {
	return NewSubscriptionHandler(ucs, testutil.NewMockLogger())
}

func decodeData(t *testing.T, resp testutil.APIResponse, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, target))
}

// =====================================================================
// CreateSubscription
// =====================================================================

func TestSubscriptionHandler_CreateSubscription_Success(t *testing.T) {
	mockUC := &mockCreateSubscriptionUC{result: testSubscriptionDTO()}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{Create: mockUC})

	body := map[string]interface{}{
		"client_id":  9,
		"plan_id":    4,
		"num_users":  20,
		"start_date": "2026-01-01",
		"discount":   "150.50",
		"auto_renew": true,
	}
	c, w := testutil.NewTestContext(http.MethodPost, "/api/subscriptions", body)
	testutil.SetAuthContext(c, 7, authorization.RoleUser)

	handler.CreateSubscription(c)

	if w.Code != http.StatusCreated {
		t.Logf("Response body: %s", w.Body.String())
	}
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.True(t, resp.Success)

	var got subdto.SubscriptionDTO
	decodeData(t, resp, &got)
	assert.Equal(t, "11940.00", got.FinalAmount)
	assert.Equal(t, "2026-04-01", got.EndDate)

	cmd := mockUC.cmd
	assert.Equal(t, uint(7), cmd.Scope.UserID)
	assert.Equal(t, authorization.RoleUser, cmd.Scope.Role)
	assert.Equal(t, uint(9), cmd.ClientID)
	assert.Equal(t, uint(4), cmd.PlanID)
	assert.Equal(t, 20, cmd.NumUsers)
	require.NotNil(t, cmd.StartDate)
	assert.Equal(t, "2026-01-01", cmd.StartDate.Format("2006-01-02"))
	assert.Nil(t, cmd.EndDate)
	assert.True(t, cmd.Discount.Equal(decimal.RequireFromString("150.50")))
	assert.True(t, cmd.AutoRenew)
	assert.False(t, cmd.Trial)
}

func TestSubscriptionHandler_CreateSubscription_InvalidRequest(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing client", map[string]interface{}{"plan_id": 4, "num_users": 20}},
		{"zero users", map[string]interface{}{"client_id": 9, "plan_id": 4, "num_users": 0}},
		{"bad date", map[string]interface{}{"client_id": 9, "plan_id": 4, "num_users": 20, "start_date": "01-01-2026"}},
		{"bad payment status", map[string]interface{}{"client_id": 9, "plan_id": 4, "num_users": 20, "payment_status": "partial"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCreateSubscriptionUC{}
			handler := newTestSubscriptionHandler(SubscriptionUseCases{Create: mockUC})

			c, w := testutil.NewTestContext(http.MethodPost, "/api/subscriptions", tt.body)
			testutil.SetAuthContext(c, 7, authorization.RoleUser)

			handler.CreateSubscription(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, string(errors.ErrorTypeValidation), resp.Error.Type)
			assert.Zero(t, mockUC.cmd.ClientID, "use case must not run")
		})
	}
}

func TestSubscriptionHandler_CreateSubscription_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"overlap", errors.NewConflictError("client already has an active subscription in this period"), http.StatusConflict},
		{"forbidden", errors.NewForbiddenError("access denied"), http.StatusForbidden},
		{"plan missing", errors.NewNotFoundError("plan not found"), http.StatusNotFound},
		{"storage", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestSubscriptionHandler(SubscriptionUseCases{
				Create: &mockCreateSubscriptionUC{err: tt.err},
			})

			body := map[string]interface{}{"client_id": 9, "plan_id": 4, "num_users": 20}
			c, w := testutil.NewTestContext(http.MethodPost, "/api/subscriptions", body)
			testutil.SetAuthContext(c, 7, authorization.RoleUser)

			handler.CreateSubscription(c)

			assert.Equal(t, tt.status, w.Code)
			var resp testutil.APIResponse
			require.NoError(t, testutil.ParseResponse(w, &resp))
			assert.False(t, resp.Success)
		})
	}
}

// =====================================================================
// UpdateSubscription / Cancel / Renew
// =====================================================================

func TestSubscriptionHandler_UpdateSubscription_PartialBody(t *testing.T) {
	mockUC := &mockUpdateSubscriptionUC{result: testSubscriptionDTO()}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{Update: mockUC})

	body := map[string]interface{}{"num_users": 25, "payment_status": "paid"}
	c, w := testutil.NewTestContext(http.MethodPatch, "/api/subscriptions/31", body)
	testutil.SetAuthContext(c, 1, authorization.RoleAdmin)
	testutil.SetURLParam(c, "id", "31")

	handler.UpdateSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	cmd := mockUC.cmd
	assert.Equal(t, uint(31), cmd.SubscriptionID)
	require.NotNil(t, cmd.NumUsers)
	assert.Equal(t, 25, *cmd.NumUsers)
	require.NotNil(t, cmd.PaymentStatus)
	assert.Equal(t, vo.PaymentStatusPaid, *cmd.PaymentStatus)
	assert.Nil(t, cmd.PlanID)
	assert.Nil(t, cmd.StartDate)
	assert.Nil(t, cmd.Discount)
	assert.Nil(t, cmd.AutoRenew)
}

func TestSubscriptionHandler_UpdateSubscription_InvalidID(t *testing.T) {
	handler := newTestSubscriptionHandler(SubscriptionUseCases{Update: &mockUpdateSubscriptionUC{}})

	for _, id := range []string{"abc", "0", "-3"} {
		c, w := testutil.NewTestContext(http.MethodPatch, "/api/subscriptions/"+id, map[string]interface{}{})
		testutil.SetURLParam(c, "id", id)

		handler.UpdateSubscription(c)

		assert.Equal(t, http.StatusBadRequest, w.Code, "id %q", id)
	}
}

func TestSubscriptionHandler_CancelSubscription(t *testing.T) {
	mockUC := &mockCancelSubscriptionUC{result: testSubscriptionDTO()}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{Cancel: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/subscriptions/31/cancel",
		map[string]string{"reason": "moving to annual billing"})
	testutil.SetAuthContext(c, 7, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "31")

	handler.CancelSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(31), mockUC.cmd.SubscriptionID)
	assert.Equal(t, "moving to annual billing", mockUC.cmd.Reason)
}

func TestSubscriptionHandler_CancelSubscription_EmptyBody(t *testing.T) {
	mockUC := &mockCancelSubscriptionUC{err: errors.NewConflictError("subscription is already cancelled")}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{Cancel: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/subscriptions/31/cancel", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "31")

	handler.CancelSubscription(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, mockUC.cmd.Reason)
}

func TestSubscriptionHandler_RenewSubscription(t *testing.T) {
	renewed := testSubscriptionDTO()
	renewed.EndDate = "2026-07-01"
	mockUC := &mockRenewSubscriptionUC{result: renewed}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{Renew: mockUC})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/subscriptions/31/renew", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "31")

	handler.RenewSubscription(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockUC.cmd.Discount)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var got subdto.SubscriptionDTO
	decodeData(t, resp, &got)
	assert.Equal(t, "2026-07-01", got.EndDate)
}

// =====================================================================
// Queries
// =====================================================================

func TestSubscriptionHandler_ListSubscriptions_Filters(t *testing.T) {
	mockUC := &mockListSubscriptionsUC{result: &usecases.ListSubscriptionsResult{
		Subscriptions: []*subdto.SubscriptionDTO{testSubscriptionDTO()},
		Total:         41,
		Page:          2,
		PageSize:      20,
	}}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{List: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/subscriptions", nil)
	testutil.SetAuthContext(c, 7, authorization.RoleUser)
	testutil.SetQueryParams(c, map[string]string{
		"client_id":      "9",
		"status":         "active",
		"payment_status": "pending",
		"page":           "2",
	})

	handler.ListSubscriptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	q := mockUC.query
	assert.Equal(t, uint(7), q.Scope.UserID)
	require.NotNil(t, q.ClientID)
	assert.Equal(t, uint(9), *q.ClientID)
	require.NotNil(t, q.Status)
	assert.Equal(t, vo.StatusActive, *q.Status)
	require.NotNil(t, q.PaymentStatus)
	assert.Equal(t, vo.PaymentStatusPending, *q.PaymentStatus)
	assert.Nil(t, q.PlanID)
	assert.Equal(t, 2, q.Page)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	decodeData(t, resp, &list)
	assert.Equal(t, int64(41), list.Total)
	assert.Equal(t, 3, list.TotalPages)
}

func TestSubscriptionHandler_ListSubscriptions_BadStatus(t *testing.T) {
	mockUC := &mockListSubscriptionsUC{}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{List: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/subscriptions", nil)
	testutil.SetQueryParams(c, map[string]string{"status": "paused"})

	handler.ListSubscriptions(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscriptionHandler_GetSubscription_Forbidden(t *testing.T) {
	mockUC := &mockGetSubscriptionUC{err: errors.NewForbiddenError("access denied")}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{Get: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/subscriptions/31", nil)
	testutil.SetAuthContext(c, 8, authorization.RoleUser)
	testutil.SetURLParam(c, "id", "31")

	handler.GetSubscription(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, uint(8), mockUC.query.Scope.UserID)
}

func TestSubscriptionHandler_GetStats(t *testing.T) {
	mockUC := &mockStatsUC{result: &subdto.StatsDTO{
		Total:  3,
		Active: 2,
		Revenue: subdto.RevenueDTO{
			Billed:      "23880.00",
			Collected:   "11940.00",
			Outstanding: "11940.00",
		},
	}}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{Stats: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/subscriptions/stats", nil)
	testutil.SetAuthContext(c, 2, authorization.RoleManager)

	handler.GetStats(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, authorization.RoleManager, mockUC.query.Scope.Role)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var stats subdto.StatsDTO
	decodeData(t, resp, &stats)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, "11940.00", stats.Revenue.Outstanding)
}

func TestSubscriptionHandler_ListHistory(t *testing.T) {
	mockUC := &mockHistoryUC{result: []*subdto.HistoryDTO{
		{ID: 1, SubscriptionID: 31, EventType: string(subscription.EventCreated)},
		{ID: 2, SubscriptionID: 31, EventType: string(subscription.EventRenewed)},
	}}
	handler := newTestSubscriptionHandler(SubscriptionUseCases{History: mockUC})

	c, w := testutil.NewTestContext(http.MethodGet, "/api/subscriptions/31/history", nil)
	testutil.SetURLParam(c, "id", "31")

	handler.ListHistory(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var events []subdto.HistoryDTO
	decodeData(t, resp, &events)
	require.Len(t, events, 2)
	assert.Equal(t, "renewed", events[1].EventType)
}

func TestSubscriptionHandler_ExpireSubscriptions(t *testing.T) {
	handler := newTestSubscriptionHandler(SubscriptionUseCases{Expire: &mockExpireUC{count: 4}})

	c, w := testutil.NewTestContext(http.MethodPost, "/api/subscriptions/expire", nil)
	handler.ExpireSubscriptions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var data map[string]int64
	decodeData(t, resp, &data)
	assert.Equal(t, int64(4), data["expired"])

	failing := newTestSubscriptionHandler(SubscriptionUseCases{Expire: &mockExpireUC{err: assert.AnError}})
	c, w = testutil.NewTestContext(http.MethodPost, "/api/subscriptions/expire", nil)
	failing.ExpireSubscriptions(c)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
