package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/orris-inc/backoffice/internal/application/subscription/usecases"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/errors"
	"github.com/orris-inc/backoffice/internal/shared/logger"
	"github.com/orris-inc/backoffice/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC  createSubscriptionUseCase
	updateUC  updateSubscriptionUseCase
	cancelUC  cancelSubscriptionUseCase
	renewUC   renewSubscriptionUseCase
	getUC     getSubscriptionUseCase
	listUC    listSubscriptionsUseCase
	statsUC   getSubscriptionStatsUseCase
	historyUC listSubscriptionHistoryUseCase
	expireUC  expireSubscriptionsUseCase
	logger    logger.Interface
}

// SubscriptionUseCases groups the use cases SubscriptionHandler serves.
type SubscriptionUseCases struct {
	Create  createSubscriptionUseCase
	Update  updateSubscriptionUseCase
	Cancel  cancelSubscriptionUseCase
	Renew   renewSubscriptionUseCase
	Get     getSubscriptionUseCase
	List    listSubscriptionsUseCase
	Stats   getSubscriptionStatsUseCase
	History listSubscriptionHistoryUseCase
	Expire  expireSubscriptionsUseCase
}

func NewSubscriptionHandler(ucs SubscriptionUseCases, log logger.Interface) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:  ucs.Create,
		updateUC:  ucs.Update,
		cancelUC:  ucs.Cancel,
		renewUC:   ucs.Renew,
		getUC:     ucs.Get,
		listUC:    ucs.List,
		statsUC:   ucs.Stats,
		historyUC: ucs.History,
		expireUC:  ucs.Expire,
		logger:    log,
	}
}

type CreateSubscriptionRequest struct {
	ClientID      uint             `json:"client_id" binding:"required"`
	PlanID        uint             `json:"plan_id" binding:"required"`
	NumUsers      int              `json:"num_users" binding:"required,min=1"`
	StartDate     *string          `json:"start_date" binding:"omitempty,date"`
	EndDate       *string          `json:"end_date" binding:"omitempty,date"`
	Discount      *decimal.Decimal `json:"discount"`
	PaymentStatus string           `json:"payment_status" binding:"omitempty,oneof=paid pending failed refunded"`
	IsTrial       bool             `json:"is_trial"`
	AutoRenew     bool             `json:"auto_renew"`
}

// UpdateSubscriptionRequest changes only the fields present in the body.
type UpdateSubscriptionRequest struct {
	PlanID        *uint            `json:"plan_id" binding:"omitempty,min=1"`
	StartDate     *string          `json:"start_date" binding:"omitempty,date"`
	EndDate       *string          `json:"end_date" binding:"omitempty,date"`
	NumUsers      *int             `json:"num_users" binding:"omitempty,min=1"`
	Discount      *decimal.Decimal `json:"discount"`
	PaymentStatus *string          `json:"payment_status" binding:"omitempty,oneof=paid pending failed refunded"`
	AutoRenew     *bool            `json:"auto_renew"`
}

type CancelSubscriptionRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type RenewSubscriptionRequest struct {
	Discount *decimal.Decimal `json:"discount"`
}

func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateSubscriptionCommand{
		Scope:         authorization.ScopeFromContext(c),
		ClientID:      req.ClientID,
		PlanID:        req.PlanID,
		NumUsers:      req.NumUsers,
		StartDate:     start,
		EndDate:       end,
		PaymentStatus: vo.PaymentStatus(req.PaymentStatus),
		Trial:         req.IsTrial,
		AutoRenew:     req.AutoRenew,
	}
	if req.Discount != nil {
		cmd.Discount = *req.Discount
	}

	result, err := h.createUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Subscription created successfully")
}

func (h *SubscriptionHandler) UpdateSubscription(c *gin.Context) {
	subscriptionID, err := parseID(c, "id", "Subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateSubscriptionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update subscription",
			"subscription_id", subscriptionID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdateSubscriptionCommand{
		Scope:          authorization.ScopeFromContext(c),
		SubscriptionID: subscriptionID,
		PlanID:         req.PlanID,
		StartDate:      start,
		EndDate:        end,
		NumUsers:       req.NumUsers,
		Discount:       req.Discount,
		AutoRenew:      req.AutoRenew,
	}
	if req.PaymentStatus != nil {
		ps := vo.PaymentStatus(*req.PaymentStatus)
		cmd.PaymentStatus = &ps
	}

	result, err := h.updateUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription updated successfully", result)
}

func (h *SubscriptionHandler) CancelSubscription(c *gin.Context) {
	subscriptionID, err := parseID(c, "id", "Subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CancelSubscriptionRequest
	if c.Request.ContentLength != 0 {
		if err := utils.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		Scope:          authorization.ScopeFromContext(c),
		SubscriptionID: subscriptionID,
		Reason:         req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription cancelled successfully", result)
}

func (h *SubscriptionHandler) RenewSubscription(c *gin.Context) {
	subscriptionID, err := parseID(c, "id", "Subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req RenewSubscriptionRequest
	if c.Request.ContentLength != 0 {
		if err := utils.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.renewUC.Execute(c.Request.Context(), usecases.RenewSubscriptionCommand{
		Scope:          authorization.ScopeFromContext(c),
		SubscriptionID: subscriptionID,
		Discount:       req.Discount,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription renewed successfully", result)
}

func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	subscriptionID, err := parseID(c, "id", "Subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), usecases.GetSubscriptionQuery{
		Scope:          authorization.ScopeFromContext(c),
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	query, err := parseListSubscriptionsQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listUC.Execute(c.Request.Context(), *query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Subscriptions, result.Total,
		utils.Pagination{Page: result.Page, PageSize: result.PageSize})
}

func (h *SubscriptionHandler) GetStats(c *gin.Context) {
	result, err := h.statsUC.Execute(c.Request.Context(), usecases.GetSubscriptionStatsQuery{
		Scope: authorization.ScopeFromContext(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *SubscriptionHandler) ListHistory(c *gin.Context) {
	subscriptionID, err := parseID(c, "id", "Subscription")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.historyUC.Execute(c.Request.Context(), usecases.ListSubscriptionHistoryQuery{
		Scope:          authorization.ScopeFromContext(c),
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ExpireSubscriptions runs the expiry sweep on demand.
func (h *SubscriptionHandler) ExpireSubscriptions(c *gin.Context) {
	count, err := h.expireUC.Execute(c.Request.Context())
	if err != nil {
		h.logger.Errorw("manual expiry sweep failed", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("Expiry sweep failed"))
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Expiry sweep completed", gin.H{"expired": count})
}

func parseListSubscriptionsQuery(c *gin.Context) (*usecases.ListSubscriptionsQuery, error) {
	lp := parseListParams(c)
	query := &usecases.ListSubscriptionsQuery{
		Scope:     authorization.ScopeFromContext(c),
		Page:      lp.Page,
		PageSize:  lp.PageSize,
		SortBy:    lp.SortBy,
		SortOrder: lp.SortOrder,
	}

	var err error
	if query.ClientID, err = queryUint(c, "client_id"); err != nil {
		return nil, err
	}
	if query.PlanID, err = queryUint(c, "plan_id"); err != nil {
		return nil, err
	}

	if s := c.Query("status"); s != "" {
		status, err := vo.ParseSubscriptionStatus(s)
		if err != nil {
			return nil, errors.NewValidationError("Invalid status parameter", err.Error())
		}
		query.Status = &status
	}
	if s := c.Query("payment_status"); s != "" {
		ps, err := vo.ParsePaymentStatus(s)
		if err != nil {
			return nil, errors.NewValidationError("Invalid payment_status parameter", err.Error())
		}
		query.PaymentStatus = &ps
	}

	return query, nil
}
