package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/orris-inc/backoffice/internal/application/payment/usecases"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/errors"
	"github.com/orris-inc/backoffice/internal/shared/logger"
	"github.com/orris-inc/backoffice/internal/shared/utils"
)

type PaymentHandler struct {
	recordUC     recordPaymentUseCase
	markPaidUC   markPaymentPaidUseCase
	markFailedUC markPaymentFailedUseCase
	refundUC     refundPaymentUseCase
	getUC        getPaymentUseCase
	listUC       listPaymentsUseCase
	logger       logger.Interface
}

func NewPaymentHandler(
	recordUC recordPaymentUseCase,
	markPaidUC markPaymentPaidUseCase,
	markFailedUC markPaymentFailedUseCase,
	refundUC refundPaymentUseCase,
	getUC getPaymentUseCase,
	listUC listPaymentsUseCase,
	log logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		recordUC:     recordUC,
		markPaidUC:   markPaidUC,
		markFailedUC: markFailedUC,
		refundUC:     refundUC,
		getUC:        getUC,
		listUC:       listUC,
		logger:       log,
	}
}

type RecordPaymentRequest struct {
	SubscriptionID uint            `json:"subscription_id" binding:"required"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency" binding:"omitempty,len=3"`
	Method         string          `json:"payment_method" binding:"required,payment_method"`
	TransactionID  string          `json:"transaction_id" binding:"max=100"`
	Notes          string          `json:"notes" binding:"max=1000"`
	Paid           bool            `json:"paid"`
}

type MarkPaymentPaidRequest struct {
	TransactionID string `json:"transaction_id" binding:"max=100"`
}

type PaymentReasonRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for record payment", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	method, err := payment.ParseMethod(req.Method)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid payment method", err.Error()))
		return
	}

	result, err := h.recordUC.Execute(c.Request.Context(), usecases.RecordPaymentCommand{
		Scope:          authorization.ScopeFromContext(c),
		SubscriptionID: req.SubscriptionID,
		Amount:         req.Amount,
		Currency:       req.Currency,
		Method:         method,
		TransactionID:  req.TransactionID,
		Notes:          req.Notes,
		Paid:           req.Paid,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Payment recorded successfully")
}

func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	paymentID, err := parseID(c, "id", "Payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req MarkPaymentPaidRequest
	if c.Request.ContentLength != 0 {
		if err := utils.BindJSON(c, &req); err != nil {
			utils.ErrorResponseWithError(c, err)
			return
		}
	}

	result, err := h.markPaidUC.Execute(c.Request.Context(), usecases.MarkPaymentPaidCommand{
		Scope:         authorization.ScopeFromContext(c),
		PaymentID:     paymentID,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment marked as paid", result)
}

func (h *PaymentHandler) MarkFailed(c *gin.Context) {
	paymentID, err := parseID(c, "id", "Payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PaymentReasonRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.markFailedUC.Execute(c.Request.Context(), usecases.MarkPaymentFailedCommand{
		Scope:     authorization.ScopeFromContext(c),
		PaymentID: paymentID,
		Reason:    req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment marked as failed", result)
}

func (h *PaymentHandler) Refund(c *gin.Context) {
	paymentID, err := parseID(c, "id", "Payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PaymentReasonRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.refundUC.Execute(c.Request.Context(), usecases.RefundPaymentCommand{
		Scope:     authorization.ScopeFromContext(c),
		PaymentID: paymentID,
		Reason:    req.Reason,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Payment refunded", result)
}

func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID, err := parseID(c, "id", "Payment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), authorization.ScopeFromContext(c), paymentID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// listPaymentsParams holds the filter query string of GET /payments.
type listPaymentsParams struct {
	SubscriptionID *uint  `form:"subscription_id" binding:"omitempty,min=1"`
	ClientID       *uint  `form:"client_id" binding:"omitempty,min=1"`
	Status         string `form:"status"`
	PaymentMethod  string `form:"payment_method" binding:"omitempty,payment_method"`
}

func (h *PaymentHandler) ListPayments(c *gin.Context) {
	var params listPaymentsParams
	if err := utils.BindQuery(c, &params); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	lp := parseListParams(c)
	query := usecases.ListPaymentsQuery{
		Scope:          authorization.ScopeFromContext(c),
		SubscriptionID: params.SubscriptionID,
		ClientID:       params.ClientID,
		Page:           lp.Page,
		PageSize:       lp.PageSize,
		SortBy:         lp.SortBy,
		SortOrder:      lp.SortOrder,
	}

	if params.Status != "" {
		status, err := vo.ParsePaymentStatus(params.Status)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid status parameter", err.Error()))
			return
		}
		query.Status = &status
	}
	if params.PaymentMethod != "" {
		method, err := payment.ParseMethod(params.PaymentMethod)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid payment_method parameter", err.Error()))
			return
		}
		query.Method = &method
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Payments, result.Total,
		utils.Pagination{Page: result.Page, PageSize: result.PageSize})
}
