package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/orris-inc/backoffice/internal/application/subscription/usecases"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/errors"
	"github.com/orris-inc/backoffice/internal/shared/logger"
	"github.com/orris-inc/backoffice/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC    createPlanUseCase
	updatePlanUC    updatePlanUseCase
	getPlanUC       getPlanUseCase
	listPlansUC     listPlansUseCase
	setPlanActiveUC setPlanActiveUseCase
	logger          logger.Interface
}

func NewPlanHandler(
	createPlanUC createPlanUseCase,
	updatePlanUC updatePlanUseCase,
	getPlanUC getPlanUseCase,
	listPlansUC listPlansUseCase,
	setPlanActiveUC setPlanActiveUseCase,
	log logger.Interface,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:    createPlanUC,
		updatePlanUC:    updatePlanUC,
		getPlanUC:       getPlanUC,
		listPlansUC:     listPlansUC,
		setPlanActiveUC: setPlanActiveUC,
		logger:          log,
	}
}

type CreatePlanRequest struct {
	Name          string          `json:"name" binding:"required,max=100"`
	Description   string          `json:"description" binding:"max=1000"`
	PricePerUser  decimal.Decimal `json:"price_per_user"`
	BillingCycle  string          `json:"billing_cycle" binding:"required,billing_cycle"`
	BillingMonths int             `json:"billing_months" binding:"omitempty,oneof=1 3 6 12"`
	MinUsers      int             `json:"min_users" binding:"required,min=1"`
	MaxUsers      int             `json:"max_users" binding:"required,min=1"`
	ModuleAccess  map[string]bool `json:"module_access"`
}

type UpdatePlanRequest struct {
	Name         *string          `json:"name" binding:"omitempty,max=100"`
	Description  *string          `json:"description" binding:"omitempty,max=1000"`
	PricePerUser *decimal.Decimal `json:"price_per_user"`
	MinUsers     *int             `json:"min_users" binding:"omitempty,min=1"`
	MaxUsers     *int             `json:"max_users" binding:"omitempty,min=1"`
	ModuleAccess map[string]bool  `json:"module_access"`
}

type UpdatePlanStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cycle, err := vo.ParseBillingCycle(req.BillingCycle)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid billing cycle", err.Error()))
		return
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), usecases.CreatePlanCommand{
		Name:          req.Name,
		Description:   req.Description,
		PricePerUser:  req.PricePerUser,
		BillingCycle:  cycle,
		BillingMonths: req.BillingMonths,
		MinUsers:      req.MinUsers,
		MaxUsers:      req.MaxUsers,
		ModuleAccess:  req.ModuleAccess,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	planID, err := parseID(c, "id", "Plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update plan",
			"plan_id", planID,
			"error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), usecases.UpdatePlanCommand{
		PlanID:       planID,
		Name:         req.Name,
		Description:  req.Description,
		PricePerUser: req.PricePerUser,
		MinUsers:     req.MinUsers,
		MaxUsers:     req.MaxUsers,
		ModuleAccess: req.ModuleAccess,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", result)
}

func (h *PlanHandler) UpdatePlanStatus(c *gin.Context) {
	planID, err := parseID(c, "id", "Plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setPlanActiveUC.Execute(c.Request.Context(), planID, req.Status == "active")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan status updated successfully", result)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	planID, err := parseID(c, "id", "Plan")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), planID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	query, err := parseListPlansQuery(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listPlansUC.Execute(c.Request.Context(), *query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Plans, result.Total,
		utils.Pagination{Page: result.Page, PageSize: result.PageSize})
}

func parseListPlansQuery(c *gin.Context) (*usecases.ListPlansQuery, error) {
	lp := parseListParams(c)
	query := &usecases.ListPlansQuery{
		Page:      lp.Page,
		PageSize:  lp.PageSize,
		SortBy:    lp.SortBy,
		SortOrder: lp.SortOrder,
	}

	var err error
	if query.IsActive, err = queryBool(c, "is_active"); err != nil {
		return nil, err
	}
	if s := c.Query("billing_cycle"); s != "" {
		cycle, err := vo.ParseBillingCycle(s)
		if err != nil {
			return nil, errors.NewValidationError("Invalid billing_cycle parameter", err.Error())
		}
		query.BillingCycle = &cycle
	}
	return query, nil
}
