package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/backoffice/internal/application/client/usecases"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/errors"
	"github.com/orris-inc/backoffice/internal/shared/logger"
	"github.com/orris-inc/backoffice/internal/shared/utils"
)

type ClientHandler struct {
	createUC       createClientUseCase
	updateUC       updateClientUseCase
	changeStatusUC changeClientStatusUseCase
	getUC          getClientUseCase
	listUC         listClientsUseCase
	deleteUC       deleteClientUseCase
	logger         logger.Interface
}

func NewClientHandler(
	createUC createClientUseCase,
	updateUC updateClientUseCase,
	changeStatusUC changeClientStatusUseCase,
	getUC getClientUseCase,
	listUC listClientsUseCase,
	deleteUC deleteClientUseCase,
	log logger.Interface,
) *ClientHandler {
	return &ClientHandler{
		createUC:       createUC,
		updateUC:       updateUC,
		changeStatusUC: changeStatusUC,
		getUC:          getUC,
		listUC:         listUC,
		deleteUC:       deleteUC,
		logger:         log,
	}
}

type CreateClientRequest struct {
	Name          string `json:"name" binding:"required,max=200"`
	ContactPerson string `json:"contact_person" binding:"max=100"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"max=20"`
	Address       string `json:"address" binding:"max=500"`
}

type UpdateClientRequest struct {
	Name          *string `json:"name" binding:"omitempty,max=200"`
	ContactPerson *string `json:"contact_person" binding:"omitempty,max=100"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone" binding:"omitempty,max=20"`
	Address       *string `json:"address" binding:"omitempty,max=500"`
}

type UpdateClientStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req CreateClientRequest
	if err := utils.BindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create client", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateClientCommand{
		Scope:         authorization.ScopeFromContext(c),
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Client created successfully")
}

func (h *ClientHandler) UpdateClient(c *gin.Context) {
	clientID, err := parseID(c, "id", "Client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateClientRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.updateUC.Execute(c.Request.Context(), usecases.UpdateClientCommand{
		Scope:         authorization.ScopeFromContext(c),
		ClientID:      clientID,
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Client updated successfully", result)
}

func (h *ClientHandler) UpdateClientStatus(c *gin.Context) {
	clientID, err := parseID(c, "id", "Client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateClientStatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.changeStatusUC.Execute(c.Request.Context(), usecases.ChangeClientStatusCommand{
		Scope:    authorization.ScopeFromContext(c),
		ClientID: clientID,
		Status:   client.Status(req.Status),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Client status updated successfully", result)
}

func (h *ClientHandler) GetClient(c *gin.Context) {
	clientID, err := parseID(c, "id", "Client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUC.Execute(c.Request.Context(), authorization.ScopeFromContext(c), clientID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *ClientHandler) ListClients(c *gin.Context) {
	lp := parseListParams(c)
	query := usecases.ListClientsQuery{
		Scope:     authorization.ScopeFromContext(c),
		Search:    c.Query("search"),
		Page:      lp.Page,
		PageSize:  lp.PageSize,
		SortBy:    lp.SortBy,
		SortOrder: lp.SortOrder,
	}
	if s := c.Query("status"); s != "" {
		status, err := client.ParseStatus(s)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid status parameter", err.Error()))
			return
		}
		query.Status = &status
	}

	result, err := h.listUC.Execute(c.Request.Context(), query)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Clients, result.Total,
		utils.Pagination{Page: result.Page, PageSize: result.PageSize})
}

func (h *ClientHandler) DeleteClient(c *gin.Context) {
	clientID, err := parseID(c, "id", "Client")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), authorization.ScopeFromContext(c), clientID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}
