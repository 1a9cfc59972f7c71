package usecases

import (
	"context"

	"github.com/orris-inc/backoffice/internal/application/client/dto"
	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/logger"
	"github.com/orris-inc/backoffice/internal/shared/query"
)

type GetClientUseCase struct {
	clientRepo client.Repository
	logger     logger.Interface
}

func NewGetClientUseCase(clientRepo client.Repository, logger logger.Interface) *GetClientUseCase {
	return &GetClientUseCase{clientRepo: clientRepo, logger: logger}
}

func (uc *GetClientUseCase) Execute(ctx context.Context, scope authorization.Scope, clientID uint) (*dto.ClientDTO, error) {
	c, err := loadClient(ctx, uc.clientRepo, scope, clientID)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to get client", err, "client_id", clientID)
	}
	return dto.ToClientDTO(c), nil
}

type ListClientsQuery struct {
	Scope     authorization.Scope
	Status    *client.Status
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

type ListClientsResult struct {
	Clients  []*dto.ClientDTO `json:"clients"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

type ListClientsUseCase struct {
	clientRepo client.Repository
	logger     logger.Interface
}

func NewListClientsUseCase(clientRepo client.Repository, logger logger.Interface) *ListClientsUseCase {
	return &ListClientsUseCase{clientRepo: clientRepo, logger: logger}
}

func (uc *ListClientsUseCase) Execute(ctx context.Context, q ListClientsQuery) (*ListClientsResult, error) {
	filter := client.Filter{
		BaseFilter: query.NewBaseFilter(query.WithPage(q.Page, q.PageSize), query.WithSort(q.SortBy, q.SortOrder)),
		OwnerID:    q.Scope.OwnerID(),
		Status:     q.Status,
		Search:     q.Search,
	}

	items, total, err := uc.clientRepo.List(ctx, filter)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to list clients", err)
	}

	return &ListClientsResult{
		Clients:  dto.ToClientDTOs(items),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}
