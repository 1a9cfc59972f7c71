package mappers

import (
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/infrastructure/persistence/models"
	"github.com/orris-inc/backoffice/internal/shared/mapper"
)

func ClientToModel(entity *client.Client) *models.ClientModel {
	p := entity.Profile()
	return &models.ClientModel{
		ID:            entity.ID(),
		Name:          p.Name,
		ContactPerson: p.ContactPerson,
		Email:         p.Email,
		Phone:         p.Phone,
		Address:       p.Address,
		Status:        entity.Status().String(),
		CreatedBy:     entity.CreatedBy(),
		CreatedAt:     entity.CreatedAt(),
		UpdatedAt:     entity.UpdatedAt(),
	}
}

func ClientToEntity(model *models.ClientModel) *client.Client {
	if model == nil {
		return nil
	}
	return client.ReconstructClient(
		model.ID,
		client.Profile{
			Name:          model.Name,
			ContactPerson: model.ContactPerson,
			Email:         model.Email,
			Phone:         model.Phone,
			Address:       model.Address,
		},
		client.Status(model.Status),
		model.CreatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func ClientsToEntities(items []*models.ClientModel) []*client.Client {
	return mapper.MapSlice(items, ClientToEntity)
}
