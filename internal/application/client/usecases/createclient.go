package usecases

import (
	"context"

	"github.com/orris-inc/backoffice/internal/application/client/dto"
	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

type CreateClientCommand struct {
	Scope         authorization.Scope
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

// CreateClientUseCase registers a client owned by the caller.
type CreateClientUseCase struct {
	clientRepo client.Repository
	logger     logger.Interface
}

func NewCreateClientUseCase(clientRepo client.Repository, logger logger.Interface) *CreateClientUseCase {
	return &CreateClientUseCase{clientRepo: clientRepo, logger: logger}
}

func (uc *CreateClientUseCase) Execute(ctx context.Context, cmd CreateClientCommand) (*dto.ClientDTO, error) {
	c, err := client.NewClient(client.Profile{
		Name:          cmd.Name,
		ContactPerson: cmd.ContactPerson,
		Email:         cmd.Email,
		Phone:         cmd.Phone,
		Address:       cmd.Address,
	}, cmd.Scope.UserID)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to create client", err)
	}

	exists, err := uc.clientRepo.ExistsByEmail(ctx, c.Email(), 0)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to check client email", err)
	}
	if exists {
		return nil, common.WrapError(uc.logger, "failed to create client", client.ErrClientEmailExists)
	}

	if err := uc.clientRepo.Create(ctx, c); err != nil {
		return nil, common.WrapError(uc.logger, "failed to create client", err, "email", c.Email())
	}

	uc.logger.Infow("client created", "client_id", c.ID(), "created_by", c.CreatedBy())
	return dto.ToClientDTO(c), nil
}
