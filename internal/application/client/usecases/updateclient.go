package usecases

import (
	"context"

	"github.com/orris-inc/backoffice/internal/application/client/dto"
	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	apperrors "github.com/orris-inc/backoffice/internal/shared/errors"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// UpdateClientCommand is a partial profile update; nil fields are unchanged.
type UpdateClientCommand struct {
	Scope         authorization.Scope
	ClientID      uint
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

type UpdateClientUseCase struct {
	clientRepo client.Repository
	logger     logger.Interface
}

func NewUpdateClientUseCase(clientRepo client.Repository, logger logger.Interface) *UpdateClientUseCase {
	return &UpdateClientUseCase{clientRepo: clientRepo, logger: logger}
}

func (uc *UpdateClientUseCase) Execute(ctx context.Context, cmd UpdateClientCommand) (*dto.ClientDTO, error) {
	c, err := loadClient(ctx, uc.clientRepo, cmd.Scope, cmd.ClientID)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to get client", err, "client_id", cmd.ClientID)
	}

	p := c.Profile()
	setIfPresent(&p.Name, cmd.Name)
	setIfPresent(&p.ContactPerson, cmd.ContactPerson)
	setIfPresent(&p.Email, cmd.Email)
	setIfPresent(&p.Phone, cmd.Phone)
	setIfPresent(&p.Address, cmd.Address)

	previousEmail := c.Email()
	if err := c.UpdateProfile(p); err != nil {
		return nil, common.WrapError(uc.logger, "failed to update client", err, "client_id", cmd.ClientID)
	}

	if c.Email() != previousEmail {
		exists, err := uc.clientRepo.ExistsByEmail(ctx, c.Email(), c.ID())
		if err != nil {
			return nil, common.WrapError(uc.logger, "failed to check client email", err, "client_id", cmd.ClientID)
		}
		if exists {
			return nil, common.WrapError(uc.logger, "failed to update client", client.ErrClientEmailExists)
		}
	}

	if err := uc.clientRepo.Update(ctx, c); err != nil {
		return nil, common.WrapError(uc.logger, "failed to update client", err, "client_id", cmd.ClientID)
	}

	uc.logger.Infow("client updated", "client_id", c.ID())
	return dto.ToClientDTO(c), nil
}

type ChangeClientStatusCommand struct {
	Scope    authorization.Scope
	ClientID uint
	Status   client.Status
}

// ChangeClientStatusUseCase moves a client between active, inactive and
// suspended. Existing subscriptions are untouched; only new ones are gated.
type ChangeClientStatusUseCase struct {
	clientRepo client.Repository
	logger     logger.Interface
}

func NewChangeClientStatusUseCase(clientRepo client.Repository, logger logger.Interface) *ChangeClientStatusUseCase {
	return &ChangeClientStatusUseCase{clientRepo: clientRepo, logger: logger}
}

func (uc *ChangeClientStatusUseCase) Execute(ctx context.Context, cmd ChangeClientStatusCommand) (*dto.ClientDTO, error) {
	c, err := loadClient(ctx, uc.clientRepo, cmd.Scope, cmd.ClientID)
	if err != nil {
		return nil, common.WrapError(uc.logger, "failed to get client", err, "client_id", cmd.ClientID)
	}

	previous := c.Status()
	if err := c.ChangeStatus(cmd.Status); err != nil {
		return nil, common.WrapError(uc.logger, "failed to change client status", err, "client_id", cmd.ClientID)
	}
	if previous == c.Status() {
		return dto.ToClientDTO(c), nil
	}

	if err := uc.clientRepo.Update(ctx, c); err != nil {
		return nil, common.WrapError(uc.logger, "failed to change client status", err, "client_id", cmd.ClientID)
	}

	uc.logger.Infow("client status changed", "client_id", c.ID(), "from", previous, "to", c.Status())
	return dto.ToClientDTO(c), nil
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// loadClient returns NotFound for a missing client and Forbidden for one
// owned by another user.
func loadClient(ctx context.Context, repo client.Repository, scope authorization.Scope, id uint) (*client.Client, error) {
	c, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperrors.NewNotFoundError("client not found").WithCause(client.ErrClientNotFound)
	}
	if err := common.CheckClientAccess(scope, c); err != nil {
		return nil, err
	}
	return c, nil
}
