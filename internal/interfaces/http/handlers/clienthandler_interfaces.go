package handlers

import (
	"context"

	clientdto "github.com/orris-inc/backoffice/internal/application/client/dto"
	"github.com/orris-inc/backoffice/internal/application/client/usecases"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
)

// Use case interfaces for ClientHandler

type createClientUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateClientCommand) (*clientdto.ClientDTO, error)
}

type updateClientUseCase interface {
	Execute(ctx context.Context, cmd usecases.UpdateClientCommand) (*clientdto.ClientDTO, error)
}

type changeClientStatusUseCase interface {
	Execute(ctx context.Context, cmd usecases.ChangeClientStatusCommand) (*clientdto.ClientDTO, error)
}

type getClientUseCase interface {
	Execute(ctx context.Context, scope authorization.Scope, clientID uint) (*clientdto.ClientDTO, error)
}

type listClientsUseCase interface {
	Execute(ctx context.Context, query usecases.ListClientsQuery) (*usecases.ListClientsResult, error)
}

type deleteClientUseCase interface {
	Execute(ctx context.Context, scope authorization.Scope, clientID uint) error
}
