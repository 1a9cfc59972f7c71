package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/backoffice/internal/application/common"
	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	"github.com/orris-inc/backoffice/internal/shared/db"
	apperrors "github.com/orris-inc/backoffice/internal/shared/errors"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// DeleteClientUseCase soft-deletes a client that has no active or trial
// subscription. The client row lock keeps a concurrent create from slipping
// a subscription in between the count and the delete.
type DeleteClientUseCase struct {
	clientRepo       client.Repository
	subscriptionRepo subscription.SubscriptionRepository
	txMgr            *db.TransactionManager
	logger           logger.Interface
}

func NewDeleteClientUseCase(
	clientRepo client.Repository,
	subscriptionRepo subscription.SubscriptionRepository,
	txMgr *db.TransactionManager,
	logger logger.Interface,
) *DeleteClientUseCase {
	return &DeleteClientUseCase{
		clientRepo:       clientRepo,
		subscriptionRepo: subscriptionRepo,
		txMgr:            txMgr,
		logger:           logger,
	}
}

func (uc *DeleteClientUseCase) Execute(ctx context.Context, scope authorization.Scope, clientID uint) error {
	err := uc.txMgr.RunInTransaction(ctx, func(ctx context.Context) error {
		c, err := uc.clientRepo.GetByIDForUpdate(ctx, clientID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperrors.NewNotFoundError("client not found").WithCause(client.ErrClientNotFound)
		}
		if err := common.CheckClientAccess(scope, c); err != nil {
			return err
		}

		active, err := uc.subscriptionRepo.CountActiveByClient(ctx, clientID)
		if err != nil {
			return err
		}
		if active > 0 {
			return fmt.Errorf("%w: %d active", client.ErrClientHasSubscriptions, active)
		}
		return uc.clientRepo.Delete(ctx, clientID)
	})
	if err != nil {
		return common.WrapError(uc.logger, "failed to delete client", err, "client_id", clientID)
	}
	return nil
}
