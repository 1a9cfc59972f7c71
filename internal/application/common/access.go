package common

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	"github.com/orris-inc/backoffice/internal/shared/authorization"
	apperrors "github.com/orris-inc/backoffice/internal/shared/errors"
)

// ErrAccessForbidden is the cause attached to 403 responses for records that
// exist but belong to another user's client.
var ErrAccessForbidden = errors.New("access forbidden")

// CheckClientAccess returns a forbidden AppError when scope may not see c.
func CheckClientAccess(scope authorization.Scope, c *client.Client) error {
	if !scope.CanAccess(c.CreatedBy()) {
		return apperrors.NewForbiddenError("access to this client is forbidden").WithCause(ErrAccessForbidden)
	}
	return nil
}

// SubscriptionLoader resolves a subscription together with its client and
// applies the caller's row scope.
type SubscriptionLoader struct {
	subscriptions subscription.SubscriptionRepository
	clients       client.Repository
}

func NewSubscriptionLoader(subscriptions subscription.SubscriptionRepository, clients client.Repository) *SubscriptionLoader {
	return &SubscriptionLoader{subscriptions: subscriptions, clients: clients}
}

// Load returns NotFound for a missing subscription and Forbidden for one the
// caller may not see. With forUpdate the client row is locked, which
// serialises every write touching that client's calendar.
func (l *SubscriptionLoader) Load(ctx context.Context, scope authorization.Scope, id uint, forUpdate bool) (*subscription.Subscription, *client.Client, error) {
	sub, err := l.subscriptions.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, nil, apperrors.NewNotFoundError("subscription not found").WithCause(subscription.ErrSubscriptionNotFound)
	}

	c, err := l.loadClient(ctx, sub.ClientID(), forUpdate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get client: %w", err)
	}
	if c == nil {
		// the owning client was deleted; only unrestricted callers still see the row
		if scope.Restricted() {
			return nil, nil, apperrors.NewForbiddenError("access to this subscription is forbidden").WithCause(ErrAccessForbidden)
		}
		return sub, nil, nil
	}
	if !scope.CanAccess(c.CreatedBy()) {
		return nil, nil, apperrors.NewForbiddenError("access to this subscription is forbidden").WithCause(ErrAccessForbidden)
	}
	return sub, c, nil
}

// LoadClient resolves a client for a write that depends on it, applying scope.
func (l *SubscriptionLoader) LoadClient(ctx context.Context, scope authorization.Scope, id uint, forUpdate bool) (*client.Client, error) {
	c, err := l.loadClient(ctx, id, forUpdate)
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	if c == nil {
		return nil, apperrors.NewNotFoundError("client not found").WithCause(client.ErrClientNotFound)
	}
	if err := CheckClientAccess(scope, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (l *SubscriptionLoader) loadClient(ctx context.Context, id uint, forUpdate bool) (*client.Client, error) {
	if forUpdate {
		return l.clients.GetByIDForUpdate(ctx, id)
	}
	return l.clients.GetByID(ctx, id)
}
