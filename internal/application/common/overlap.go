package common

import (
	"context"

	"github.com/orris-inc/backoffice/internal/domain/subscription"
)

// EnsureNoOverlap fails with an OverlapError when another active
// subscription of the client intersects sub's range. Callers hold the
// client row lock.
func EnsureNoOverlap(ctx context.Context, repo subscription.SubscriptionRepository, sub *subscription.Subscription) error {
	conflict, err := repo.FindOverlapping(ctx, sub.ClientID(), sub.Range(), sub.ID())
	if err != nil {
		return err
	}
	if conflict != nil {
		return &subscription.OverlapError{
			ClientID:      sub.ClientID(),
			ConflictingID: conflict.ID(),
			Range:         conflict.Range(),
		}
	}
	return nil
}
