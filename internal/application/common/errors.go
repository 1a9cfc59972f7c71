// Package common holds the pieces every billing use case shares: domain
// error translation, the row-level access check and the post-commit
// notification contracts.
package common

import (
	"errors"

	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/domain/payment"
	"github.com/orris-inc/backoffice/internal/domain/subscription"
	apperrors "github.com/orris-inc/backoffice/internal/shared/errors"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

var (
	notFoundErrors = []error{
		subscription.ErrSubscriptionNotFound,
		subscription.ErrPlanNotFound,
		client.ErrClientNotFound,
		payment.ErrPaymentNotFound,
	}

	conflictErrors = []error{
		subscription.ErrPlanInactive,
		subscription.ErrPlanNameExists,
		subscription.ErrOverlappingSubscription,
		subscription.ErrAlreadyCancelled,
		subscription.ErrCannotRenewCancelled,
		subscription.ErrInvalidStatusTransition,
		subscription.ErrConcurrentModification,
		client.ErrClientInactive,
		client.ErrClientHasSubscriptions,
		client.ErrClientEmailExists,
		payment.ErrInvalidTransition,
		payment.ErrSubscriptionClosed,
		payment.ErrConcurrentModification,
	}

	validationErrors = []error{
		subscription.ErrOutOfRangeUsers,
		subscription.ErrInvalidDateRange,
		subscription.ErrInvalidDiscount,
		subscription.ErrInvalidPlan,
		client.ErrInvalidClient,
		client.ErrInvalidStatus,
		payment.ErrInvalidMethod,
		payment.ErrInvalidAmount,
		payment.ErrReasonRequired,
	}
)

// TranslateError maps a domain error to its AppError. ok is false for
// anything unrecognised, which callers surface as an internal error.
func TranslateError(err error) (appErr *apperrors.AppError, ok bool) {
	if err == nil {
		return nil, false
	}
	if existing := apperrors.GetAppError(err); existing != nil {
		return existing, true
	}

	switch {
	case isAny(err, notFoundErrors):
		return apperrors.NewNotFoundError(err.Error()).WithCause(err), true
	case isAny(err, conflictErrors):
		return apperrors.NewConflictError(err.Error()).WithCause(err), true
	case isAny(err, validationErrors):
		return apperrors.NewValidationError(err.Error()).WithCause(err), true
	}
	return nil, false
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WrapError translates err for the caller. Unrecognised errors are storage
// or programming failures: they are logged and replaced by a generic
// internal error that keeps err as its cause.
func WrapError(log logger.Interface, msg string, err error, keysAndValues ...interface{}) error {
	if appErr, ok := TranslateError(err); ok {
		return appErr
	}
	log.Errorw(msg, append([]interface{}{"error", err}, keysAndValues...)...)
	return apperrors.NewInternalError(msg).WithCause(err)
}
