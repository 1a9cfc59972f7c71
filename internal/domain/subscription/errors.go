package subscription

import (
	"errors"
	"fmt"
)

var (
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrPlanNotFound            = errors.New("subscription plan not found")
	ErrPlanInactive            = errors.New("subscription plan inactive")
	ErrPlanNameExists          = errors.New("plan name already exists")
	ErrOutOfRangeUsers         = errors.New("number of users outside plan bounds")
	ErrOverlappingSubscription = errors.New("overlapping subscription")
	ErrAlreadyCancelled        = errors.New("subscription already cancelled")
	ErrCannotRenewCancelled    = errors.New("cannot renew a cancelled subscription")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidDateRange        = errors.New("end date must be after start date")
	ErrInvalidDiscount         = errors.New("invalid discount")
	ErrInvalidPlan             = errors.New("invalid plan")
	ErrConcurrentModification  = errors.New("subscription was modified concurrently")
)

func ErrInvalidTransition(from, to string) error {
	return fmt.Errorf("%w: from %s to %s", ErrInvalidStatusTransition, from, to)
}

// UserBoundError reports a user count outside a plan's [MinUsers, MaxUsers].
type UserBoundError struct {
	PlanID   uint
	PlanName string
	NumUsers int
	MinUsers int
	MaxUsers int
}

func (e *UserBoundError) Error() string {
	if e.NumUsers < e.MinUsers {
		return fmt.Sprintf("plan %q (id %d) requires at least %d users, got %d", e.PlanName, e.PlanID, e.MinUsers, e.NumUsers)
	}
	return fmt.Sprintf("plan %q (id %d) allows at most %d users, got %d", e.PlanName, e.PlanID, e.MaxUsers, e.NumUsers)
}

func (e *UserBoundError) Is(target error) bool {
	return target == ErrOutOfRangeUsers
}

// Bound names the violated limit: "min_users" or "max_users".
func (e *UserBoundError) Bound() string {
	if e.NumUsers < e.MinUsers {
		return "min_users"
	}
	return "max_users"
}

// OverlapError names the active subscription whose dates collide with the candidate range.
type OverlapError struct {
	ClientID      uint
	ConflictingID uint
	Range         DateRange
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("client %d already has active subscription %d covering %s", e.ClientID, e.ConflictingID, e.Range)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlappingSubscription
}
