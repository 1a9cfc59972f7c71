package valueobjects

import (
	"fmt"
	"strings"
)

type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusExpired   SubscriptionStatus = "expired"
	StatusCancelled SubscriptionStatus = "cancelled"
)

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusTrial:     true,
	StatusActive:    true,
	StatusExpired:   true,
	StatusCancelled: true,
}

var statusTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	StatusTrial:     {StatusActive, StatusCancelled},
	StatusActive:    {StatusActive, StatusExpired, StatusCancelled},
	StatusExpired:   {StatusActive, StatusCancelled},
	StatusCancelled: {},
}

func ParseSubscriptionStatus(value string) (SubscriptionStatus, error) {
	s := SubscriptionStatus(strings.ToLower(strings.TrimSpace(value)))
	if !ValidStatuses[s] {
		return "", fmt.Errorf("invalid subscription status: %q", value)
	}
	return s, nil
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) IsValid() bool {
	return ValidStatuses[s]
}

func (s SubscriptionStatus) IsTerminal() bool {
	return s == StatusCancelled
}

// OccupiesDates reports whether a subscription in this status blocks other
// subscriptions of the same client from overlapping its date range.
func (s SubscriptionStatus) OccupiesDates() bool {
	return s == StatusActive
}

func (s SubscriptionStatus) CanRenew() bool {
	return s == StatusActive || s == StatusTrial || s == StatusExpired
}

func (s SubscriptionStatus) CanTransitionTo(target SubscriptionStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
