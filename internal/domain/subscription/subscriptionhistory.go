package subscription

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
)

type EventType string

const (
	EventCreated         EventType = "created"
	EventUpdated         EventType = "updated"
	EventPlanChanged     EventType = "plan_changed"
	EventRenewed         EventType = "renewed"
	EventCancelled       EventType = "cancelled"
	EventPaymentReceived EventType = "payment_received"
	EventPaymentFailed   EventType = "payment_failed"
	EventRefunded        EventType = "refunded"
	// EventExpired rows are written by the sweep with actor 0.
	EventExpired EventType = "expired"
)

var validEventTypes = map[EventType]bool{
	EventCreated:         true,
	EventUpdated:         true,
	EventPlanChanged:     true,
	EventRenewed:         true,
	EventCancelled:       true,
	EventPaymentReceived: true,
	EventPaymentFailed:   true,
	EventRefunded:        true,
	EventExpired:         true,
}

var ErrInvalidEventType = errors.New("invalid event type")

// History is an immutable ledger row. Renewal extends a subscription in
// place, so the billing history of earlier periods lives here.
type History struct {
	id             uint
	subscriptionID uint
	eventType      EventType
	oldPlanID      *uint
	newPlanID      *uint
	previousEnd    *time.Time
	newEnd         *time.Time
	status         vo.SubscriptionStatus
	paymentStatus  vo.PaymentStatus
	finalAmount    decimal.Decimal
	reason         string
	metadata       map[string]interface{}
	actorID        uint
	createdAt      time.Time
}

// NewHistory snapshots sub after the event was applied to it.
func NewHistory(sub *Subscription, eventType EventType, actorID uint) (*History, error) {
	if sub == nil || sub.ID() == 0 {
		return nil, errors.New("subscription must be persisted before recording history")
	}
	if !validEventTypes[eventType] {
		return nil, ErrInvalidEventType
	}
	return &History{
		subscriptionID: sub.ID(),
		eventType:      eventType,
		status:         sub.Status(),
		paymentStatus:  sub.PaymentStatus(),
		finalAmount:    sub.FinalAmount(),
		metadata:       make(map[string]interface{}),
		actorID:        actorID,
		createdAt:      biztime.NowUTC(),
	}, nil
}

func ReconstructHistory(
	id, subscriptionID uint,
	eventType EventType,
	oldPlanID, newPlanID *uint,
	previousEnd, newEnd *time.Time,
	status vo.SubscriptionStatus,
	paymentStatus vo.PaymentStatus,
	finalAmount decimal.Decimal,
	reason string,
	metadata map[string]interface{},
	actorID uint,
	createdAt time.Time,
) *History {
	if metadata == nil {
		metadata = make(map[string]interface{})
	}
	return &History{
		id:             id,
		subscriptionID: subscriptionID,
		eventType:      eventType,
		oldPlanID:      oldPlanID,
		newPlanID:      newPlanID,
		previousEnd:    previousEnd,
		newEnd:         newEnd,
		status:         status,
		paymentStatus:  paymentStatus,
		finalAmount:    finalAmount,
		reason:         reason,
		metadata:       metadata,
		actorID:        actorID,
		createdAt:      createdAt,
	}
}

func (h *History) SetPlanChange(oldPlanID, newPlanID uint) {
	h.oldPlanID = &oldPlanID
	h.newPlanID = &newPlanID
}

func (h *History) SetPeriodChange(previousEnd, newEnd time.Time) {
	h.previousEnd = &previousEnd
	h.newEnd = &newEnd
}

func (h *History) SetReason(reason string) {
	h.reason = reason
}

func (h *History) AddMetadata(key string, value interface{}) {
	h.metadata[key] = value
}

func (h *History) SetID(id uint) {
	h.id = id
}

func (h *History) ID() uint                         { return h.id }
func (h *History) SubscriptionID() uint             { return h.subscriptionID }
func (h *History) EventType() EventType             { return h.eventType }
func (h *History) OldPlanID() *uint                 { return h.oldPlanID }
func (h *History) NewPlanID() *uint                 { return h.newPlanID }
func (h *History) PreviousEnd() *time.Time          { return h.previousEnd }
func (h *History) NewEnd() *time.Time               { return h.newEnd }
func (h *History) Status() vo.SubscriptionStatus    { return h.status }
func (h *History) PaymentStatus() vo.PaymentStatus  { return h.paymentStatus }
func (h *History) FinalAmount() decimal.Decimal     { return h.finalAmount }
func (h *History) Reason() string                   { return h.reason }
func (h *History) Metadata() map[string]interface{} { return h.metadata }
func (h *History) ActorID() uint                    { return h.actorID }
func (h *History) CreatedAt() time.Time             { return h.createdAt }
