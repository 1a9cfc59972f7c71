package subscription

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
)

// Subscription binds a client to a plan for a date range with a user count
// and the amounts computed for that billing period.
type Subscription struct {
	id                uint
	clientID          uint
	planID            uint
	startDate         time.Time
	endDate           time.Time
	billingCycle      vo.BillingCycle
	billingMonths     int
	numUsers          int
	amountPaid        decimal.Decimal
	discount          decimal.Decimal
	finalAmount       decimal.Decimal
	paymentStatus     vo.PaymentStatus
	status            vo.SubscriptionStatus
	autoRenew         bool
	paymentReceivedAt *time.Time
	nextPaymentDue    *time.Time
	cancelledAt       *time.Time
	cancelReason      string
	createdBy         uint
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// NewSubscriptionParams are the create inputs. A nil StartDate means today,
// a nil EndDate means StartDate plus the plan's billing months.
type NewSubscriptionParams struct {
	ClientID      uint
	Plan          *Plan
	NumUsers      int
	StartDate     *time.Time
	EndDate       *time.Time
	Discount      decimal.Decimal
	PaymentStatus vo.PaymentStatus
	Trial         bool
	AutoRenew     bool
	CreatedBy     uint
}

func NewSubscription(p NewSubscriptionParams) (*Subscription, error) {
	if p.ClientID == 0 {
		return nil, fmt.Errorf("client ID is required")
	}
	if p.Plan == nil || p.Plan.ID() == 0 {
		return nil, fmt.Errorf("plan is required")
	}
	if !p.Plan.IsActive() {
		return nil, ErrPlanInactive
	}

	start := biztime.Today()
	if p.StartDate != nil {
		start = p.StartDate.UTC()
	}
	end := biztime.AddMonths(start, p.Plan.BillingMonths())
	if p.EndDate != nil {
		end = p.EndDate.UTC()
	}
	if _, err := NewDateRange(start, end); err != nil {
		return nil, err
	}

	amounts, err := ComputeAmounts(p.Plan, p.NumUsers, p.Discount)
	if err != nil {
		return nil, err
	}

	paymentStatus := p.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = vo.PaymentStatusPending
	}
	if !paymentStatus.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", paymentStatus)
	}

	status := vo.StatusActive
	if p.Trial {
		status = vo.StatusTrial
	}

	now := biztime.NowUTC()
	s := &Subscription{
		clientID:      p.ClientID,
		planID:        p.Plan.ID(),
		startDate:     start,
		endDate:       end,
		billingCycle:  p.Plan.BillingCycle(),
		billingMonths: p.Plan.BillingMonths(),
		numUsers:      p.NumUsers,
		amountPaid:    amounts.AmountPaid,
		discount:      amounts.Discount,
		finalAmount:   amounts.FinalAmount,
		paymentStatus: vo.PaymentStatusPending,
		status:        status,
		autoRenew:     p.AutoRenew,
		createdBy:     p.CreatedBy,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}
	if paymentStatus != vo.PaymentStatusPending {
		s.setPaymentStatus(paymentStatus, now)
	}
	return s, nil
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(
	id, clientID, planID uint,
	startDate, endDate time.Time,
	billingCycle vo.BillingCycle,
	billingMonths, numUsers int,
	amountPaid, discount, finalAmount decimal.Decimal,
	paymentStatus vo.PaymentStatus,
	status vo.SubscriptionStatus,
	autoRenew bool,
	paymentReceivedAt, nextPaymentDue, cancelledAt *time.Time,
	cancelReason string,
	createdBy uint,
	version int,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}
	if !paymentStatus.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", paymentStatus)
	}

	return &Subscription{
		id:                id,
		clientID:          clientID,
		planID:            planID,
		startDate:         startDate.UTC(),
		endDate:           endDate.UTC(),
		billingCycle:      billingCycle,
		billingMonths:     billingMonths,
		numUsers:          numUsers,
		amountPaid:        amountPaid,
		discount:          discount,
		finalAmount:       finalAmount,
		paymentStatus:     paymentStatus,
		status:            status,
		autoRenew:         autoRenew,
		paymentReceivedAt: paymentReceivedAt,
		nextPaymentDue:    nextPaymentDue,
		cancelledAt:       cancelledAt,
		cancelReason:      cancelReason,
		createdBy:         createdBy,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                        { return s.id }
func (s *Subscription) ClientID() uint                  { return s.clientID }
func (s *Subscription) PlanID() uint                    { return s.planID }
func (s *Subscription) StartDate() time.Time            { return s.startDate }
func (s *Subscription) EndDate() time.Time              { return s.endDate }
func (s *Subscription) BillingCycle() vo.BillingCycle   { return s.billingCycle }
func (s *Subscription) BillingMonths() int              { return s.billingMonths }
func (s *Subscription) NumUsers() int                   { return s.numUsers }
func (s *Subscription) AmountPaid() decimal.Decimal     { return s.amountPaid }
func (s *Subscription) Discount() decimal.Decimal       { return s.discount }
func (s *Subscription) FinalAmount() decimal.Decimal    { return s.finalAmount }
func (s *Subscription) PaymentStatus() vo.PaymentStatus { return s.paymentStatus }
func (s *Subscription) Status() vo.SubscriptionStatus   { return s.status }
func (s *Subscription) AutoRenew() bool                 { return s.autoRenew }
func (s *Subscription) PaymentReceivedAt() *time.Time   { return s.paymentReceivedAt }
func (s *Subscription) NextPaymentDue() *time.Time      { return s.nextPaymentDue }
func (s *Subscription) CancelledAt() *time.Time         { return s.cancelledAt }
func (s *Subscription) CancelReason() string            { return s.cancelReason }
func (s *Subscription) CreatedBy() uint                 { return s.createdBy }
func (s *Subscription) Version() int                    { return s.version }
func (s *Subscription) CreatedAt() time.Time            { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time            { return s.updatedAt }

// Range returns the subscription's inclusive date range.
func (s *Subscription) Range() DateRange {
	return DateRange{Start: s.startDate, End: s.endDate}
}

// NeedsOverlapCheck reports whether the subscription currently blocks its
// client's calendar and so must be validated against other active rows.
func (s *Subscription) NeedsOverlapCheck() bool {
	return s.status.OccupiesDates() || s.status == vo.StatusTrial
}

func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// Changes is a partial update; nil fields are left untouched. Plan is the
// plan to price against: the current plan, or a different one to switch to.
type Changes struct {
	Plan          *Plan
	StartDate     *time.Time
	EndDate       *time.Time
	NumUsers      *int
	Discount      *decimal.Decimal
	PaymentStatus *vo.PaymentStatus
	AutoRenew     *bool
}

// ChangeResult tells the caller which follow-up checks and ledger entries apply.
type ChangeResult struct {
	PlanChanged    bool
	DatesChanged   bool
	Repriced       bool
	BecamePaid     bool
	BecameActive   bool
	PreviousPlanID uint
}

// ApplyChanges updates the subscription in place. Cancelled subscriptions
// are terminal and reject every change.
func (s *Subscription) ApplyChanges(c Changes) (ChangeResult, error) {
	var res ChangeResult
	if s.status.IsTerminal() {
		return res, ErrAlreadyCancelled
	}
	if c.Plan == nil {
		return res, fmt.Errorf("plan is required to apply changes")
	}

	next := *s
	now := biztime.NowUTC()

	if c.Plan.ID() != s.planID {
		if !c.Plan.IsActive() {
			return res, ErrPlanInactive
		}
		res.PlanChanged = true
		res.PreviousPlanID = s.planID
		next.planID = c.Plan.ID()
		next.billingCycle = c.Plan.BillingCycle()
		next.billingMonths = c.Plan.BillingMonths()
	}

	if c.StartDate != nil && !c.StartDate.UTC().Equal(s.startDate) {
		next.startDate = c.StartDate.UTC()
		res.DatesChanged = true
	}
	if c.EndDate != nil && !c.EndDate.UTC().Equal(s.endDate) {
		next.endDate = c.EndDate.UTC()
		res.DatesChanged = true
	}
	if res.DatesChanged {
		if _, err := NewDateRange(next.startDate, next.endDate); err != nil {
			return res, err
		}
	}

	if c.NumUsers != nil && *c.NumUsers != s.numUsers {
		next.numUsers = *c.NumUsers
		res.Repriced = true
	}
	if c.Discount != nil && !c.Discount.Equal(s.discount) {
		next.discount = *c.Discount
		res.Repriced = true
	}
	if res.PlanChanged {
		res.Repriced = true
	}
	if res.Repriced {
		amounts, err := ComputeAmounts(c.Plan, next.numUsers, next.discount)
		if err != nil {
			return res, err
		}
		next.amountPaid = amounts.AmountPaid
		next.finalAmount = amounts.FinalAmount
	}

	if c.AutoRenew != nil {
		next.autoRenew = *c.AutoRenew
	}

	if c.PaymentStatus != nil && *c.PaymentStatus != s.paymentStatus {
		if !c.PaymentStatus.IsValid() {
			return res, fmt.Errorf("invalid payment status: %s", *c.PaymentStatus)
		}
		prevStatus := next.status
		next.setPaymentStatus(*c.PaymentStatus, now)
		res.BecamePaid = c.PaymentStatus.IsPaid()
		res.BecameActive = prevStatus != vo.StatusActive && next.status == vo.StatusActive
	}

	next.updatedAt = now
	next.version++
	*s = next
	return res, nil
}

// MarkPaid records a received payment: stamps the receipt time, promotes a
// trial to active and, with auto renew on, schedules the next due date.
// It is a no-op when the subscription is already paid.
func (s *Subscription) MarkPaid() (becameActive bool, err error) {
	if s.status.IsTerminal() {
		return false, ErrAlreadyCancelled
	}
	if s.paymentStatus.IsPaid() {
		return false, nil
	}
	prev := s.status
	now := biztime.NowUTC()
	s.setPaymentStatus(vo.PaymentStatusPaid, now)
	s.updatedAt = now
	s.version++
	return prev != vo.StatusActive && s.status == vo.StatusActive, nil
}

// SetPaymentStatus moves the billing state without the paid side effects.
// Used when a payment record fails or is refunded.
func (s *Subscription) SetPaymentStatus(status vo.PaymentStatus) error {
	if s.status.IsTerminal() {
		return ErrAlreadyCancelled
	}
	if !status.IsValid() {
		return fmt.Errorf("invalid payment status: %s", status)
	}
	if status.IsPaid() {
		_, err := s.MarkPaid()
		return err
	}
	if s.paymentStatus == status {
		return nil
	}
	s.paymentStatus = status
	s.updatedAt = biztime.NowUTC()
	s.version++
	return nil
}

func (s *Subscription) setPaymentStatus(status vo.PaymentStatus, now time.Time) {
	wasPaid := s.paymentStatus.IsPaid()
	s.paymentStatus = status
	if !status.IsPaid() || wasPaid {
		return
	}

	received := now
	s.paymentReceivedAt = &received
	if s.status == vo.StatusTrial {
		s.status = vo.StatusActive
	}
	if s.autoRenew {
		due := biztime.AddMonths(s.startDate, s.billingMonths)
		s.nextPaymentDue = &due
	}
}

// Cancel ends the subscription permanently and disables auto renew.
func (s *Subscription) Cancel(reason string) error {
	if s.status.IsTerminal() {
		return ErrAlreadyCancelled
	}
	if !s.status.CanTransitionTo(vo.StatusCancelled) {
		return ErrInvalidTransition(s.status.String(), vo.StatusCancelled.String())
	}

	now := biztime.NowUTC()
	s.status = vo.StatusCancelled
	s.autoRenew = false
	s.nextPaymentDue = nil
	s.cancelledAt = &now
	s.cancelReason = reason
	s.updatedAt = now
	s.version++
	return nil
}

// Renew extends the subscription in place by one billing cycle from its
// current end date and re-prices it on the plan's current price. The
// discount resets to zero unless one is supplied, and the new period is
// unpaid. It returns the end date before renewal.
func (s *Subscription) Renew(plan *Plan, discount *decimal.Decimal) (time.Time, error) {
	previousEnd := s.endDate
	if s.status.IsTerminal() {
		return previousEnd, ErrCannotRenewCancelled
	}
	if !s.status.CanRenew() {
		return previousEnd, ErrInvalidTransition(s.status.String(), vo.StatusActive.String())
	}
	if plan == nil || plan.ID() != s.planID {
		return previousEnd, fmt.Errorf("renewal must price against the subscription's own plan")
	}

	d := decimal.Zero
	if discount != nil {
		d = *discount
	}
	amounts, err := ComputeAmounts(plan, s.numUsers, d)
	if err != nil {
		return previousEnd, err
	}

	s.endDate = biztime.AddMonths(s.endDate, s.billingMonths)
	s.amountPaid = amounts.AmountPaid
	s.discount = amounts.Discount
	s.finalAmount = amounts.FinalAmount
	s.paymentStatus = vo.PaymentStatusPending
	s.status = vo.StatusActive
	s.nextPaymentDue = nil
	s.updatedAt = biztime.NowUTC()
	s.version++
	return previousEnd, nil
}
