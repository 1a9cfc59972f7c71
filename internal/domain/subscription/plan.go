package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
)

// Plan is a priced subscription template. Its billing cycle is fixed at
// creation so that a subscription's copied billing_months always agrees
// with its plan.
type Plan struct {
	id            uint
	name          string
	description   string
	pricePerUser  decimal.Decimal
	billingCycle  vo.BillingCycle
	billingMonths int
	minUsers      int
	maxUsers      int
	moduleAccess  map[string]bool
	isActive      bool
	createdAt     time.Time
	updatedAt     time.Time
}

type NewPlanParams struct {
	Name          string
	Description   string
	PricePerUser  decimal.Decimal
	BillingCycle  vo.BillingCycle
	BillingMonths int // zero derives it from BillingCycle
	MinUsers      int
	MaxUsers      int
	ModuleAccess  map[string]bool
}

func NewPlan(p NewPlanParams) (*Plan, error) {
	if p.BillingMonths == 0 {
		p.BillingMonths = p.BillingCycle.Months()
	}
	if !p.BillingCycle.IsValid() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, vo.ErrInvalidBillingCycle)
	}
	if !p.BillingCycle.Matches(p.BillingMonths) {
		return nil, fmt.Errorf("%w: billing_months %d does not match %s cycle", ErrInvalidPlan, p.BillingMonths, p.BillingCycle)
	}

	now := biztime.NowUTC()
	plan := &Plan{
		billingCycle:  p.BillingCycle,
		billingMonths: p.BillingMonths,
		isActive:      true,
		createdAt:     now,
		updatedAt:     now,
	}
	if err := plan.apply(PlanChanges{
		Name:         &p.Name,
		Description:  &p.Description,
		PricePerUser: &p.PricePerUser,
		MinUsers:     &p.MinUsers,
		MaxUsers:     &p.MaxUsers,
		ModuleAccess: p.ModuleAccess,
	}); err != nil {
		return nil, err
	}
	return plan, nil
}

func ReconstructPlan(
	id uint,
	name, description string,
	pricePerUser decimal.Decimal,
	billingCycle vo.BillingCycle,
	billingMonths, minUsers, maxUsers int,
	moduleAccess map[string]bool,
	isActive bool,
	createdAt, updatedAt time.Time,
) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !billingCycle.IsValid() {
		return nil, fmt.Errorf("invalid billing cycle for plan %d: %s", id, billingCycle)
	}
	if moduleAccess == nil {
		moduleAccess = map[string]bool{}
	}
	return &Plan{
		id:            id,
		name:          name,
		description:   description,
		pricePerUser:  pricePerUser,
		billingCycle:  billingCycle,
		billingMonths: billingMonths,
		minUsers:      minUsers,
		maxUsers:      maxUsers,
		moduleAccess:  moduleAccess,
		isActive:      isActive,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (p *Plan) ID() uint                      { return p.id }
func (p *Plan) Name() string                  { return p.name }
func (p *Plan) Description() string           { return p.description }
func (p *Plan) PricePerUser() decimal.Decimal { return p.pricePerUser }
func (p *Plan) BillingCycle() vo.BillingCycle { return p.billingCycle }
func (p *Plan) BillingMonths() int            { return p.billingMonths }
func (p *Plan) MinUsers() int                 { return p.minUsers }
func (p *Plan) MaxUsers() int                 { return p.maxUsers }
func (p *Plan) IsActive() bool                { return p.isActive }
func (p *Plan) CreatedAt() time.Time          { return p.createdAt }
func (p *Plan) UpdatedAt() time.Time          { return p.updatedAt }

// ModuleAccess returns a copy of the feature entitlement map.
func (p *Plan) ModuleAccess() map[string]bool {
	out := make(map[string]bool, len(p.moduleAccess))
	for k, v := range p.moduleAccess {
		out[k] = v
	}
	return out
}

func (p *Plan) HasModule(name string) bool {
	return p.moduleAccess[name]
}

func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}

// PlanChanges carries the mutable plan fields; nil means unchanged.
type PlanChanges struct {
	Name         *string
	Description  *string
	PricePerUser *decimal.Decimal
	MinUsers     *int
	MaxUsers     *int
	ModuleAccess map[string]bool
}

func (p *Plan) Update(c PlanChanges) error {
	if err := p.apply(c); err != nil {
		return err
	}
	p.updatedAt = biztime.NowUTC()
	return nil
}

func (p *Plan) apply(c PlanChanges) error {
	next := *p
	if c.Name != nil {
		next.name = strings.TrimSpace(*c.Name)
	}
	if c.Description != nil {
		next.description = *c.Description
	}
	if c.PricePerUser != nil {
		next.pricePerUser = *c.PricePerUser
	}
	if c.MinUsers != nil {
		next.minUsers = *c.MinUsers
	}
	if c.MaxUsers != nil {
		next.maxUsers = *c.MaxUsers
	}
	if c.ModuleAccess != nil {
		next.moduleAccess = make(map[string]bool, len(c.ModuleAccess))
		for k, v := range c.ModuleAccess {
			next.moduleAccess[k] = v
		}
	}
	if next.moduleAccess == nil {
		next.moduleAccess = map[string]bool{}
	}

	switch {
	case next.name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidPlan)
	case len(next.name) > 100:
		return fmt.Errorf("%w: name too long (max 100 characters)", ErrInvalidPlan)
	case next.pricePerUser.IsNegative():
		return fmt.Errorf("%w: price_per_user cannot be negative", ErrInvalidPlan)
	case !next.pricePerUser.Equal(next.pricePerUser.Round(2)):
		return fmt.Errorf("%w: price_per_user has more than 2 decimal places", ErrInvalidPlan)
	case next.minUsers < 1:
		return fmt.Errorf("%w: min_users must be at least 1", ErrInvalidPlan)
	case next.minUsers > next.maxUsers:
		return fmt.Errorf("%w: min_users %d exceeds max_users %d", ErrInvalidPlan, next.minUsers, next.maxUsers)
	}

	*p = next
	return nil
}

func (p *Plan) Activate() {
	if !p.isActive {
		p.isActive = true
		p.updatedAt = biztime.NowUTC()
	}
}

func (p *Plan) Deactivate() {
	if p.isActive {
		p.isActive = false
		p.updatedAt = biztime.NowUTC()
	}
}
