package subscription

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amounts is the billed total for one billing period.
type Amounts struct {
	AmountPaid  decimal.Decimal // price_per_user * num_users * billing_months
	Discount    decimal.Decimal
	FinalAmount decimal.Decimal // AmountPaid - Discount, not clamped at zero
}

// ComputeAmounts prices numUsers seats on plan for one billing period.
func ComputeAmounts(plan *Plan, numUsers int, discount decimal.Decimal) (Amounts, error) {
	if err := CheckUserBounds(plan, numUsers); err != nil {
		return Amounts{}, err
	}
	if err := validateDiscount(discount); err != nil {
		return Amounts{}, err
	}

	amountPaid := plan.PricePerUser().
		Mul(decimal.NewFromInt(int64(numUsers))).
		Mul(decimal.NewFromInt(int64(plan.BillingMonths())))

	return Amounts{
		AmountPaid:  amountPaid,
		Discount:    discount,
		FinalAmount: amountPaid.Sub(discount),
	}, nil
}

// CheckUserBounds enforces plan.MinUsers <= numUsers <= plan.MaxUsers.
func CheckUserBounds(plan *Plan, numUsers int) error {
	if numUsers < plan.MinUsers() || numUsers > plan.MaxUsers() {
		return &UserBoundError{
			PlanID:   plan.ID(),
			PlanName: plan.Name(),
			NumUsers: numUsers,
			MinUsers: plan.MinUsers(),
			MaxUsers: plan.MaxUsers(),
		}
	}
	return nil
}

func validateDiscount(d decimal.Decimal) error {
	if d.IsNegative() {
		return fmt.Errorf("%w: must not be negative", ErrInvalidDiscount)
	}
	if !d.Equal(d.Round(2)) {
		return fmt.Errorf("%w: more than 2 decimal places", ErrInvalidDiscount)
	}
	return nil
}
