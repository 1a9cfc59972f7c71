package valueobjects

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/orris-inc/backoffice/internal/shared/biztime"
)

var (
	// ErrInvalidBillingCycle is returned when billing cycle is not valid
	ErrInvalidBillingCycle = errors.New("invalid billing cycle")
)

type BillingCycle string

const (
	BillingCycleMonthly    BillingCycle = "monthly"
	BillingCycleQuarterly  BillingCycle = "quarterly"
	BillingCycleHalfYearly BillingCycle = "half_yearly"
	BillingCycleYearly     BillingCycle = "yearly"
)

var billingCycleMonths = map[BillingCycle]int{
	BillingCycleMonthly:    1,
	BillingCycleQuarterly:  3,
	BillingCycleHalfYearly: 6,
	BillingCycleYearly:     12,
}

// ParseBillingCycle accepts case-insensitive input and the "half-yearly" spelling.
func ParseBillingCycle(value string) (BillingCycle, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_")
	cycle := BillingCycle(normalized)

	if !cycle.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidBillingCycle, value)
	}
	return cycle, nil
}

func (b BillingCycle) String() string {
	return string(b)
}

func (b BillingCycle) IsValid() bool {
	_, ok := billingCycleMonths[b]
	return ok
}

// Months is the cycle length in calendar months, 0 for an invalid cycle.
func (b BillingCycle) Months() int {
	return billingCycleMonths[b]
}

// Matches reports whether months agrees with the cycle.
func (b BillingCycle) Matches(months int) bool {
	return b.IsValid() && b.Months() == months
}

// NextBillingDate advances from by one cycle in calendar months.
func (b BillingCycle) NextBillingDate(from time.Time) time.Time {
	return biztime.AddMonths(from, b.Months())
}

func (b *BillingCycle) UnmarshalJSON(data []byte) error {
	str := strings.Trim(string(data), `"`)
	cycle, err := ParseBillingCycle(str)
	if err != nil {
		return err
	}
	*b = cycle
	return nil
}
