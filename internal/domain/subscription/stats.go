package subscription

import (
	"github.com/shopspring/decimal"

	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
)

// Stats is a read-only rollup over current subscription rows.
type Stats struct {
	Total          int64
	ByStatus       map[vo.SubscriptionStatus]int64
	ByPayment      map[vo.PaymentStatus]int64
	BilledRevenue  decimal.Decimal // final_amount of every non-cancelled subscription
	CollectedTotal decimal.Decimal // final_amount of paid subscriptions
}

func NewStats() *Stats {
	return &Stats{
		ByStatus:       make(map[vo.SubscriptionStatus]int64),
		ByPayment:      make(map[vo.PaymentStatus]int64),
		BilledRevenue:  decimal.Zero,
		CollectedTotal: decimal.Zero,
	}
}

// Outstanding is billed revenue not yet collected.
func (s *Stats) Outstanding() decimal.Decimal {
	return s.BilledRevenue.Sub(s.CollectedTotal)
}
