package dto

import (
	"time"

	"github.com/orris-inc/backoffice/internal/domain/subscription"
	vo "github.com/orris-inc/backoffice/internal/domain/subscription/valueobjects"
	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/mapper"
)

// Amounts are rendered as fixed two-decimal strings; dates as YYYY-MM-DD.

type SubscriptionDTO struct {
	ID                uint       `json:"id"`
	ClientID          uint       `json:"client_id"`
	PlanID            uint       `json:"plan_id"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	BillingCycle      string     `json:"billing_cycle"`
	BillingMonths     int        `json:"billing_months"`
	NumUsers          int        `json:"num_users"`
	AmountPaid        string     `json:"amount_paid"`
	Discount          string     `json:"discount"`
	FinalAmount       string     `json:"final_amount"`
	PaymentStatus     string     `json:"payment_status"`
	Status            string     `json:"subscription_status"`
	AutoRenew         bool       `json:"auto_renew"`
	PaymentReceivedAt *time.Time `json:"payment_received_at,omitempty"`
	NextPaymentDue    *string    `json:"next_payment_due,omitempty"`
	CancelledAt       *time.Time `json:"cancelled_at,omitempty"`
	CancelReason      string     `json:"cancel_reason,omitempty"`
	CreatedBy         uint       `json:"created_by"`
	Version           int        `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type PlanDTO struct {
	ID            uint            `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	PricePerUser  string          `json:"price_per_user"`
	BillingCycle  string          `json:"billing_cycle"`
	BillingMonths int             `json:"billing_months"`
	MinUsers      int             `json:"min_users"`
	MaxUsers      int             `json:"max_users"`
	ModuleAccess  map[string]bool `json:"module_access"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type HistoryDTO struct {
	ID             uint                   `json:"id"`
	SubscriptionID uint                   `json:"subscription_id"`
	EventType      string                 `json:"event_type"`
	OldPlanID      *uint                  `json:"old_plan_id,omitempty"`
	NewPlanID      *uint                  `json:"new_plan_id,omitempty"`
	PreviousEnd    *string                `json:"previous_end_date,omitempty"`
	NewEnd         *string                `json:"new_end_date,omitempty"`
	Status         string                 `json:"subscription_status"`
	PaymentStatus  string                 `json:"payment_status"`
	FinalAmount    string                 `json:"final_amount"`
	Reason         string                 `json:"reason,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	ActorID        uint                   `json:"actor_id"`
	CreatedAt      time.Time              `json:"created_at"`
}

type PaymentCountsDTO struct {
	Paid     int64 `json:"paid"`
	Pending  int64 `json:"pending"`
	Failed   int64 `json:"failed"`
	Refunded int64 `json:"refunded"`
}

type RevenueDTO struct {
	Billed      string `json:"billed"`
	Collected   string `json:"collected"`
	Outstanding string `json:"outstanding"`
}

type StatsDTO struct {
	Total     int64            `json:"total"`
	Active    int64            `json:"active"`
	Trial     int64            `json:"trial"`
	Expired   int64            `json:"expired"`
	Cancelled int64            `json:"cancelled"`
	Payments  PaymentCountsDTO `json:"payments"`
	Revenue   RevenueDTO       `json:"revenue"`
}

func ToSubscriptionDTO(s *subscription.Subscription) *SubscriptionDTO {
	if s == nil {
		return nil
	}
	return &SubscriptionDTO{
		ID:                s.ID(),
		ClientID:          s.ClientID(),
		PlanID:            s.PlanID(),
		StartDate:         biztime.FormatDate(s.StartDate()),
		EndDate:           biztime.FormatDate(s.EndDate()),
		BillingCycle:      s.BillingCycle().String(),
		BillingMonths:     s.BillingMonths(),
		NumUsers:          s.NumUsers(),
		AmountPaid:        s.AmountPaid().StringFixed(2),
		Discount:          s.Discount().StringFixed(2),
		FinalAmount:       s.FinalAmount().StringFixed(2),
		PaymentStatus:     s.PaymentStatus().String(),
		Status:            s.Status().String(),
		AutoRenew:         s.AutoRenew(),
		PaymentReceivedAt: s.PaymentReceivedAt(),
		NextPaymentDue:    formatDatePtr(s.NextPaymentDue()),
		CancelledAt:       s.CancelledAt(),
		CancelReason:      s.CancelReason(),
		CreatedBy:         s.CreatedBy(),
		Version:           s.Version(),
		CreatedAt:         s.CreatedAt(),
		UpdatedAt:         s.UpdatedAt(),
	}
}

func ToSubscriptionDTOs(items []*subscription.Subscription) []*SubscriptionDTO {
	if items == nil {
		return []*SubscriptionDTO{}
	}
	return mapper.MapSlice(items, ToSubscriptionDTO)
}

func ToPlanDTO(p *subscription.Plan) *PlanDTO {
	if p == nil {
		return nil
	}
	return &PlanDTO{
		ID:            p.ID(),
		Name:          p.Name(),
		Description:   p.Description(),
		PricePerUser:  p.PricePerUser().StringFixed(2),
		BillingCycle:  p.BillingCycle().String(),
		BillingMonths: p.BillingMonths(),
		MinUsers:      p.MinUsers(),
		MaxUsers:      p.MaxUsers(),
		ModuleAccess:  p.ModuleAccess(),
		IsActive:      p.IsActive(),
		CreatedAt:     p.CreatedAt(),
		UpdatedAt:     p.UpdatedAt(),
	}
}

func ToPlanDTOs(items []*subscription.Plan) []*PlanDTO {
	if items == nil {
		return []*PlanDTO{}
	}
	return mapper.MapSlice(items, ToPlanDTO)
}

func ToHistoryDTO(h *subscription.History) *HistoryDTO {
	if h == nil {
		return nil
	}
	return &HistoryDTO{
		ID:             h.ID(),
		SubscriptionID: h.SubscriptionID(),
		EventType:      string(h.EventType()),
		OldPlanID:      h.OldPlanID(),
		NewPlanID:      h.NewPlanID(),
		PreviousEnd:    formatDatePtr(h.PreviousEnd()),
		NewEnd:         formatDatePtr(h.NewEnd()),
		Status:         h.Status().String(),
		PaymentStatus:  h.PaymentStatus().String(),
		FinalAmount:    h.FinalAmount().StringFixed(2),
		Reason:         h.Reason(),
		Metadata:       h.Metadata(),
		ActorID:        h.ActorID(),
		CreatedAt:      h.CreatedAt(),
	}
}

func ToHistoryDTOs(items []*subscription.History) []*HistoryDTO {
	if items == nil {
		return []*HistoryDTO{}
	}
	return mapper.MapSlice(items, ToHistoryDTO)
}

func ToStatsDTO(s *subscription.Stats) *StatsDTO {
	if s == nil {
		return nil
	}
	return &StatsDTO{
		Total:     s.Total,
		Active:    s.ByStatus[vo.StatusActive],
		Trial:     s.ByStatus[vo.StatusTrial],
		Expired:   s.ByStatus[vo.StatusExpired],
		Cancelled: s.ByStatus[vo.StatusCancelled],
		Payments: PaymentCountsDTO{
			Paid:     s.ByPayment[vo.PaymentStatusPaid],
			Pending:  s.ByPayment[vo.PaymentStatusPending],
			Failed:   s.ByPayment[vo.PaymentStatusFailed],
			Refunded: s.ByPayment[vo.PaymentStatusRefunded],
		},
		Revenue: RevenueDTO{
			Billed:      s.BilledRevenue.StringFixed(2),
			Collected:   s.CollectedTotal.StringFixed(2),
			Outstanding: s.Outstanding().StringFixed(2),
		},
	}
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := biztime.FormatDate(*t)
	return &s
}
