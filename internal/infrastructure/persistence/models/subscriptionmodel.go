package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/shared/constants"
)

// SubscriptionModel is the persistence shape of a subscription. Dates are
// calendar days stored as UTC midnight.
type SubscriptionModel struct {
	ID                 uint            `gorm:"primarykey"`
	ClientID           uint            `gorm:"not null;index:idx_sub_client_status,priority:1"`
	PlanID             uint            `gorm:"not null;index:idx_sub_plan"`
	StartDate          time.Time       `gorm:"type:date;not null"`
	EndDate            time.Time       `gorm:"type:date;not null;index:idx_sub_status_end,priority:2"`
	BillingCycle       string          `gorm:"not null;size:20"`
	BillingMonths      int             `gorm:"not null"`
	NumUsers           int             `gorm:"not null"`
	AmountPaid         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	FinalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentStatus      string          `gorm:"not null;size:20;index:idx_sub_payment_status"`
	SubscriptionStatus string          `gorm:"not null;size:20;index:idx_sub_client_status,priority:2;index:idx_sub_status_end,priority:1"`
	AutoRenew          bool            `gorm:"not null;default:false"`
	PaymentReceivedAt  *time.Time
	NextPaymentDue     *time.Time `gorm:"type:date"`
	CancelledAt        *time.Time
	CancelReason       *string `gorm:"size:500"`
	CreatedBy          uint    `gorm:"not null"`
	Version            int     `gorm:"not null;default:1"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
