package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/orris-inc/backoffice/internal/shared/constants"
)

type PaymentModel struct {
	ID             uint            `gorm:"primarykey"`
	SubscriptionID uint            `gorm:"not null;index:idx_payment_subscription"`
	ClientID       uint            `gorm:"not null;index:idx_payment_client"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency       string          `gorm:"not null;size:3"`
	Method         string          `gorm:"not null;size:20"`
	Status         string          `gorm:"not null;size:20;index:idx_payment_status"`
	ReceiptNumber  string          `gorm:"not null;size:32;uniqueIndex:idx_payment_receipt"`
	TransactionID  *string         `gorm:"size:128"`
	FailureReason  *string         `gorm:"size:500"`
	RefundReason   *string         `gorm:"size:500"`
	Notes          string          `gorm:"type:text"`
	PaidAt         *time.Time
	RecordedBy     uint `gorm:"not null"`
	Version        int  `gorm:"not null;default:1"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (PaymentModel) TableName() string {
	return constants.TablePayments
}
