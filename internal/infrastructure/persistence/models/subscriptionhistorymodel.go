package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/orris-inc/backoffice/internal/shared/constants"
)

// SubscriptionHistoryModel is append-only; rows are never updated.
type SubscriptionHistoryModel struct {
	ID                 uint   `gorm:"primarykey"`
	SubscriptionID     uint   `gorm:"not null;index:idx_history_subscription"`
	EventType          string `gorm:"not null;size:30"`
	OldPlanID          *uint
	NewPlanID          *uint
	PreviousEndDate    *time.Time      `gorm:"type:date"`
	NewEndDate         *time.Time      `gorm:"type:date"`
	SubscriptionStatus string          `gorm:"not null;size:20"`
	PaymentStatus      string          `gorm:"not null;size:20"`
	FinalAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Reason             *string         `gorm:"size:500"`
	Metadata           datatypes.JSON
	ActorID            uint `gorm:"not null"`
	CreatedAt          time.Time
}

func (SubscriptionHistoryModel) TableName() string {
	return constants.TableSubscriptionHistory
}
