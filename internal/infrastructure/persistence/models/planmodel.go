package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/orris-inc/backoffice/internal/shared/constants"
)

type PlanModel struct {
	ID            uint            `gorm:"primarykey"`
	Name          string          `gorm:"not null;size:100;uniqueIndex:idx_plan_name"`
	Description   string          `gorm:"type:text"`
	PricePerUser  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	BillingCycle  string          `gorm:"not null;size:20"`
	BillingMonths int             `gorm:"not null"`
	MinUsers      int             `gorm:"not null;default:1"`
	MaxUsers      int             `gorm:"not null"`
	ModuleAccess  datatypes.JSON
	IsActive      bool `gorm:"not null;default:true;index:idx_plan_active"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PlanModel) TableName() string {
	return constants.TablePlans
}
