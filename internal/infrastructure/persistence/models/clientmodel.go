package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/shared/constants"
)

type ClientModel struct {
	ID            uint   `gorm:"primarykey"`
	Name          string `gorm:"not null;size:200"`
	ContactPerson string `gorm:"size:100"`
	Email         string `gorm:"not null;size:255;index:idx_client_email"`
	Phone         string `gorm:"size:30"`
	Address       string `gorm:"type:text"`
	Status        string `gorm:"not null;size:20;index:idx_client_status"`
	CreatedBy     uint   `gorm:"not null;index:idx_client_owner"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (ClientModel) TableName() string {
	return constants.TableClients
}
