package dto

import (
	"time"

	"github.com/orris-inc/backoffice/internal/domain/client"
	"github.com/orris-inc/backoffice/internal/shared/mapper"
)

type ClientDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	ContactPerson string    `json:"contact_person,omitempty"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	Status        string    `json:"status"`
	CreatedBy     uint      `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToClientDTO(c *client.Client) *ClientDTO {
	if c == nil {
		return nil
	}
	return &ClientDTO{
		ID:            c.ID(),
		Name:          c.Name(),
		ContactPerson: c.ContactPerson(),
		Email:         c.Email(),
		Phone:         c.Phone(),
		Address:       c.Address(),
		Status:        c.Status().String(),
		CreatedBy:     c.CreatedBy(),
		CreatedAt:     c.CreatedAt(),
		UpdatedAt:     c.UpdatedAt(),
	}
}

func ToClientDTOs(items []*client.Client) []*ClientDTO {
	if items == nil {
		return []*ClientDTO{}
	}
	return mapper.MapSlice(items, ToClientDTO)
}
