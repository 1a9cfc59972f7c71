package client

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/orris-inc/backoffice/internal/shared/biztime"
)

// Client is a tenant company. Its creator owns it for access scoping.
type Client struct {
	id            uint
	name          string
	contactPerson string
	email         string
	phone         string
	address       string
	status        Status
	createdBy     uint
	createdAt     time.Time
	updatedAt     time.Time
}

type Profile struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

func (p Profile) normalize() (Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Name == "" {
		return p, fmt.Errorf("%w: name is required", ErrInvalidClient)
	}
	if len(p.Name) > 200 {
		return p, fmt.Errorf("%w: name too long (max 200 characters)", ErrInvalidClient)
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return p, fmt.Errorf("%w: invalid email %q", ErrInvalidClient, p.Email)
	}
	return p, nil
}

func NewClient(profile Profile, createdBy uint) (*Client, error) {
	if createdBy == 0 {
		return nil, fmt.Errorf("%w: creator is required", ErrInvalidClient)
	}
	p, err := profile.normalize()
	if err != nil {
		return nil, err
	}
	now := biztime.NowUTC()
	return &Client{
		name:          p.Name,
		contactPerson: p.ContactPerson,
		email:         p.Email,
		phone:         p.Phone,
		address:       p.Address,
		status:        StatusActive,
		createdBy:     createdBy,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructClient(id uint, profile Profile, status Status, createdBy uint, createdAt, updatedAt time.Time) *Client {
	return &Client{
		id:            id,
		name:          profile.Name,
		contactPerson: profile.ContactPerson,
		email:         profile.Email,
		phone:         profile.Phone,
		address:       profile.Address,
		status:        status,
		createdBy:     createdBy,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (c *Client) ID() uint              { return c.id }
func (c *Client) Name() string          { return c.name }
func (c *Client) ContactPerson() string { return c.contactPerson }
func (c *Client) Email() string         { return c.email }
func (c *Client) Phone() string         { return c.phone }
func (c *Client) Address() string       { return c.address }
func (c *Client) Status() Status        { return c.status }
func (c *Client) CreatedBy() uint       { return c.createdBy }
func (c *Client) CreatedAt() time.Time  { return c.createdAt }
func (c *Client) UpdatedAt() time.Time  { return c.updatedAt }

func (c *Client) Profile() Profile {
	return Profile{
		Name:          c.name,
		ContactPerson: c.contactPerson,
		Email:         c.email,
		Phone:         c.phone,
		Address:       c.address,
	}
}

func (c *Client) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("client ID is already set")
	}
	c.id = id
	return nil
}

func (c *Client) UpdateProfile(profile Profile) error {
	p, err := profile.normalize()
	if err != nil {
		return err
	}
	c.name = p.Name
	c.contactPerson = p.ContactPerson
	c.email = p.Email
	c.phone = p.Phone
	c.address = p.Address
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Client) ChangeStatus(status Status) error {
	if _, err := ParseStatus(string(status)); err != nil {
		return err
	}
	if c.status != status {
		c.status = status
		c.updatedAt = biztime.NowUTC()
	}
	return nil
}

// EnsureCanSubscribe returns ErrClientInactive unless the client is active.
func (c *Client) EnsureCanSubscribe() error {
	if !c.status.CanSubscribe() {
		return fmt.Errorf("%w: client %d is %s", ErrClientInactive, c.id, c.status)
	}
	return nil
}
