package customer

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyName = errors.New("customer name cannot be empty")

// Customer is referenced by bookings but has its own lifetime.
type Customer struct {
	id          int64
	firstName   string
	lastName    string
	email       string
	phone       string
	address     string
	nationality string
	createdAt   time.Time
	updatedAt   time.Time
}

func ReconstructCustomer(
	id int64,
	firstName, lastName, email, phone, address, nationality string,
	createdAt, updatedAt time.Time,
) (*Customer, error) {
	if strings.TrimSpace(firstName) == "" && strings.TrimSpace(lastName) == "" {
		return nil, ErrEmptyName
	}
	return &Customer{
		id:          id,
		firstName:   firstName,
		lastName:    lastName,
		email:       email,
		phone:       phone,
		address:     address,
		nationality: nationality,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (c *Customer) ID() int64            { return c.id }
func (c *Customer) FirstName() string    { return c.firstName }
func (c *Customer) LastName() string     { return c.lastName }
func (c *Customer) Email() string        { return c.email }
func (c *Customer) Phone() string        { return c.phone }
func (c *Customer) Address() string      { return c.address }
func (c *Customer) Nationality() string  { return c.nationality }
func (c *Customer) CreatedAt() time.Time { return c.createdAt }
func (c *Customer) UpdatedAt() time.Time { return c.updatedAt }

// DisplayName joins the name fields, skipping blanks.
func (c *Customer) DisplayName() string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(c.firstName); s != "" {
		parts = append(parts, s)
	}
	if s := strings.TrimSpace(c.lastName); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
