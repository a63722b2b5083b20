package entity

import (
	"errors"
	"time"
)

var ErrCustomerNotFound = errors.New("customer not found")

type Customer struct {
	ID      int64  `json:"id"`
	Company string `json:"company"`
	Contact string `json:"contact"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`

	// Contracts is append-only; closed deals are never removed.
	Contracts []string `json:"contracts"`

	OwnerID   *int64    `json:"owner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewCustomer(company, contact, phone, email string, ownerID *int64) *Customer {
	return &Customer{
		Company:   company,
		Contact:   contact,
		Phone:     phone,
		Email:     email,
		Contracts: []string{},
		OwnerID:   cloneInt64Ptr(ownerID),
		CreatedAt: time.Now(),
	}
}

func (c *Customer) AppendContract(name string) {
	c.Contracts = append(c.Contracts, name)
}

func (c *Customer) Clone() *Customer {
	clone := *c
	clone.Contracts = append([]string{}, c.Contracts...)
	clone.OwnerID = cloneInt64Ptr(c.OwnerID)
	return &clone
}
