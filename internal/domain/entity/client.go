package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientClass clase de cliente: contado o crédito.
type ClientClass string

const (
	ClientClassCash   ClientClass = "CASH"
	ClientClassCredit ClientClass = "CREDIT"
)

// Client representa un cliente del negocio.
// CreditLimit es obligatorio y > 0 solo para clase CREDIT.
type Client struct {
	ID          string
	Name        string
	Class       ClientClass
	CreditLimit decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // soft delete
}

// Operable indica si el cliente admite ventas.
func (c *Client) Operable() bool {
	return c.Active && c.DeletedAt == nil
}
