package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest body para POST /api/clients.
// CreditLimit es obligatorio y > 0 solo para clase CREDIT.
type CreateClientRequest struct {
	Name        string          `json:"name"`
	Class       string          `json:"class"`
	CreditLimit decimal.Decimal `json:"credit_limit,omitempty"`
}

// UpdateClientRequest body para PUT /api/clients/:id.
type UpdateClientRequest struct {
	Name        string          `json:"name"`
	Class       string          `json:"class"`
	CreditLimit decimal.Decimal `json:"credit_limit,omitempty"`
	Active      *bool           `json:"active,omitempty"`
}

// ClientResponse cliente expuesto por la API.
type ClientResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Class       string          `json:"class"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
}
