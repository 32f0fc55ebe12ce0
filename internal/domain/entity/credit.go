package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditStatus estado del crédito (cuenta por cobrar).
// Transiciones legales: ACTIVE -> OVERDUE (vence el plazo, barrido programado),
// ACTIVE|OVERDUE -> PAID (saldo llega a 0 vía pago),
// ACTIVE|OVERDUE -> VOID (venta padre anulada). PAID y VOID son terminales.
type CreditStatus string

const (
	CreditStatusActive  CreditStatus = "ACTIVE"
	CreditStatusPaid    CreditStatus = "PAID"
	CreditStatusOverdue CreditStatus = "OVERDUE"
	CreditStatusVoid    CreditStatus = "VOID"
)

// Settled indica si el estado es terminal (no admite pagos).
func (s CreditStatus) Settled() bool {
	return s == CreditStatusPaid || s == CreditStatusVoid
}

// Outstanding indica si el crédito cuenta como deuda vigente
// (agregación de crédito disponible).
func (s CreditStatus) Outstanding() bool {
	return s == CreditStatusActive || s == CreditStatusOverdue
}

// Credit cuenta por cobrar abierta por una venta a crédito (1 a 1 con la
// venta). Principal y saldo inicial equivalen al total post-descuento.
// Invariante: Balance == Principal - sum(pagos); nunca negativo.
type Credit struct {
	ID        string
	SaleID    string
	ClientID  string
	Principal decimal.Decimal
	Balance   decimal.Decimal
	StartDate time.Time
	DueDate   time.Time
	TermDays  int
	Status    CreditStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Payment abono aplicado a un crédito. Inmutable una vez creado.
// ResultingBalance es el saldo del crédito después de este pago.
type Payment struct {
	ID               string
	CreditID         string
	Amount           decimal.Decimal
	Method           string // efectivo, transferencia, ...
	Notes            string
	ResultingBalance decimal.Decimal
	CreatedBy        string // UserID del operador
	CreatedAt        time.Time
}
