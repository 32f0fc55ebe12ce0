package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleType tipo de venta: contado o crédito. Para CREDIT debe coincidir con
// la clase del cliente.
type SaleType string

const (
	SaleTypeCash   SaleType = "CASH"
	SaleTypeCredit SaleType = "CREDIT"
)

// SaleStatus estado de la venta. Las ventas nunca se borran, solo se anulan.
type SaleStatus string

const (
	SaleStatusActive SaleStatus = "ACTIVE"
	SaleStatusVoid   SaleStatus = "VOID"
)

// DiscountType tipo de descuento aplicado a la venta.
type DiscountType string

const (
	DiscountNone    DiscountType = "NONE"
	DiscountPercent DiscountType = "PERCENT"
	DiscountAmount  DiscountType = "AMOUNT"
)

// Sale cabecera de una venta. Creada una sola vez; después de creada solo
// muta el estado (anulación). Invariantes: Subtotal == sum(líneas.Subtotal),
// Total == Subtotal - DiscountAmount.
type Sale struct {
	ID             string
	ClientID       string
	UserID         string // operador autenticado
	Type           SaleType
	Subtotal       decimal.Decimal
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal // derivado
	Total          decimal.Decimal
	Status         SaleStatus
	Date           time.Time
	VoidReason     string
	VoidedAt       *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SaleLine línea de detalle de una venta. Vive y muere con su venta.
// Subtotal == Quantity * UnitPrice.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}
