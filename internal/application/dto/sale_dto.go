package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de venta en el request. Si UnitPrice se omite se usa
// el precio de lista del producto; un 0 explícito vende la línea en 0.
type SaleLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSaleRequest body para POST /api/sales/cash y /api/sales/credit.
// TermDays aplica solo a ventas a crédito (default 30).
type CreateSaleRequest struct {
	ClientID      string            `json:"client_id"`
	Lines         []SaleLineRequest `json:"lines"`
	DiscountType  string            `json:"discount_type,omitempty"`
	DiscountValue decimal.Decimal   `json:"discount_value,omitempty"`
	TermDays      int               `json:"term_days,omitempty"`
}

// SaleLineResponse línea persistida de la venta.
type SaleLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CreditSummary resumen del crédito abierto por una venta a crédito.
type CreditSummary struct {
	ID        string          `json:"id"`
	Principal decimal.Decimal `json:"principal"`
	Balance   decimal.Decimal `json:"balance"`
	StartDate time.Time       `json:"start_date"`
	DueDate   time.Time       `json:"due_date"`
	TermDays  int             `json:"term_days"`
	Status    string          `json:"status"`
}

// SaleResponse venta con líneas, desglose de descuento y, para crédito,
// el resumen del crédito abierto.
type SaleResponse struct {
	ID             string             `json:"id"`
	ClientID       string             `json:"client_id"`
	UserID         string             `json:"user_id"`
	Type           string             `json:"type"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountType   string             `json:"discount_type"`
	DiscountValue  decimal.Decimal    `json:"discount_value"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Total          decimal.Decimal    `json:"total"`
	Status         string             `json:"status"`
	Date           time.Time          `json:"date"`
	Lines          []SaleLineResponse `json:"lines"`
	MovementsCount int                `json:"movements_count"`
	Credit         *CreditSummary     `json:"credit,omitempty"`
}

// VoidSaleRequest body para POST /api/sales/:id/void.
type VoidSaleRequest struct {
	Reason string `json:"reason"`
}

// VoidSaleResponse resumen de la reversión.
type VoidSaleResponse struct {
	SaleID           string `json:"sale_id"`
	LinesReversed    int    `json:"lines_reversed"`
	MovementsCreated int    `json:"movements_created"`
	CreditVoided     bool   `json:"credit_voided"`
}
