package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest body para POST /api/credits/:id/payments.
type ApplyPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	Notes  string          `json:"notes,omitempty"`
}

// PaymentResponse abono persistido.
type PaymentResponse struct {
	ID               string          `json:"id"`
	CreditID         string          `json:"credit_id"`
	Amount           decimal.Decimal `json:"amount"`
	Method           string          `json:"method"`
	Notes            string          `json:"notes,omitempty"`
	ResultingBalance decimal.Decimal `json:"resulting_balance"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// PaymentResultResponse resultado de aplicar un pago.
type PaymentResultResponse struct {
	Payment         PaymentResponse `json:"payment"`
	Credit          CreditResponse  `json:"credit"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	Settled         bool            `json:"settled"`
}

// CreditResponse crédito con su historial de pagos (si se solicita).
type CreditResponse struct {
	ID        string            `json:"id"`
	SaleID    string            `json:"sale_id"`
	ClientID  string            `json:"client_id"`
	Principal decimal.Decimal   `json:"principal"`
	Balance   decimal.Decimal   `json:"balance"`
	StartDate time.Time         `json:"start_date"`
	DueDate   time.Time         `json:"due_date"`
	TermDays  int               `json:"term_days"`
	Status    string            `json:"status"`
	Payments  []PaymentResponse `json:"payments,omitempty"`
}

// AvailabilityResponse crédito disponible de un cliente.
type AvailabilityResponse struct {
	ClientID       string          `json:"client_id"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	Outstanding    decimal.Decimal `json:"outstanding"`
	Disposable     decimal.Decimal `json:"disposable"`
	UtilizationPct decimal.Decimal `json:"utilization_pct"`
	InArrears      bool            `json:"in_arrears"`
	Status         string          `json:"status"`
}

// OverdueSweepResponse resultado del barrido de vencidos.
type OverdueSweepResponse struct {
	MarkedOverdue int64 `json:"marked_overdue"`
}
