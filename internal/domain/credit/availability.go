package credit

import "github.com/shopspring/decimal"

// AvailabilityStatus etiqueta derivada del estado crediticio del cliente.
type AvailabilityStatus string

const (
	StatusAvailable    AvailabilityStatus = "AVAILABLE"
	StatusNearLimit    AvailabilityStatus = "NEAR_LIMIT"    // utilización >= 80%
	StatusLimitReached AvailabilityStatus = "LIMIT_REACHED" // utilización >= 100%
	StatusInArrears    AvailabilityStatus = "IN_ARREARS"    // existe crédito vencido
)

var (
	hundred       = decimal.NewFromInt(100)
	nearThreshold = decimal.NewFromInt(80)
)

// Availability crédito disponible de un cliente: límite menos deuda vigente
// (saldos de créditos ACTIVE y OVERDUE). Lectura pura, sin mutación.
type Availability struct {
	ClientID       string
	CreditLimit    decimal.Decimal
	Outstanding    decimal.Decimal
	Disposable     decimal.Decimal // max(0, límite - deuda)
	UtilizationPct decimal.Decimal // deuda/límite * 100, 0 si límite es 0
	InArrears      bool
	Status         AvailabilityStatus
}

// ComputeAvailability calcula el crédito disponible. outstanding debe ser la
// suma de saldos de todos los créditos del cliente con estado ACTIVE u
// OVERDUE; inArrears indica si alguno está OVERDUE. Esta es la única
// agregación de disponibilidad del sistema: la usan tanto la consulta de
// disponibilidad como el chequeo de límite en la venta a crédito.
func ComputeAvailability(clientID string, limit, outstanding decimal.Decimal, inArrears bool) *Availability {
	disposable := limit.Sub(outstanding)
	if disposable.IsNegative() {
		disposable = decimal.Zero
	}
	utilization := decimal.Zero
	if limit.IsPositive() {
		utilization = outstanding.Mul(hundred).Div(limit).Round(2)
	}

	status := StatusAvailable
	switch {
	case inArrears:
		status = StatusInArrears
	case utilization.GreaterThanOrEqual(hundred):
		status = StatusLimitReached
	case utilization.GreaterThanOrEqual(nearThreshold):
		status = StatusNearLimit
	}

	return &Availability{
		ClientID:       clientID,
		CreditLimit:    limit.Round(2),
		Outstanding:    outstanding.Round(2),
		Disposable:     disposable.Round(2),
		UtilizationPct: utilization,
		InArrears:      inArrears,
		Status:         status,
	}
}
