package sale

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// DiscountResult desglose del descuento aplicado a un subtotal.
// Todos los montos van redondeados a 2 decimales.
type DiscountResult struct {
	Subtotal       decimal.Decimal
	Type           entity.DiscountType
	Value          decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal // Subtotal - DiscountAmount
}

// CalculateDiscount calcula el monto de descuento para un subtotal.
// Función pura, sin efectos. Reglas:
//   - NONE o valor 0 => descuento 0.
//   - PERCENT => subtotal * valor / 100; inválido si valor > 100.
//   - AMOUNT  => valor; inválido si valor > subtotal.
//
// Las fallas de validación regresan como ErrInvalidInput con la lista completa
// de reglas violadas, no solo la primera.
func CalculateDiscount(subtotal decimal.Decimal, dtype entity.DiscountType, value decimal.Decimal) (*DiscountResult, error) {
	var details []string

	if dtype == "" {
		dtype = entity.DiscountNone
	}
	if subtotal.IsNegative() {
		details = append(details, fmt.Sprintf("el subtotal no puede ser negativo: %s", subtotal.StringFixed(2)))
	}
	if value.IsNegative() {
		details = append(details, fmt.Sprintf("el valor del descuento no puede ser negativo: %s", value.StringFixed(2)))
	}

	switch dtype {
	case entity.DiscountNone, entity.DiscountPercent, entity.DiscountAmount:
	default:
		details = append(details, fmt.Sprintf("tipo de descuento desconocido: %q", dtype))
	}
	if dtype == entity.DiscountPercent && value.GreaterThan(hundred) {
		details = append(details, fmt.Sprintf("descuento porcentual mayor a 100%%: %s", value.StringFixed(2)))
	}
	if dtype == entity.DiscountAmount && value.GreaterThan(subtotal) {
		details = append(details, fmt.Sprintf("descuento en monto (%s) mayor al subtotal (%s)", value.StringFixed(2), subtotal.StringFixed(2)))
	}
	if len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}

	subtotal = subtotal.Round(2)
	var amount decimal.Decimal
	switch {
	case dtype == entity.DiscountNone || value.IsZero():
		amount = decimal.Zero
	case dtype == entity.DiscountPercent:
		amount = subtotal.Mul(value).Div(hundred).Round(2)
	default: // AMOUNT
		amount = value.Round(2)
	}

	return &DiscountResult{
		Subtotal:       subtotal,
		Type:           dtype,
		Value:          value,
		DiscountAmount: amount,
		Total:          subtotal.Sub(amount).Round(2),
	}, nil
}
