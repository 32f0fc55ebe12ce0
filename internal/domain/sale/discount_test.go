package sale_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/sale"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCalculateDiscount_SinDescuento(t *testing.T) {
	res, err := sale.CalculateDiscount(d("1150.00"), entity.DiscountNone, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, res.DiscountAmount.IsZero(), "NONE debe producir descuento 0")
	assert.Equal(t, "1150.00", res.Total.StringFixed(2))
}

func TestCalculateDiscount_ValorCeroEsDescuentoCero(t *testing.T) {
	res, err := sale.CalculateDiscount(d("500.00"), entity.DiscountPercent, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, res.DiscountAmount.IsZero())
	assert.Equal(t, "500.00", res.Total.StringFixed(2))
}

// 10% sobre 1150.00 => descuento 115.00, total 1035.00.
func TestCalculateDiscount_PorcentajeDiez(t *testing.T) {
	res, err := sale.CalculateDiscount(d("1150.00"), entity.DiscountPercent, d("10"))
	require.NoError(t, err)
	assert.Equal(t, "115.00", res.DiscountAmount.StringFixed(2))
	assert.Equal(t, "1035.00", res.Total.StringFixed(2))
}

// PERCENT 100 sobre 500.00 => descuento 500.00, total 0.00 (válido).
func TestCalculateDiscount_PorcentajeCien(t *testing.T) {
	res, err := sale.CalculateDiscount(d("500.00"), entity.DiscountPercent, d("100"))
	require.NoError(t, err)
	assert.Equal(t, "500.00", res.DiscountAmount.StringFixed(2))
	assert.Equal(t, "0.00", res.Total.StringFixed(2))
}

// PERCENT 101 => error de validación.
func TestCalculateDiscount_PorcentajeMayorACien(t *testing.T) {
	_, err := sale.CalculateDiscount(d("500.00"), entity.DiscountPercent, d("101"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotEmpty(t, domain.DetailsOf(err))
}

// AMOUNT igual al subtotal es válido (total 0.00).
func TestCalculateDiscount_MontoIgualAlSubtotal(t *testing.T) {
	res, err := sale.CalculateDiscount(d("250.00"), entity.DiscountAmount, d("250.00"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", res.Total.StringFixed(2))
}

// AMOUNT mayor al subtotal => error de validación.
func TestCalculateDiscount_MontoMayorAlSubtotal(t *testing.T) {
	_, err := sale.CalculateDiscount(d("250.00"), entity.DiscountAmount, d("250.01"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El redondeo es a 2 decimales con redondeo estándar.
func TestCalculateDiscount_RedondeoDosDecimales(t *testing.T) {
	// 33.33% de 100.00 = 33.33 (33.33 -> total 66.67)
	res, err := sale.CalculateDiscount(d("100.00"), entity.DiscountPercent, d("33.33"))
	require.NoError(t, err)
	assert.Equal(t, "33.33", res.DiscountAmount.StringFixed(2))
	assert.Equal(t, "66.67", res.Total.StringFixed(2))
}

// Todas las reglas violadas deben venir en Details, no solo la primera.
func TestCalculateDiscount_AcumulaTodasLasViolaciones(t *testing.T) {
	_, err := sale.CalculateDiscount(d("-10"), "RARO", d("-5"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	details := domain.DetailsOf(err)
	assert.Len(t, details, 3, "subtotal negativo + valor negativo + tipo desconocido")
}

func TestCalculateDiscount_TipoVacioEsNone(t *testing.T) {
	res, err := sale.CalculateDiscount(d("80.00"), "", d("0"))
	require.NoError(t, err)
	assert.Equal(t, entity.DiscountNone, res.Type)
	assert.Equal(t, "80.00", res.Total.StringFixed(2))
}
