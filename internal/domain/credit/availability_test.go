package credit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/jhoicas/ventas-api/internal/domain/credit"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestComputeAvailability_Disponible(t *testing.T) {
	a := credit.ComputeAvailability("c1", d("1000.00"), d("200.00"), false)
	assert.Equal(t, "800.00", a.Disposable.StringFixed(2))
	assert.Equal(t, "20.00", a.UtilizationPct.StringFixed(2))
	assert.Equal(t, credit.StatusAvailable, a.Status)
}

// Utilización >= 80% => NEAR_LIMIT.
func TestComputeAvailability_CercaDelLimite(t *testing.T) {
	a := credit.ComputeAvailability("c1", d("1000.00"), d("800.00"), false)
	assert.Equal(t, credit.StatusNearLimit, a.Status)
}

// Utilización >= 100% => LIMIT_REACHED y disponible acotado a 0.
func TestComputeAvailability_LimiteAlcanzado(t *testing.T) {
	a := credit.ComputeAvailability("c1", d("1000.00"), d("1200.00"), false)
	assert.Equal(t, credit.StatusLimitReached, a.Status)
	assert.Equal(t, "0.00", a.Disposable.StringFixed(2), "el disponible nunca es negativo")
	assert.Equal(t, "120.00", a.UtilizationPct.StringFixed(2))
}

// La mora domina sobre cualquier otro estado.
func TestComputeAvailability_EnMoraDomina(t *testing.T) {
	a := credit.ComputeAvailability("c1", d("1000.00"), d("100.00"), true)
	assert.Equal(t, credit.StatusInArrears, a.Status)
	assert.True(t, a.InArrears)
}

// Límite 0 => utilización 0 (sin división por cero).
func TestComputeAvailability_LimiteCero(t *testing.T) {
	a := credit.ComputeAvailability("c1", decimal.Zero, d("50.00"), false)
	assert.Equal(t, "0.00", a.UtilizationPct.StringFixed(2))
	assert.Equal(t, "0.00", a.Disposable.StringFixed(2))
}
