package credit

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con el repo de
// créditos atado a esa tx. Aplicar un pago es leer-modificar-escribir sobre el
// saldo: corre completo en una transacción con la fila bloqueada.
type TxRunner interface {
	RunCredit(ctx context.Context, fn func(
		creditRepo repository.CreditRepository,
	) error) error
}
