package sales

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con todos los
// repositorios que toca una venta atados a esa tx. Una venta a crédito escribe
// cabecera, líneas, movimientos, stock y crédito: o entra todo o no entra nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		creditRepo repository.CreditRepository,
	) error) error
}
