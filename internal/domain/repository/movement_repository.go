package repository

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// MovementTotals agregado de entradas y salidas de un producto.
type MovementTotals struct {
	In  int64
	Out int64
}

// MovementRepository define el puerto de persistencia para movimientos de
// inventario. El historial es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	GetByID(id string) (*entity.InventoryMovement, error)
	// ListByProduct lista movimientos de un producto en orden cronológico
	// ascendente, opcionalmente acotados por rango de fechas.
	ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error)
	// TotalsByProduct suma entradas y salidas; con before != nil solo cuenta
	// movimientos anteriores a esa fecha (ancla del kardex).
	TotalsByProduct(productID string, before *time.Time) (*MovementTotals, error)
}
