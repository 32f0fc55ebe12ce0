package entity

import "time"

// MovementDirection dirección de un movimiento de inventario.
type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// Razones estándar de movimiento generadas por el motor de ventas.
const (
	MovementReasonSale     = "Venta"
	MovementReasonSaleVoid = "Anulación de venta"
	MovementReasonAdjust   = "Ajuste"
)

// InventoryMovement representa un movimiento de inventario (entrada o salida).
// Inmutable una vez creado; el historial es append-only. Anular una venta
// agrega movimientos IN compensatorios, nunca borra los OUT originales.
// El stock vigente de un producto equivale a sum(IN) - sum(OUT).
type InventoryMovement struct {
	ID          string
	ProductID   string
	Direction   MovementDirection
	Quantity    int64 // siempre > 0; la dirección lleva el signo
	Reason      string
	Reference   string // venta, nota de ajuste, etc.
	StockBefore int64
	StockAfter  int64
	CreatedAt   time.Time
	CreatedBy   string // UserID del operador
}
