package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock se muta exclusivamente vía movimientos de inventario (motor de
// inventario); nunca se escribe directo desde ventas. Invariante: Stock >= 0.
type Product struct {
	ID          string
	Name        string
	UnitMeasure string          // unidad, caja, kg, ...
	Price       decimal.Decimal // precio de venta unitario
	Stock       int64
	MinStock    int64 // umbral para alertas de stock bajo
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // soft delete
}

// Sellable indica si el producto admite operaciones de inventario/venta.
func (p *Product) Sellable() bool {
	return p.Active && p.DeletedAt == nil
}
