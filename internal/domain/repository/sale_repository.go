package repository

import (
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// SaleFilter filtros para listar ventas.
type SaleFilter struct {
	ClientID string
	UserID   string
	Type     entity.SaleType
	Status   entity.SaleStatus
	From     *time.Time
	To       *time.Time
}

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
// Las ventas nunca se borran; después de creadas solo muta el estado (VOID).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	CreateLine(line *entity.SaleLine) error
	GetByID(id string) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) para que dos
	// anulaciones concurrentes no reviertan el stock dos veces.
	GetForUpdate(id string) (*entity.Sale, error)
	GetLines(saleID string) ([]*entity.SaleLine, error)
	SetVoid(saleID, reason string, at time.Time) error
	List(filter SaleFilter, limit, offset int) ([]*entity.Sale, error)
}
