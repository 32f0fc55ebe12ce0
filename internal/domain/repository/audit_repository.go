package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// AuditRepository define el puerto de persistencia para el rastro de auditoría.
type AuditRepository interface {
	Create(record *entity.AuditRecord) error
}
