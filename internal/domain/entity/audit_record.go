package entity

import "time"

// AuditRecord rastro de auditoría de una operación mutante exitosa.
// Se emite de forma asíncrona; si falla la emisión, la operación de negocio
// no se ve afectada (solo se registra en el log).
type AuditRecord struct {
	ID         string
	UserID     string
	EntityType string // sale, credit, payment, product, ...
	EntityID   string
	Action     string // create, void, payment, adjust, ...
	BeforeData string // snapshot JSON ("null" si no aplica)
	AfterData  string
	CreatedAt  time.Time
}
