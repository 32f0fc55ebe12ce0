package audit

import (
	"encoding/json"
	"time"

	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// Emitter emite registros de auditoría en segundo plano después de cada
// operación mutante exitosa. Si la emisión falla, solo se registra en el log:
// la operación de negocio nunca se ve afectada. Un Emitter nil es válido y
// no hace nada (útil en tests).
type Emitter struct {
	repo repository.AuditRepository
	log  *logger.Logger
}

// NewEmitter construye el emisor.
func NewEmitter(repo repository.AuditRepository, log *logger.Logger) *Emitter {
	return &Emitter{repo: repo, log: log}
}

// Emit registra el evento de forma asíncrona (fire-and-forget).
func (e *Emitter) Emit(userID, entityType, entityID, action string, before, after any) {
	if e == nil {
		return
	}
	record := &entity.AuditRecord{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		BeforeData: toJSON(before),
		AfterData:  toJSON(after),
		CreatedAt:  time.Now(),
	}
	go func() {
		if err := e.repo.Create(record); err != nil {
			e.log.Warn().Err(err).
				Str("entity", entityType).
				Str("entity_id", entityID).
				Str("action", action).
				Msg("registro de auditoría no persistido")
		}
	}()
}

// toJSON serializa el snapshot; "null" si no aplica (columna jsonb).
func toJSON(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}
