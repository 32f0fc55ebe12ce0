package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// CreditFilter filtros para listar créditos.
type CreditFilter struct {
	ClientID string
	Status   entity.CreditStatus
	From     *time.Time
	To       *time.Time
}

// CreditRepository define el puerto de persistencia para créditos y pagos.
// Los pagos son append-only; del crédito solo mutan saldo y estado.
type CreditRepository interface {
	Create(credit *entity.Credit) error
	GetByID(id string) (*entity.Credit, error)
	// GetForUpdate bloquea la fila del crédito (SELECT FOR UPDATE) para
	// aplicar pagos como leer-modificar-escribir sin carreras.
	GetForUpdate(id string) (*entity.Credit, error)
	GetBySaleID(saleID string) (*entity.Credit, error)
	UpdateBalanceStatus(creditID string, balance decimal.Decimal, status entity.CreditStatus) error
	CreatePayment(payment *entity.Payment) error
	ListPayments(creditID string) ([]*entity.Payment, error)
	List(filter CreditFilter, limit, offset int) ([]*entity.Credit, error)
	// SumOutstandingByClient suma los saldos de créditos ACTIVE y OVERDUE
	// del cliente (única agregación usada para crédito disponible).
	SumOutstandingByClient(clientID string) (decimal.Decimal, error)
	HasOverdueByClient(clientID string) (bool, error)
	// MarkOverdue pasa a OVERDUE todo crédito ACTIVE con fecha de
	// vencimiento anterior a now. Idempotente. Devuelve filas afectadas.
	MarkOverdue(now time.Time) (int64, error)
}
