package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.CreditRepository = (*CreditRepo)(nil)

const creditColumns = `id, sale_id, client_id, principal, balance, start_date, due_date, term_days, status, created_at, updated_at`

// CreditRepo implementación sobre PostgreSQL (usable con pool o tx).
type CreditRepo struct {
	q Querier
}

// NewCreditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditRepository(q Querier) *CreditRepo {
	return &CreditRepo{q: q}
}

// Create persiste un crédito nuevo (saldo = principal, estado ACTIVE).
func (r *CreditRepo) Create(credit *entity.Credit) error {
	query := `
		INSERT INTO credits (id, sale_id, client_id, principal, balance, start_date, due_date, term_days, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		credit.ID, credit.SaleID, credit.ClientID, credit.Principal, credit.Balance,
		credit.StartDate, credit.DueDate, credit.TermDays, credit.Status,
		credit.CreatedAt, credit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert credit: %w", err)
	}
	return nil
}

func scanCredit(row pgx.Row) (*entity.Credit, error) {
	var c entity.Credit
	err := row.Scan(
		&c.ID, &c.SaleID, &c.ClientID, &c.Principal, &c.Balance,
		&c.StartDate, &c.DueDate, &c.TermDays, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan credit: %w", err)
	}
	return &c, nil
}

// GetByID obtiene un crédito por ID.
func (r *CreditRepo) GetByID(id string) (*entity.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE id = $1`
	return scanCredit(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene el crédito y bloquea la fila (SELECT FOR UPDATE) para
// aplicar pagos sin carreras entre lecturas de saldo concurrentes.
func (r *CreditRepo) GetForUpdate(id string) (*entity.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE id = $1 FOR UPDATE`
	return scanCredit(r.q.QueryRow(context.Background(), query, id))
}

// GetBySaleID obtiene el crédito asociado a una venta (relación 1 a 1).
func (r *CreditRepo) GetBySaleID(saleID string) (*entity.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE sale_id = $1`
	return scanCredit(r.q.QueryRow(context.Background(), query, saleID))
}

// UpdateBalanceStatus escribe saldo y estado (llamar solo con la fila bloqueada).
func (r *CreditRepo) UpdateBalanceStatus(creditID string, balance decimal.Decimal, status entity.CreditStatus) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE credits SET balance = $2, status = $3, updated_at = now() WHERE id = $1`,
		creditID, balance, status,
	)
	if err != nil {
		return fmt.Errorf("update credit balance: %w", err)
	}
	return nil
}

// CreatePayment persiste un abono (append-only).
func (r *CreditRepo) CreatePayment(payment *entity.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, credit_id, amount, method, notes, resulting_balance, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.CreditID, payment.Amount, payment.Method, payment.Notes,
		payment.ResultingBalance, payment.CreatedBy, payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListPayments lista los abonos de un crédito en orden cronológico.
func (r *CreditRepo) ListPayments(creditID string) ([]*entity.Payment, error) {
	query := `
		SELECT id, credit_id, amount, method, notes, resulting_balance, created_by, created_at
		FROM payments WHERE credit_id = $1 ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, creditID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.CreditID, &p.Amount, &p.Method, &p.Notes,
			&p.ResultingBalance, &p.CreatedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List lista créditos según filtro, más recientes primero.
func (r *CreditRepo) List(filter repository.CreditFilter, limit, offset int) ([]*entity.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits WHERE 1=1`
	var args []any
	pos := 1
	add := func(cond string, val any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, val)
		pos++
	}
	if filter.ClientID != "" {
		add("client_id = $%d", filter.ClientID)
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.From != nil {
		add("start_date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("start_date <= $%d", *filter.To)
	}
	query += fmt.Sprintf(" ORDER BY start_date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list credits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Credit
	for rows.Next() {
		var c entity.Credit
		if err := rows.Scan(&c.ID, &c.SaleID, &c.ClientID, &c.Principal, &c.Balance,
			&c.StartDate, &c.DueDate, &c.TermDays, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan credit: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// SumOutstandingByClient suma los saldos ACTIVE + OVERDUE del cliente.
func (r *CreditRepo) SumOutstandingByClient(clientID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(balance), 0) FROM credits WHERE client_id = $1 AND status IN ('ACTIVE', 'OVERDUE')`,
		clientID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum outstanding: %w", err)
	}
	return sum, nil
}

// HasOverdueByClient indica si el cliente tiene algún crédito vencido.
func (r *CreditRepo) HasOverdueByClient(clientID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM credits WHERE client_id = $1 AND status = 'OVERDUE')`,
		clientID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has overdue: %w", err)
	}
	return exists, nil
}

// MarkOverdue pasa a OVERDUE los créditos ACTIVE vencidos. Idempotente:
// correr el barrido dos veces no cambia nada la segunda vez.
func (r *CreditRepo) MarkOverdue(now time.Time) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE credits SET status = 'OVERDUE', updated_at = $1 WHERE status = 'ACTIVE' AND due_date < $1`,
		now,
	)
	if err != nil {
		return 0, fmt.Errorf("mark overdue: %w", err)
	}
	return cmd.RowsAffected(), nil
}
