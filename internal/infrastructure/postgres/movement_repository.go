package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, direction, quantity, reason, reference, stock_before, stock_after, created_at, created_by`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// La tabla es append-only: solo INSERT y SELECT.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, product_id, direction, quantity, reason, reference, stock_before, stock_after, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Direction, movement.Quantity,
		movement.Reason, movement.Reference, movement.StockBefore, movement.StockAfter,
		movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE id = $1`
	var m entity.InventoryMovement
	var createdBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.ProductID, &m.Direction, &m.Quantity, &m.Reason, &m.Reference,
		&m.StockBefore, &m.StockAfter, &m.CreatedAt, &createdBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

// ListByProduct lista movimientos de un producto en orden cronológico ascendente
// (orden del kardex), opcionalmente acotados por rango de fechas.
func (r *MovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Direction, &m.Quantity, &m.Reason, &m.Reference,
			&m.StockBefore, &m.StockAfter, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// TotalsByProduct suma entradas y salidas del producto. Con before != nil solo
// cuenta movimientos anteriores a esa fecha (ancla del saldo inicial del kardex).
func (r *MovementRepo) TotalsByProduct(productID string, before *time.Time) (*repository.MovementTotals, error) {
	query := `
		SELECT
			COALESCE(SUM(quantity) FILTER (WHERE direction = 'IN'), 0),
			COALESCE(SUM(quantity) FILTER (WHERE direction = 'OUT'), 0)
		FROM inventory_movements WHERE product_id = $1`
	args := []any{productID}
	if before != nil {
		query += " AND created_at < $2"
		args = append(args, *before)
	}
	var t repository.MovementTotals
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&t.In, &t.Out); err != nil {
		return nil, fmt.Errorf("totals by product: %w", err)
	}
	return &t, nil
}
