package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-api/internal/application/audit"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// UseCase es el motor de inventario: único camino por el que cambia el stock.
// Cada operación corre en una transacción con la fila del producto bloqueada
// (SELECT FOR UPDATE), y agrega un movimiento inmutable al historial.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	auditor     *audit.Emitter
}

// NewUseCase construye el motor de inventario.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, movRepo repository.MovementRepository, auditor *audit.Emitter) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, movRepo: movRepo, auditor: auditor}
}

// MovementInput entrada para RecordIn / RecordOut.
type MovementInput struct {
	ProductID string
	Quantity  int64
	Reason    string
	Reference string
	UserID    string
}

// AdjustInput entrada para AdjustTo.
type AdjustInput struct {
	ProductID      string
	TargetQuantity int64
	Reason         string
	Reference      string
	UserID         string
}

func validateMovementInput(in MovementInput) error {
	var details []string
	if in.ProductID == "" {
		details = append(details, "product_id es obligatorio")
	}
	if in.Quantity <= 0 {
		details = append(details, fmt.Sprintf("la cantidad debe ser un entero positivo: %d", in.Quantity))
	}
	if in.Reason == "" {
		details = append(details, "la razón del movimiento es obligatoria")
	}
	if len(details) > 0 {
		return domain.Detailed(domain.ErrInvalidInput, details...)
	}
	return nil
}

// RecordIn registra una entrada: suma stock y agrega el movimiento IN,
// ambos en la misma transacción. Devuelve el movimiento con stock antes/después.
func (uc *UseCase) RecordIn(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	return uc.record(ctx, entity.MovementIn, in)
}

// RecordOut registra una salida. Falla con ErrInsufficientStock si el stock
// vigente es menor a la cantidad solicitada.
func (uc *UseCase) RecordOut(ctx context.Context, in MovementInput) (*dto.MovementResponse, error) {
	return uc.record(ctx, entity.MovementOut, in)
}

func (uc *UseCase) record(ctx context.Context, dir entity.MovementDirection, in MovementInput) (*dto.MovementResponse, error) {
	if err := validateMovementInput(in); err != nil {
		return nil, err
	}
	// Validación de lectura fuera de la tx; dentro se re-lee bajo lock.
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.Sellable() {
		return nil, domain.Detailed(domain.ErrInvalidInput,
			fmt.Sprintf("el producto %s está inactivo o eliminado", product.Name))
	}

	now := time.Now()
	var mov *entity.InventoryMovement
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		mov, err = applyMovement(movRepo, productRepo, in.ProductID, dir, in.Quantity, in.Reason, in.Reference, in.UserID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.auditor.Emit(in.UserID, "inventory_movement", mov.ID, "create", nil, mov)
	return toMovementResponse(mov), nil
}

// AdjustTo lleva el stock a la cantidad objetivo: calcula el delta contra el
// stock bloqueado y registra la entrada o salida correspondiente. Un objetivo
// igual al stock actual es un error de validación (ajuste sin efecto).
func (uc *UseCase) AdjustTo(ctx context.Context, in AdjustInput) (*dto.MovementResponse, error) {
	var details []string
	if in.ProductID == "" {
		details = append(details, "product_id es obligatorio")
	}
	if in.TargetQuantity < 0 {
		details = append(details, fmt.Sprintf("la cantidad objetivo no puede ser negativa: %d", in.TargetQuantity))
	}
	if in.Reason == "" {
		details = append(details, "la razón del ajuste es obligatoria")
	}
	if len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.Sellable() {
		return nil, domain.Detailed(domain.ErrInvalidInput,
			fmt.Sprintf("el producto %s está inactivo o eliminado", product.Name))
	}

	now := time.Now()
	var mov *entity.InventoryMovement
	err = uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		locked, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		delta := in.TargetQuantity - locked.Stock
		if delta == 0 {
			return domain.Detailed(domain.ErrInvalidInput,
				fmt.Sprintf("ajuste sin efecto: el stock ya es %d", locked.Stock))
		}
		dir := entity.MovementIn
		qty := delta
		if delta < 0 {
			dir = entity.MovementOut
			qty = -delta
		}
		mov, err = applyLocked(movRepo, productRepo, locked, dir, qty, in.Reason, in.Reference, in.UserID, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.auditor.Emit(in.UserID, "inventory_movement", mov.ID, "adjust", nil, mov)
	return toMovementResponse(mov), nil
}

// RecordOutInTx ejecuta una salida usando los repositorios del caller (misma
// transacción). Lo usa el orquestador de ventas para descontar stock por línea.
func (uc *UseCase) RecordOutInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID string, quantity int64,
	reason, reference, userID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	return applyMovement(movRepo, productRepo, productID, entity.MovementOut, quantity, reason, reference, userID, now)
}

// RecordInInTx ejecuta una entrada en la transacción del caller. Lo usa la
// anulación de ventas para los movimientos compensatorios.
func (uc *UseCase) RecordInInTx(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID string, quantity int64,
	reason, reference, userID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	return applyMovement(movRepo, productRepo, productID, entity.MovementIn, quantity, reason, reference, userID, now)
}

// applyMovement bloquea la fila del producto y aplica el movimiento.
func applyMovement(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	productID string, dir entity.MovementDirection, quantity int64,
	reason, reference, userID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	product, err := productRepo.GetForUpdate(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return applyLocked(movRepo, productRepo, product, dir, quantity, reason, reference, userID, now)
}

// applyLocked muta el stock del producto ya bloqueado y persiste el movimiento.
// El chequeo de suficiencia vive aquí, bajo lock: dos ventas simultáneas del
// mismo producto no pueden leer el mismo stock viejo.
func applyLocked(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	dir entity.MovementDirection, quantity int64,
	reason, reference, userID string,
	now time.Time,
) (*entity.InventoryMovement, error) {
	stockBefore := product.Stock
	var stockAfter int64
	switch dir {
	case entity.MovementIn:
		stockAfter = stockBefore + quantity
	case entity.MovementOut:
		if stockBefore < quantity {
			return nil, domain.Detailed(domain.ErrInsufficientStock,
				fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d, producto %s", stockBefore, quantity, product.Name))
		}
		stockAfter = stockBefore - quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	if err := productRepo.UpdateStock(product.ID, stockAfter); err != nil {
		return nil, err
	}
	mov := &entity.InventoryMovement{
		ID:          uuid.New().String(),
		ProductID:   product.ID,
		Direction:   dir,
		Quantity:    quantity,
		Reason:      reason,
		Reference:   reference,
		StockBefore: stockBefore,
		StockAfter:  stockAfter,
		CreatedAt:   now,
		CreatedBy:   userID,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, err
	}
	product.Stock = stockAfter
	return mov, nil
}

func toMovementResponse(m *entity.InventoryMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Direction:   string(m.Direction),
		Quantity:    m.Quantity,
		Reason:      m.Reason,
		Reference:   m.Reference,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		CreatedAt:   m.CreatedAt,
	}
}
