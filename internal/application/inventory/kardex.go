package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
)

// Kardex reconstruye el historial cronológico de un producto con saldo
// corrido. El saldo inicial se ancla al stock calculado desde los movimientos
// anteriores al inicio del rango, de modo que el corrido del rango cuadre con
// la historia completa.
func (uc *UseCase) Kardex(ctx context.Context, productID string, from, to *time.Time, limit, offset int) (*dto.KardexResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	var initial int64
	if from != nil {
		totals, err := uc.movRepo.TotalsByProduct(productID, from)
		if err != nil {
			return nil, err
		}
		initial = totals.In - totals.Out
	}

	movements, err := uc.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}

	resp := &dto.KardexResponse{
		ProductID:      productID,
		From:           from,
		To:             to,
		InitialBalance: initial,
		Entries:        make([]dto.KardexEntry, 0, len(movements)),
	}
	balance := initial
	for _, m := range movements {
		before := balance
		if m.Direction == entity.MovementIn {
			balance += m.Quantity
			resp.TotalIn += m.Quantity
		} else {
			balance -= m.Quantity
			resp.TotalOut += m.Quantity
		}
		resp.Entries = append(resp.Entries, dto.KardexEntry{
			MovementID:    m.ID,
			Date:          m.CreatedAt,
			Direction:     string(m.Direction),
			Quantity:      m.Quantity,
			Reason:        m.Reason,
			Reference:     m.Reference,
			BalanceBefore: before,
			BalanceAfter:  balance,
		})
	}
	resp.FinalBalance = balance
	return resp, nil
}

// History lista los movimientos de un producto (orden cronológico).
func (uc *UseCase) History(ctx context.Context, productID string, from, to *time.Time, limit, offset int) ([]*dto.MovementResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	list := make([]*dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		list = append(list, toMovementResponse(m))
	}
	return list, nil
}

// Stats agregados de inventario de un producto: stock vigente y totales
// históricos de entradas y salidas.
func (uc *UseCase) Stats(ctx context.Context, productID string) (*dto.StockStatsResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	totals, err := uc.movRepo.TotalsByProduct(productID, nil)
	if err != nil {
		return nil, err
	}
	return &dto.StockStatsResponse{
		ProductID:    productID,
		CurrentStock: product.Stock,
		TotalIn:      totals.In,
		TotalOut:     totals.Out,
		MinStock:     product.MinStock,
		BelowMinimum: product.Stock < product.MinStock,
	}, nil
}
