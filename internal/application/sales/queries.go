package sales

import (
	"context"

	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// GetSale obtiene una venta con sus líneas y, si es a crédito, el resumen
// del crédito asociado.
func (uc *UseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	lines, err := uc.saleRepo.GetLines(id)
	if err != nil {
		return nil, err
	}
	var credit *entity.Credit
	if sale.Type == entity.SaleTypeCredit {
		credit, err = uc.creditRepo.GetBySaleID(id)
		if err != nil {
			return nil, err
		}
	}
	resp := toSaleResponse(sale, lines, len(lines), credit)
	return &resp, nil
}

// ListSales lista ventas según filtro (cliente, operador, tipo, estado, rango
// de fechas). Sin líneas; el detalle se pide por ID.
func (uc *UseCase) ListSales(ctx context.Context, filter repository.SaleFilter, limit, offset int) ([]dto.SaleResponse, error) {
	sales, err := uc.saleRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	list := make([]dto.SaleResponse, 0, len(sales))
	for _, s := range sales {
		list = append(list, toSaleResponse(s, nil, 0, nil))
	}
	return list, nil
}
