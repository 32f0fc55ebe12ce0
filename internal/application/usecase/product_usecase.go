package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-api/internal/application/audit"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock no se toca aquí:
// solo muta vía movimientos del motor de inventario.
type ProductUseCase struct {
	repo    repository.ProductRepository
	auditor *audit.Emitter
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, auditor *audit.Emitter) *ProductUseCase {
	return &ProductUseCase{repo: repo, auditor: auditor}
}

func validateProductInput(name string, price decimal.Decimal, minStock int64) []string {
	var details []string
	if name == "" {
		details = append(details, "el nombre del producto es obligatorio")
	}
	if price.IsNegative() {
		details = append(details, "el precio no puede ser negativo")
	}
	if minStock < 0 {
		details = append(details, fmt.Sprintf("el stock mínimo no puede ser negativo: %d", minStock))
	}
	return details
}

// Create crea un producto. El stock inicia en 0; las existencias entran con
// un movimiento IN.
func (uc *ProductUseCase) Create(userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if details := validateProductInput(in.Name, in.Price, in.MinStock); len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		UnitMeasure: in.UnitMeasure,
		Price:       in.Price.Round(2),
		Stock:       0,
		MinStock:    in.MinStock,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.auditor.Emit(userID, "product", product.ID, "create", nil, product)
	resp := toProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	resp := toProductResponse(product)
	return &resp, nil
}

// Update actualiza un producto. No permite modificar el stock.
func (uc *ProductUseCase) Update(userID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if details := validateProductInput(in.Name, in.Price, in.MinStock); len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}
	before := *product

	product.Name = in.Name
	if in.UnitMeasure != "" {
		product.UnitMeasure = in.UnitMeasure
	}
	product.Price = in.Price.Round(2)
	product.MinStock = in.MinStock
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.auditor.Emit(userID, "product", product.ID, "update", &before, product)
	resp := toProductResponse(product)
	return &resp, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	list := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		list = append(list, toProductResponse(p))
	}
	return list, nil
}

// ListLowStock lista productos con stock por debajo del mínimo.
func (uc *ProductUseCase) ListLowStock() ([]dto.ProductResponse, error) {
	products, err := uc.repo.ListLowStock()
	if err != nil {
		return nil, err
	}
	list := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		list = append(list, toProductResponse(p))
	}
	return list, nil
}

// Delete elimina (soft delete) un producto. Su historial de movimientos y
// sus ventas quedan intactos.
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.SoftDelete(id); err != nil {
		return err
	}
	uc.auditor.Emit(userID, "product", id, "delete", product, nil)
	return nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		UnitMeasure: p.UnitMeasure,
		Price:       p.Price,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Active:      p.Active,
		CreatedAt:   p.CreatedAt,
	}
}
