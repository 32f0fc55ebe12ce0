package repository

import "github.com/jhoicas/ventas-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// El stock solo se escribe vía UpdateStock dentro de una transacción del
// motor de inventario, después de bloquear la fila con GetForUpdate.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// leer-modificar-escribir el stock sin carreras.
	GetForUpdate(id string) (*entity.Product, error)
	UpdateStock(productID string, stock int64) error
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	SoftDelete(id string) error
}
