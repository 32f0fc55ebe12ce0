package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *fakeProductRepo) UpdateStock(id string, stock int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	return nil
}
func (r *fakeProductRepo) Update(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}
func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.Stock < p.MinStock {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeProductRepo) SoftDelete(id string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	p.Active = false
	return nil
}

type fakeMovementRepo struct {
	movements []*entity.InventoryMovement
}

func (r *fakeMovementRepo) Create(m *entity.InventoryMovement) error {
	r.movements = append(r.movements, m)
	return nil
}
func (r *fakeMovementRepo) GetByID(id string) (*entity.InventoryMovement, error) {
	for _, m := range r.movements {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}
func (r *fakeMovementRepo) ListByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for _, m := range r.movements {
		if m.ProductID != productID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
func (r *fakeMovementRepo) TotalsByProduct(productID string, before *time.Time) (*repository.MovementTotals, error) {
	totals := &repository.MovementTotals{}
	for _, m := range r.movements {
		if m.ProductID != productID {
			continue
		}
		if before != nil && !m.CreatedAt.Before(*before) {
			continue
		}
		if m.Direction == entity.MovementIn {
			totals.In += m.Quantity
		} else {
			totals.Out += m.Quantity
		}
	}
	return totals, nil
}

// fakeTxRunner pasa los fakes directamente: sin transacción real, los tests
// verifican que las escrituras ocurran solo después de todas las validaciones.
type fakeTxRunner struct {
	movRepo     *fakeMovementRepo
	productRepo *fakeProductRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.movRepo, r.productRepo)
}

func testProduct(id string, stock int64) *entity.Product {
	return &entity.Product{
		ID:          id,
		Name:        "Arroz 500g",
		UnitMeasure: "unidad",
		Price:       decimal.NewFromInt(2500),
		Stock:       stock,
		MinStock:    5,
		Active:      true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func newTestUseCase(products ...*entity.Product) (*inventory.UseCase, *fakeProductRepo, *fakeMovementRepo) {
	productRepo := newFakeProductRepo(products...)
	movRepo := &fakeMovementRepo{}
	runner := &fakeTxRunner{movRepo: movRepo, productRepo: productRepo}
	uc := inventory.NewUseCase(runner, productRepo, movRepo, nil)
	return uc, productRepo, movRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas y salidas
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordIn_SumaStockYRegistraMovimiento(t *testing.T) {
	uc, productRepo, movRepo := newTestUseCase(testProduct("p1", 10))

	out, err := uc.RecordIn(context.Background(), inventory.MovementInput{
		ProductID: "p1", Quantity: 15, Reason: "Compra", Reference: "OC-001", UserID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), out.StockBefore)
	assert.Equal(t, int64(25), out.StockAfter)
	assert.Equal(t, "IN", out.Direction)

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(25), p.Stock, "el stock persistido debe reflejar la entrada")
	assert.Len(t, movRepo.movements, 1)
}

func TestRecordOut_DescuentaStock(t *testing.T) {
	uc, productRepo, _ := newTestUseCase(testProduct("p1", 10))

	out, err := uc.RecordOut(context.Background(), inventory.MovementInput{
		ProductID: "p1", Quantity: 4, Reason: "Merma", UserID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), out.StockBefore)
	assert.Equal(t, int64(6), out.StockAfter)

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(6), p.Stock)
}

func TestRecordOut_StockInsuficiente_NoEscribeNada(t *testing.T) {
	uc, productRepo, movRepo := newTestUseCase(testProduct("p1", 3))

	_, err := uc.RecordOut(context.Background(), inventory.MovementInput{
		ProductID: "p1", Quantity: 5, Reason: "Venta", UserID: "u1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	details := domain.DetailsOf(err)
	require.Len(t, details, 1)
	assert.Contains(t, details[0], "disponible 3")
	assert.Contains(t, details[0], "solicitado 5")

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(3), p.Stock, "el stock no debe cambiar en una salida fallida")
	assert.Empty(t, movRepo.movements, "no debe registrarse ningún movimiento")
}

func TestRecordIn_ValidacionAcumulada(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.RecordIn(context.Background(), inventory.MovementInput{
		ProductID: "", Quantity: 0, Reason: "",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Len(t, domain.DetailsOf(err), 3,
		"deben reportarse las tres violaciones, no solo la primera")
}

func TestRecordIn_ProductoInactivo_Rechazado(t *testing.T) {
	p := testProduct("p1", 10)
	p.Active = false
	uc, _, movRepo := newTestUseCase(p)

	_, err := uc.RecordIn(context.Background(), inventory.MovementInput{
		ProductID: "p1", Quantity: 1, Reason: "Compra", UserID: "u1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, movRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ajustes
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustTo_ObjetivoMayor_RegistraEntrada(t *testing.T) {
	uc, productRepo, _ := newTestUseCase(testProduct("p1", 10))

	out, err := uc.AdjustTo(context.Background(), inventory.AdjustInput{
		ProductID: "p1", TargetQuantity: 18, Reason: "Conteo físico", UserID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, "IN", out.Direction)
	assert.Equal(t, int64(8), out.Quantity)

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(18), p.Stock)
}

func TestAdjustTo_ObjetivoMenor_RegistraSalida(t *testing.T) {
	uc, productRepo, _ := newTestUseCase(testProduct("p1", 10))

	out, err := uc.AdjustTo(context.Background(), inventory.AdjustInput{
		ProductID: "p1", TargetQuantity: 4, Reason: "Conteo físico", UserID: "u1",
	})
	require.NoError(t, err)

	assert.Equal(t, "OUT", out.Direction)
	assert.Equal(t, int64(6), out.Quantity)

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(4), p.Stock)
}

func TestAdjustTo_SinEfecto_Error(t *testing.T) {
	uc, _, movRepo := newTestUseCase(testProduct("p1", 10))

	_, err := uc.AdjustTo(context.Background(), inventory.AdjustInput{
		ProductID: "p1", TargetQuantity: 10, Reason: "Conteo físico", UserID: "u1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, movRepo.movements)
}

// ──────────────────────────────────────────────────────────────────────────────
// Kardex y estadísticas
// ──────────────────────────────────────────────────────────────────────────────

func TestKardex_SaldoCorrido(t *testing.T) {
	uc, _, _ := newTestUseCase(testProduct("p1", 0))
	ctx := context.Background()

	_, err := uc.RecordIn(ctx, inventory.MovementInput{ProductID: "p1", Quantity: 20, Reason: "Compra", UserID: "u1"})
	require.NoError(t, err)
	_, err = uc.RecordOut(ctx, inventory.MovementInput{ProductID: "p1", Quantity: 5, Reason: "Venta", UserID: "u1"})
	require.NoError(t, err)
	_, err = uc.RecordIn(ctx, inventory.MovementInput{ProductID: "p1", Quantity: 3, Reason: "Devolución", UserID: "u1"})
	require.NoError(t, err)

	kardex, err := uc.Kardex(ctx, "p1", nil, nil, 100, 0)
	require.NoError(t, err)

	require.Len(t, kardex.Entries, 3)
	assert.Equal(t, int64(0), kardex.InitialBalance)
	assert.Equal(t, int64(23), kardex.TotalIn)
	assert.Equal(t, int64(5), kardex.TotalOut)
	assert.Equal(t, int64(18), kardex.FinalBalance)

	// Saldo corrido entrada por entrada
	assert.Equal(t, int64(0), kardex.Entries[0].BalanceBefore)
	assert.Equal(t, int64(20), kardex.Entries[0].BalanceAfter)
	assert.Equal(t, int64(15), kardex.Entries[1].BalanceAfter)
	assert.Equal(t, int64(18), kardex.Entries[2].BalanceAfter)
}

func TestStats_TotalesYBajoMinimo(t *testing.T) {
	uc, _, _ := newTestUseCase(testProduct("p1", 0))
	ctx := context.Background()

	_, err := uc.RecordIn(ctx, inventory.MovementInput{ProductID: "p1", Quantity: 7, Reason: "Compra", UserID: "u1"})
	require.NoError(t, err)
	_, err = uc.RecordOut(ctx, inventory.MovementInput{ProductID: "p1", Quantity: 4, Reason: "Venta", UserID: "u1"})
	require.NoError(t, err)

	stats, err := uc.Stats(ctx, "p1")
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.CurrentStock)
	assert.Equal(t, int64(7), stats.TotalIn)
	assert.Equal(t, int64(4), stats.TotalOut)
	assert.True(t, stats.BelowMinimum, "stock 3 con mínimo 5 debe marcar bajo mínimo")
}
