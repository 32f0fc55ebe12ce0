package credit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-api/internal/application/credit"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeCreditRepo struct {
	credits  map[string]*entity.Credit
	payments []*entity.Payment
}

func newFakeCreditRepo(credits ...*entity.Credit) *fakeCreditRepo {
	r := &fakeCreditRepo{credits: map[string]*entity.Credit{}}
	for _, c := range credits {
		r.credits[c.ID] = c
	}
	return r
}

func (r *fakeCreditRepo) Create(c *entity.Credit) error { r.credits[c.ID] = c; return nil }
func (r *fakeCreditRepo) GetByID(id string) (*entity.Credit, error) {
	c, ok := r.credits[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *fakeCreditRepo) GetForUpdate(id string) (*entity.Credit, error) { return r.GetByID(id) }
func (r *fakeCreditRepo) GetBySaleID(saleID string) (*entity.Credit, error) {
	for _, c := range r.credits {
		if c.SaleID == saleID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeCreditRepo) UpdateBalanceStatus(id string, balance decimal.Decimal, status entity.CreditStatus) error {
	c, ok := r.credits[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.Balance = balance
	c.Status = status
	return nil
}
func (r *fakeCreditRepo) CreatePayment(p *entity.Payment) error {
	r.payments = append(r.payments, p)
	return nil
}
func (r *fakeCreditRepo) ListPayments(creditID string) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, p := range r.payments {
		if p.CreditID == creditID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeCreditRepo) List(filter repository.CreditFilter, limit, offset int) ([]*entity.Credit, error) {
	var out []*entity.Credit
	for _, c := range r.credits {
		if filter.ClientID != "" && c.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}
func (r *fakeCreditRepo) SumOutstandingByClient(clientID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.credits {
		if c.ClientID == clientID && c.Status.Outstanding() {
			sum = sum.Add(c.Balance)
		}
	}
	return sum, nil
}
func (r *fakeCreditRepo) HasOverdueByClient(clientID string) (bool, error) {
	for _, c := range r.credits {
		if c.ClientID == clientID && c.Status == entity.CreditStatusOverdue {
			return true, nil
		}
	}
	return false, nil
}
func (r *fakeCreditRepo) MarkOverdue(now time.Time) (int64, error) {
	var n int64
	for _, c := range r.credits {
		if c.Status == entity.CreditStatusActive && c.DueDate.Before(now) {
			c.Status = entity.CreditStatusOverdue
			n++
		}
	}
	return n, nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo(clients ...*entity.Client) *fakeClientRepo {
	r := &fakeClientRepo{clients: map[string]*entity.Client{}}
	for _, c := range clients {
		r.clients[c.ID] = c
	}
	return r
}

func (r *fakeClientRepo) Create(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *fakeClientRepo) Update(c *entity.Client) error { r.clients[c.ID] = c; return nil }
func (r *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}
func (r *fakeClientRepo) SoftDelete(id string) error {
	delete(r.clients, id)
	return nil
}

type fakeCreditTxRunner struct {
	repo *fakeCreditRepo
}

func (r *fakeCreditTxRunner) RunCredit(ctx context.Context, fn func(
	creditRepo repository.CreditRepository,
) error) error {
	return fn(r.repo)
}

func activeCredit(id, clientID string, balance int64) *entity.Credit {
	now := time.Now()
	return &entity.Credit{
		ID:        id,
		SaleID:    "sale-" + id,
		ClientID:  clientID,
		Principal: decimal.NewFromInt(balance),
		Balance:   decimal.NewFromInt(balance),
		StartDate: now,
		DueDate:   now.AddDate(0, 0, 30),
		TermDays:  30,
		Status:    entity.CreditStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func creditClient(id string, limit int64) *entity.Client {
	return &entity.Client{
		ID:          id,
		Name:        "Tienda La Esquina",
		Class:       entity.ClientClassCredit,
		CreditLimit: decimal.NewFromInt(limit),
		Active:      true,
	}
}

func newTestUseCase(creditRepo *fakeCreditRepo, clientRepo *fakeClientRepo) *credit.UseCase {
	return credit.NewUseCase(&fakeCreditTxRunner{repo: creditRepo}, creditRepo, clientRepo, nil)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyPayment_AbonoParcial(t *testing.T) {
	creditRepo := newFakeCreditRepo(activeCredit("c1", "cl1", 1000))
	uc := newTestUseCase(creditRepo, newFakeClientRepo())

	out, err := uc.ApplyPayment(context.Background(), credit.ApplyPaymentInput{
		CreditID: "c1",
		Amount:   decimal.NewFromInt(400),
		Method:   "efectivo",
		UserID:   "u1",
	})
	require.NoError(t, err)

	assert.True(t, out.PreviousBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, out.NewBalance.Equal(decimal.NewFromInt(600)))
	assert.False(t, out.Settled)
	assert.Equal(t, "ACTIVE", out.Credit.Status, "un abono parcial no cambia el estado")
	assert.True(t, out.Payment.ResultingBalance.Equal(decimal.NewFromInt(600)))

	persisted, _ := creditRepo.GetByID("c1")
	assert.True(t, persisted.Balance.Equal(decimal.NewFromInt(600)))
}

func TestApplyPayment_SaldaCompleto_PasaAPaid(t *testing.T) {
	creditRepo := newFakeCreditRepo(activeCredit("c1", "cl1", 500))
	uc := newTestUseCase(creditRepo, newFakeClientRepo())

	out, err := uc.ApplyPayment(context.Background(), credit.ApplyPaymentInput{
		CreditID: "c1",
		Amount:   decimal.NewFromInt(500),
		Method:   "transferencia",
		UserID:   "u1",
	})
	require.NoError(t, err)

	assert.True(t, out.Settled)
	assert.Equal(t, "PAID", out.Credit.Status)
	assert.True(t, out.NewBalance.IsZero())
}

func TestApplyPayment_ExcedeSaldo_Rechazado(t *testing.T) {
	creditRepo := newFakeCreditRepo(activeCredit("c1", "cl1", 300))
	uc := newTestUseCase(creditRepo, newFakeClientRepo())

	_, err := uc.ApplyPayment(context.Background(), credit.ApplyPaymentInput{
		CreditID: "c1",
		Amount:   decimal.NewFromInt(301),
		Method:   "efectivo",
		UserID:   "u1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrExcessPayment))
	assert.Empty(t, creditRepo.payments, "un pago rechazado no debe persistirse")

	persisted, _ := creditRepo.GetByID("c1")
	assert.True(t, persisted.Balance.Equal(decimal.NewFromInt(300)), "el saldo no debe cambiar")
}

func TestApplyPayment_CreditoPagado_Rechazado(t *testing.T) {
	c := activeCredit("c1", "cl1", 0)
	c.Status = entity.CreditStatusPaid
	creditRepo := newFakeCreditRepo(c)
	uc := newTestUseCase(creditRepo, newFakeClientRepo())

	_, err := uc.ApplyPayment(context.Background(), credit.ApplyPaymentInput{
		CreditID: "c1",
		Amount:   decimal.NewFromInt(10),
		Method:   "efectivo",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAlreadySettled))
}

func TestApplyPayment_CreditoAnulado_Rechazado(t *testing.T) {
	c := activeCredit("c1", "cl1", 200)
	c.Status = entity.CreditStatusVoid
	c.Balance = decimal.Zero
	creditRepo := newFakeCreditRepo(c)
	uc := newTestUseCase(creditRepo, newFakeClientRepo())

	_, err := uc.ApplyPayment(context.Background(), credit.ApplyPaymentInput{
		CreditID: "c1",
		Amount:   decimal.NewFromInt(10),
		Method:   "efectivo",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAlreadySettled))
}

func TestApplyPayment_PagoSobreVencido_Permitido(t *testing.T) {
	c := activeCredit("c1", "cl1", 800)
	c.Status = entity.CreditStatusOverdue
	creditRepo := newFakeCreditRepo(c)
	uc := newTestUseCase(creditRepo, newFakeClientRepo())

	out, err := uc.ApplyPayment(context.Background(), credit.ApplyPaymentInput{
		CreditID: "c1",
		Amount:   decimal.NewFromInt(800),
		Method:   "efectivo",
	})
	require.NoError(t, err)
	assert.Equal(t, "PAID", out.Credit.Status, "saldar un crédito OVERDUE lo pasa a PAID")
}

func TestApplyPayment_ValidacionAcumulada(t *testing.T) {
	uc := newTestUseCase(newFakeCreditRepo(), newFakeClientRepo())

	_, err := uc.ApplyPayment(context.Background(), credit.ApplyPaymentInput{
		CreditID: "",
		Amount:   decimal.Zero,
		Method:   "",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Len(t, domain.DetailsOf(err), 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Barrido de vencidos
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkOverdue_Idempotente(t *testing.T) {
	vencido := activeCredit("c1", "cl1", 500)
	vencido.DueDate = time.Now().AddDate(0, 0, -3)
	vigente := activeCredit("c2", "cl1", 300)
	creditRepo := newFakeCreditRepo(vencido, vigente)
	uc := newTestUseCase(creditRepo, newFakeClientRepo())

	n, err := uc.MarkOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "solo el crédito vencido debe marcarse")

	c1, _ := creditRepo.GetByID("c1")
	assert.Equal(t, entity.CreditStatusOverdue, c1.Status)
	c2, _ := creditRepo.GetByID("c2")
	assert.Equal(t, entity.CreditStatusActive, c2.Status)

	// Segunda pasada: nada nuevo que marcar
	n, err = uc.MarkOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

// ──────────────────────────────────────────────────────────────────────────────
// Disponibilidad
// ──────────────────────────────────────────────────────────────────────────────

func TestAvailability_AgregaSaldosVigentes(t *testing.T) {
	pagado := activeCredit("c3", "cl1", 0)
	pagado.Status = entity.CreditStatusPaid
	creditRepo := newFakeCreditRepo(
		activeCredit("c1", "cl1", 400),
		activeCredit("c2", "cl1", 300),
		pagado,
	)
	clientRepo := newFakeClientRepo(creditClient("cl1", 1000))
	uc := newTestUseCase(creditRepo, clientRepo)

	out, err := uc.Availability(context.Background(), "cl1")
	require.NoError(t, err)

	assert.True(t, out.Outstanding.Equal(decimal.NewFromInt(700)), "solo ACTIVE+OVERDUE cuentan")
	assert.True(t, out.Disposable.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "AVAILABLE", out.Status)
}

func TestAvailability_ConVencido_EnMora(t *testing.T) {
	overdue := activeCredit("c1", "cl1", 200)
	overdue.Status = entity.CreditStatusOverdue
	creditRepo := newFakeCreditRepo(overdue)
	clientRepo := newFakeClientRepo(creditClient("cl1", 1000))
	uc := newTestUseCase(creditRepo, clientRepo)

	out, err := uc.Availability(context.Background(), "cl1")
	require.NoError(t, err)

	assert.True(t, out.InArrears)
	assert.Equal(t, "IN_ARREARS", out.Status)
}

func TestAvailability_ClienteInexistente(t *testing.T) {
	uc := newTestUseCase(newFakeCreditRepo(), newFakeClientRepo())

	_, err := uc.Availability(context.Background(), "no-existe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Apertura
// ──────────────────────────────────────────────────────────────────────────────

func TestOpenCreditInTx_PlazoPorDefecto(t *testing.T) {
	creditRepo := newFakeCreditRepo()
	uc := newTestUseCase(creditRepo, newFakeClientRepo())

	now := time.Now()
	sale := &entity.Sale{ID: "s1", Total: decimal.NewFromInt(900)}
	c, err := uc.OpenCreditInTx(creditRepo, sale, creditClient("cl1", 2000), 0, now)
	require.NoError(t, err)

	assert.Equal(t, credit.DefaultTermDays, c.TermDays)
	assert.Equal(t, now.AddDate(0, 0, 30).Unix(), c.DueDate.Unix())
	assert.True(t, c.Principal.Equal(decimal.NewFromInt(900)))
	assert.True(t, c.Balance.Equal(c.Principal), "el saldo inicial equivale al principal")
	assert.Equal(t, entity.CreditStatusActive, c.Status)
}

func TestOpenCreditInTx_ClienteContado_Rechazado(t *testing.T) {
	creditRepo := newFakeCreditRepo()
	uc := newTestUseCase(creditRepo, newFakeClientRepo())

	cashClient := &entity.Client{ID: "cl2", Name: "Ocasional", Class: entity.ClientClassCash, Active: true}
	sale := &entity.Sale{ID: "s1", Total: decimal.NewFromInt(100)}
	_, err := uc.OpenCreditInTx(creditRepo, sale, cashClient, 30, time.Now())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
}
