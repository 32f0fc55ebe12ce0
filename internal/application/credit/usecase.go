package credit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-api/internal/application/audit"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain"
	domcredit "github.com/jhoicas/ventas-api/internal/domain/credit"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// UseCase es el libro de créditos: dueño del ciclo de vida de las cuentas por
// cobrar (apertura, pagos, vencimiento, anulación). Las transiciones legales
// se validan aquí, nunca en los callers.
type UseCase struct {
	txRunner   TxRunner
	creditRepo repository.CreditRepository
	clientRepo repository.ClientRepository
	auditor    *audit.Emitter
}

// NewUseCase construye el libro de créditos.
func NewUseCase(txRunner TxRunner, creditRepo repository.CreditRepository, clientRepo repository.ClientRepository, auditor *audit.Emitter) *UseCase {
	return &UseCase{txRunner: txRunner, creditRepo: creditRepo, clientRepo: clientRepo, auditor: auditor}
}

// DefaultTermDays plazo por defecto de una venta a crédito.
const DefaultTermDays = 30

// OpenCreditInTx abre un crédito dentro de la transacción del caller (solo lo
// invoca el orquestador de ventas). El principal y el saldo inicial equivalen
// al total post-descuento de la venta.
func (uc *UseCase) OpenCreditInTx(
	creditRepo repository.CreditRepository,
	sale *entity.Sale,
	client *entity.Client,
	termDays int,
	now time.Time,
) (*entity.Credit, error) {
	if client.Class != entity.ClientClassCredit {
		return nil, domain.Detailed(domain.ErrConflict,
			fmt.Sprintf("el cliente %s no es de clase CREDIT", client.Name))
	}
	if termDays <= 0 {
		termDays = DefaultTermDays
	}
	credit := &entity.Credit{
		ID:        uuid.New().String(),
		SaleID:    sale.ID,
		ClientID:  client.ID,
		Principal: sale.Total,
		Balance:   sale.Total,
		StartDate: now,
		DueDate:   now.AddDate(0, 0, termDays),
		TermDays:  termDays,
		Status:    entity.CreditStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := creditRepo.Create(credit); err != nil {
		return nil, err
	}
	return credit, nil
}

// VoidCreditInTx anula el crédito dentro de la transacción del caller (solo lo
// invoca la anulación de ventas): estado VOID y saldo forzado a 0, sin
// importar el saldo previo.
func (uc *UseCase) VoidCreditInTx(creditRepo repository.CreditRepository, creditID string) error {
	return creditRepo.UpdateBalanceStatus(creditID, decimal.Zero, entity.CreditStatusVoid)
}

// ApplyPaymentInput entrada para ApplyPayment.
type ApplyPaymentInput struct {
	CreditID string
	Amount   decimal.Decimal
	Method   string
	Notes    string
	UserID   string
}

// ApplyPayment aplica un abono a un crédito. Falla con ErrAlreadySettled si
// el crédito está PAID o VOID y con ErrExcessPayment si el monto supera el
// saldo. Si el nuevo saldo llega a 0 el crédito pasa a PAID. Todo corre en
// una transacción con la fila del crédito bloqueada.
func (uc *UseCase) ApplyPayment(ctx context.Context, in ApplyPaymentInput) (*dto.PaymentResultResponse, error) {
	var details []string
	if in.CreditID == "" {
		details = append(details, "credit_id es obligatorio")
	}
	if !in.Amount.IsPositive() {
		details = append(details, fmt.Sprintf("el monto del pago debe ser mayor a 0: %s", in.Amount.StringFixed(2)))
	}
	if in.Method == "" {
		details = append(details, "el método de pago es obligatorio")
	}
	if len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}

	now := time.Now()
	amount := in.Amount.Round(2)
	var payment *entity.Payment
	var credit *entity.Credit
	var previous decimal.Decimal

	err := uc.txRunner.RunCredit(ctx, func(creditRepo repository.CreditRepository) error {
		var err error
		credit, err = creditRepo.GetForUpdate(in.CreditID)
		if err != nil {
			return err
		}
		if credit == nil {
			return domain.ErrNotFound
		}
		if credit.Status.Settled() {
			return domain.Detailed(domain.ErrAlreadySettled,
				fmt.Sprintf("el crédito está en estado %s", credit.Status))
		}
		previous = credit.Balance
		if amount.GreaterThan(credit.Balance) {
			return domain.Detailed(domain.ErrExcessPayment,
				fmt.Sprintf("el pago (%s) excede el saldo pendiente (%s)", amount.StringFixed(2), credit.Balance.StringFixed(2)))
		}

		newBalance := credit.Balance.Sub(amount).Round(2)
		status := credit.Status
		if newBalance.IsZero() {
			status = entity.CreditStatusPaid
		}
		payment = &entity.Payment{
			ID:               uuid.New().String(),
			CreditID:         credit.ID,
			Amount:           amount,
			Method:           in.Method,
			Notes:            in.Notes,
			ResultingBalance: newBalance,
			CreatedBy:        in.UserID,
			CreatedAt:        now,
		}
		if err := creditRepo.CreatePayment(payment); err != nil {
			return err
		}
		if err := creditRepo.UpdateBalanceStatus(credit.ID, newBalance, status); err != nil {
			return err
		}
		credit.Balance = newBalance
		credit.Status = status
		credit.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Emit(in.UserID, "payment", payment.ID, "create",
		map[string]string{"balance": previous.StringFixed(2)},
		map[string]string{"balance": credit.Balance.StringFixed(2), "status": string(credit.Status)},
	)
	return &dto.PaymentResultResponse{
		Payment:         toPaymentResponse(payment),
		Credit:          toCreditResponse(credit, nil),
		PreviousBalance: previous,
		NewBalance:      credit.Balance,
		Settled:         credit.Balance.IsZero(),
	}, nil
}

// MarkOverdue barrido de vencidos: todo crédito ACTIVE con fecha de
// vencimiento pasada pasa a OVERDUE. Idempotente; lo dispara el scheduler
// externo con cadencia diaria.
func (uc *UseCase) MarkOverdue(ctx context.Context) (int64, error) {
	return uc.creditRepo.MarkOverdue(time.Now())
}

// Availability calcula el crédito disponible del cliente: límite menos la
// suma de saldos ACTIVE + OVERDUE. Lectura pura.
func (uc *UseCase) Availability(ctx context.Context, clientID string) (*dto.AvailabilityResponse, error) {
	client, err := uc.clientRepo.GetByID(clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	av, err := uc.availabilityFor(client)
	if err != nil {
		return nil, err
	}
	return &dto.AvailabilityResponse{
		ClientID:       av.ClientID,
		CreditLimit:    av.CreditLimit,
		Outstanding:    av.Outstanding,
		Disposable:     av.Disposable,
		UtilizationPct: av.UtilizationPct,
		InArrears:      av.InArrears,
		Status:         string(av.Status),
	}, nil
}

// availabilityFor es la única ruta de agregación de disponibilidad: la usan
// la consulta pública y el chequeo de límite del orquestador de ventas.
func (uc *UseCase) availabilityFor(client *entity.Client) (*domcredit.Availability, error) {
	outstanding, err := uc.creditRepo.SumOutstandingByClient(client.ID)
	if err != nil {
		return nil, err
	}
	inArrears, err := uc.creditRepo.HasOverdueByClient(client.ID)
	if err != nil {
		return nil, err
	}
	return domcredit.ComputeAvailability(client.ID, client.CreditLimit, outstanding, inArrears), nil
}

// AvailabilityForClient versión para callers que ya cargaron el cliente.
func (uc *UseCase) AvailabilityForClient(client *entity.Client) (*domcredit.Availability, error) {
	return uc.availabilityFor(client)
}

// GetCredit obtiene un crédito con su historial de pagos.
func (uc *UseCase) GetCredit(ctx context.Context, id string) (*dto.CreditResponse, error) {
	credit, err := uc.creditRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if credit == nil {
		return nil, domain.ErrNotFound
	}
	payments, err := uc.creditRepo.ListPayments(id)
	if err != nil {
		return nil, err
	}
	resp := toCreditResponse(credit, payments)
	return &resp, nil
}

// ListCredits lista créditos según filtro.
func (uc *UseCase) ListCredits(ctx context.Context, filter repository.CreditFilter, limit, offset int) ([]dto.CreditResponse, error) {
	credits, err := uc.creditRepo.List(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	list := make([]dto.CreditResponse, 0, len(credits))
	for _, c := range credits {
		list = append(list, toCreditResponse(c, nil))
	}
	return list, nil
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:               p.ID,
		CreditID:         p.CreditID,
		Amount:           p.Amount,
		Method:           p.Method,
		Notes:            p.Notes,
		ResultingBalance: p.ResultingBalance,
		CreatedBy:        p.CreatedBy,
		CreatedAt:        p.CreatedAt,
	}
}

func toCreditResponse(c *entity.Credit, payments []*entity.Payment) dto.CreditResponse {
	resp := dto.CreditResponse{
		ID:        c.ID,
		SaleID:    c.SaleID,
		ClientID:  c.ClientID,
		Principal: c.Principal,
		Balance:   c.Balance,
		StartDate: c.StartDate,
		DueDate:   c.DueDate,
		TermDays:  c.TermDays,
		Status:    string(c.Status),
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, toPaymentResponse(p))
	}
	return resp
}
