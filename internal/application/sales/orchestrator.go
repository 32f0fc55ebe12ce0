package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ventas-api/internal/application/audit"
	appcredit "github.com/jhoicas/ventas-api/internal/application/credit"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
	"github.com/jhoicas/ventas-api/internal/domain"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
	domsale "github.com/jhoicas/ventas-api/internal/domain/sale"
	"github.com/jhoicas/ventas-api/pkg/logger"
)

// UseCase orquesta ventas de contado y a crédito. No toca stock ni créditos
// directamente: delega en el motor de inventario y el libro de créditos, y
// garantiza que todo el efecto de una venta entre en una sola transacción.
type UseCase struct {
	txRunner    TxRunner
	saleRepo    repository.SaleRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	creditRepo  repository.CreditRepository
	inventory   *inventory.UseCase
	credits     *appcredit.UseCase
	auditor     *audit.Emitter
	log         *logger.Logger
}

// NewUseCase construye el orquestador de ventas.
func NewUseCase(
	txRunner TxRunner,
	saleRepo repository.SaleRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	creditRepo repository.CreditRepository,
	inventoryUC *inventory.UseCase,
	creditUC *appcredit.UseCase,
	auditor *audit.Emitter,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		saleRepo:    saleRepo,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		creditRepo:  creditRepo,
		inventory:   inventoryUC,
		credits:     creditUC,
		auditor:     auditor,
		log:         log,
	}
}

// saleDraft venta validada y valorizada, lista para persistir.
type saleDraft struct {
	client   *entity.Client
	lines    []*entity.SaleLine
	discount *domsale.DiscountResult
}

// CreateCashSale registra una venta de contado: valida cliente y líneas,
// descuenta stock por línea (bajo lock) y persiste cabecera y líneas, todo en
// una transacción. Si cualquier línea falla no se escribe nada.
func (uc *UseCase) CreateCashSale(ctx context.Context, userID string, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	draft, err := uc.prepare(req)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := newSale(draft, entity.SaleTypeCash, userID, now)
	var movements int

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		_ repository.CreditRepository,
	) error {
		movements, err = uc.persistSale(saleRepo, movRepo, productRepo, sale, draft.lines, userID, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Emit(userID, "sale", sale.ID, "create", nil, sale)
	resp := toSaleResponse(sale, draft.lines, movements, nil)
	return &resp, nil
}

// CreateCreditSale registra una venta a crédito: además del efecto de una
// venta de contado, verifica que el total post-descuento quepa en el crédito
// disponible del cliente y abre la cuenta por cobrar en la misma transacción.
func (uc *UseCase) CreateCreditSale(ctx context.Context, userID string, req dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	draft, err := uc.prepare(req)
	if err != nil {
		return nil, err
	}
	if draft.client.Class != entity.ClientClassCredit {
		return nil, domain.Detailed(domain.ErrConflict,
			fmt.Sprintf("el cliente %s es de clase %s: no admite ventas a crédito", draft.client.Name, draft.client.Class))
	}

	// El chequeo de límite usa el total después del descuento, no el subtotal.
	av, err := uc.credits.AvailabilityForClient(draft.client)
	if err != nil {
		return nil, err
	}
	if draft.discount.Total.GreaterThan(av.Disposable) {
		return nil, domain.Detailed(domain.ErrInsufficientCredit,
			fmt.Sprintf("total de la venta %s, crédito disponible %s (límite %s, deuda vigente %s)",
				draft.discount.Total.StringFixed(2), av.Disposable.StringFixed(2),
				av.CreditLimit.StringFixed(2), av.Outstanding.StringFixed(2)))
	}

	now := time.Now()
	sale := newSale(draft, entity.SaleTypeCredit, userID, now)
	var movements int
	var credit *entity.Credit

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		creditRepo repository.CreditRepository,
	) error {
		movements, err = uc.persistSale(saleRepo, movRepo, productRepo, sale, draft.lines, userID, now)
		if err != nil {
			return err
		}
		credit, err = uc.credits.OpenCreditInTx(creditRepo, sale, draft.client, req.TermDays, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Emit(userID, "sale", sale.ID, "create", nil, sale)
	resp := toSaleResponse(sale, draft.lines, movements, credit)
	return &resp, nil
}

// VoidSale anula una venta: marca la cabecera VOID, restaura el stock con
// movimientos IN compensatorios (uno por línea) y anula el crédito asociado
// si lo hay. La cabecera se bloquea para que dos anulaciones concurrentes no
// restauren el stock dos veces; la segunda falla con ErrAlreadyVoid.
func (uc *UseCase) VoidSale(ctx context.Context, saleID, reason, userID string) (*dto.VoidSaleResponse, error) {
	var details []string
	if saleID == "" {
		details = append(details, "sale_id es obligatorio")
	}
	if reason == "" {
		details = append(details, "la razón de anulación es obligatoria")
	}
	if len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}

	now := time.Now()
	result := &dto.VoidSaleResponse{SaleID: saleID}
	var before *entity.Sale

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		creditRepo repository.CreditRepository,
	) error {
		sale, err := saleRepo.GetForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusVoid {
			return domain.Detailed(domain.ErrAlreadyVoid,
				fmt.Sprintf("la venta %s fue anulada el %s", sale.ID, formatVoidedAt(sale)))
		}
		before = sale

		lines, err := saleRepo.GetLines(saleID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			_, err := uc.inventory.RecordInInTx(movRepo, productRepo,
				line.ProductID, line.Quantity,
				entity.MovementReasonSaleVoid, sale.ID, userID, now)
			if err != nil {
				return err
			}
			result.MovementsCreated++
		}
		result.LinesReversed = len(lines)

		if sale.Type == entity.SaleTypeCredit {
			credit, err := creditRepo.GetBySaleID(saleID)
			if err != nil {
				return err
			}
			if credit == nil {
				// Inconsistencia de datos: venta a crédito sin crédito.
				// La anulación sigue; queda rastro en el log.
				uc.log.Warn().Str("sale_id", saleID).
					Msg("venta a crédito sin crédito asociado al anular")
			} else {
				if err := uc.credits.VoidCreditInTx(creditRepo, credit.ID); err != nil {
					return err
				}
				result.CreditVoided = true
			}
		}

		return saleRepo.SetVoid(saleID, reason, now)
	})
	if err != nil {
		return nil, err
	}

	uc.auditor.Emit(userID, "sale", saleID, "void", before, map[string]string{
		"status": string(entity.SaleStatusVoid),
		"reason": reason,
	})
	return result, nil
}

// prepare valida cliente y líneas y valoriza la venta. Acumula todas las
// violaciones de validación antes de reportar.
func (uc *UseCase) prepare(req dto.CreateSaleRequest) (*saleDraft, error) {
	var details []string
	if req.ClientID == "" {
		details = append(details, "client_id es obligatorio")
	}
	if len(req.Lines) == 0 {
		details = append(details, "la venta debe tener al menos una línea")
	}
	for i, l := range req.Lines {
		if l.ProductID == "" {
			details = append(details, fmt.Sprintf("línea %d: product_id es obligatorio", i+1))
		}
		if l.Quantity <= 0 {
			details = append(details, fmt.Sprintf("línea %d: la cantidad debe ser un entero positivo: %d", i+1, l.Quantity))
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			details = append(details, fmt.Sprintf("línea %d: el precio unitario no puede ser negativo: %s", i+1, l.UnitPrice.StringFixed(2)))
		}
	}
	if len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}

	client, err := uc.clientRepo.GetByID(req.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.Detailed(domain.ErrNotFound, fmt.Sprintf("cliente %s no existe", req.ClientID))
	}
	if !client.Operable() {
		return nil, domain.Detailed(domain.ErrInvalidInput,
			fmt.Sprintf("el cliente %s está inactivo o eliminado", client.Name))
	}

	lines := make([]*entity.SaleLine, 0, len(req.Lines))
	subtotal := decimal.Zero
	products := make(map[string]*entity.Product, len(req.Lines))
	requested := make(map[string]int64, len(req.Lines))
	var productOrder []string
	for i, l := range req.Lines {
		product, seen := products[l.ProductID]
		if !seen {
			var err error
			product, err = uc.productRepo.GetByID(l.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				details = append(details, fmt.Sprintf("línea %d: producto %s no existe", i+1, l.ProductID))
				continue
			}
			if !product.Sellable() {
				details = append(details, fmt.Sprintf("línea %d: el producto %s está inactivo o eliminado", i+1, product.Name))
				continue
			}
			products[l.ProductID] = product
			productOrder = append(productOrder, l.ProductID)
		}
		requested[l.ProductID] += l.Quantity
		// Sin precio explícito rige el de lista; un precio 0 explícito es
		// válido (línea de cortesía).
		price := product.Price
		if l.UnitPrice != nil {
			price = *l.UnitPrice
		}
		lineSubtotal := price.Mul(decimal.NewFromInt(l.Quantity)).Round(2)
		lines = append(lines, &entity.SaleLine{
			ID:        uuid.New().String(),
			ProductID: product.ID,
			Quantity:  l.Quantity,
			UnitPrice: price.Round(2),
			Subtotal:  lineSubtotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}
	if len(details) > 0 {
		return nil, domain.Detailed(domain.ErrInvalidInput, details...)
	}
	// Pre-chequeo de stock agregado por producto: dos líneas del mismo
	// producto compiten por el mismo stock. Reporta cada producto corto, no
	// solo el primero; el chequeo definitivo corre bajo lock dentro de la tx.
	var short []string
	for _, id := range productOrder {
		product := products[id]
		if product.Stock < requested[id] {
			short = append(short, fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d, producto %s",
				product.Stock, requested[id], product.Name))
		}
	}
	if len(short) > 0 {
		return nil, domain.Detailed(domain.ErrInsufficientStock, short...)
	}

	discount, err := domsale.CalculateDiscount(subtotal, entity.DiscountType(req.DiscountType), req.DiscountValue)
	if err != nil {
		return nil, err
	}
	return &saleDraft{client: client, lines: lines, discount: discount}, nil
}

// persistSale escribe cabecera y líneas y descuenta el stock de cada línea,
// todo sobre los repositorios de la tx del caller.
func (uc *UseCase) persistSale(
	saleRepo repository.SaleRepository,
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	sale *entity.Sale,
	lines []*entity.SaleLine,
	userID string,
	now time.Time,
) (int, error) {
	if err := saleRepo.Create(sale); err != nil {
		return 0, err
	}
	movements := 0
	for _, line := range lines {
		line.SaleID = sale.ID
		if err := saleRepo.CreateLine(line); err != nil {
			return 0, err
		}
		_, err := uc.inventory.RecordOutInTx(movRepo, productRepo,
			line.ProductID, line.Quantity,
			entity.MovementReasonSale, sale.ID, userID, now)
		if err != nil {
			return 0, err
		}
		movements++
	}
	return movements, nil
}

func newSale(draft *saleDraft, saleType entity.SaleType, userID string, now time.Time) *entity.Sale {
	return &entity.Sale{
		ID:             uuid.New().String(),
		ClientID:       draft.client.ID,
		UserID:         userID,
		Type:           saleType,
		Subtotal:       draft.discount.Subtotal,
		DiscountType:   draft.discount.Type,
		DiscountValue:  draft.discount.Value,
		DiscountAmount: draft.discount.DiscountAmount,
		Total:          draft.discount.Total,
		Status:         entity.SaleStatusActive,
		Date:           now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func formatVoidedAt(s *entity.Sale) string {
	if s.VoidedAt == nil {
		return "N/D"
	}
	return s.VoidedAt.Format(time.RFC3339)
}

func toSaleResponse(sale *entity.Sale, lines []*entity.SaleLine, movements int, credit *entity.Credit) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:             sale.ID,
		ClientID:       sale.ClientID,
		UserID:         sale.UserID,
		Type:           string(sale.Type),
		Subtotal:       sale.Subtotal,
		DiscountType:   string(sale.DiscountType),
		DiscountValue:  sale.DiscountValue,
		DiscountAmount: sale.DiscountAmount,
		Total:          sale.Total,
		Status:         string(sale.Status),
		Date:           sale.Date,
		MovementsCount: movements,
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Subtotal:  l.Subtotal,
		})
	}
	if credit != nil {
		resp.Credit = &dto.CreditSummary{
			ID:        credit.ID,
			Principal: credit.Principal,
			Balance:   credit.Balance,
			StartDate: credit.StartDate,
			DueDate:   credit.DueDate,
			TermDays:  credit.TermDays,
			Status:    string(credit.Status),
		}
	}
	return resp
}
