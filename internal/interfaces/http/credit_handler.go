package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/credit"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// CreditHandler maneja créditos, pagos y disponibilidad (protegido).
type CreditHandler struct {
	uc *credit.UseCase
}

// NewCreditHandler construye el handler.
func NewCreditHandler(uc *credit.UseCase) *CreditHandler {
	return &CreditHandler{uc: uc}
}

// ApplyPayment aplica un abono. POST /api/credits/:id/payments.
func (h *CreditHandler) ApplyPayment(c *fiber.Ctx) error {
	var in dto.ApplyPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.ApplyPayment(c.Context(), credit.ApplyPaymentInput{
		CreditID: c.Params("id"),
		Amount:   in.Amount,
		Method:   in.Method,
		Notes:    in.Notes,
		UserID:   GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID obtiene un crédito con su historial de pagos. GET /api/credits/:id.
func (h *CreditHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetCredit(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista créditos con filtros. GET /api/credits.
func (h *CreditHandler) List(c *fiber.Ctx) error {
	from, to, err := rangeParams(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "from/to deben ser fechas RFC 3339")
	}
	filter := repository.CreditFilter{
		ClientID: c.Query("client_id"),
		Status:   entity.CreditStatus(c.Query("status")),
		From:     from,
		To:       to,
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListCredits(c.Context(), filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Availability crédito disponible de un cliente.
// GET /api/clients/:id/credit-availability.
func (h *CreditHandler) Availability(c *fiber.Ctx) error {
	out, err := h.uc.Availability(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SweepOverdue barrido de vencidos (idempotente; lo invoca el scheduler).
// POST /api/credits/sweep-overdue.
func (h *CreditHandler) SweepOverdue(c *fiber.Ctx) error {
	n, err := h.uc.MarkOverdue(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OverdueSweepResponse{MarkedOverdue: n})
}
