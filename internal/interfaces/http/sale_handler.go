package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/sales"
	"github.com/jhoicas/ventas-api/internal/domain/entity"
	"github.com/jhoicas/ventas-api/internal/domain/repository"
)

// SaleHandler maneja creación, anulación y consulta de ventas (protegido).
type SaleHandler struct {
	uc *sales.UseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.UseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// CreateCash registra una venta de contado. POST /api/sales/cash.
func (h *SaleHandler) CreateCash(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateCashSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateCredit registra una venta a crédito. POST /api/sales/credit.
func (h *SaleHandler) CreateCredit(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateCreditSale(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Void anula una venta y restaura el stock. POST /api/sales/:id/void.
func (h *SaleHandler) Void(c *fiber.Ctx) error {
	var in dto.VoidSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.VoidSale(c.Context(), c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una venta con líneas. GET /api/sales/:id.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetSale(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List lista ventas con filtros. GET /api/sales.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	from, to, err := rangeParams(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "from/to deben ser fechas RFC 3339")
	}
	filter := repository.SaleFilter{
		ClientID: c.Query("client_id"),
		UserID:   c.Query("user_id"),
		Type:     entity.SaleType(c.Query("type")),
		Status:   entity.SaleStatus(c.Query("status")),
		From:     from,
		To:       to,
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListSales(c.Context(), filter, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
