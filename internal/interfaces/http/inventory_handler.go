package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-api/internal/application/dto"
	"github.com/jhoicas/ventas-api/internal/application/inventory"
)

// InventoryHandler maneja entradas, salidas, ajustes y consultas de
// inventario (protegido).
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// RecordIn registra una entrada. POST /api/inventory/in.
func (h *InventoryHandler) RecordIn(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.RecordIn(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RecordOut registra una salida. POST /api/inventory/out.
func (h *InventoryHandler) RecordOut(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.RecordOut(c.Context(), inventory.MovementInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Reference: in.Reference,
		UserID:    GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Adjust lleva el stock a una cantidad objetivo. POST /api/inventory/adjust.
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AdjustTo(c.Context(), inventory.AdjustInput{
		ProductID:      in.ProductID,
		TargetQuantity: in.TargetQuantity,
		Reason:         in.Reason,
		Reference:      in.Reference,
		UserID:         GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Kardex historial con saldo corrido. GET /api/inventory/:productId/kardex.
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	from, to, err := rangeParams(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "from/to deben ser fechas RFC 3339")
	}
	limit, offset := pageParams(c)
	out, err := h.uc.Kardex(c.Context(), c.Params("productId"), from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// History lista los movimientos. GET /api/inventory/:productId/movements.
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	from, to, err := rangeParams(c)
	if err != nil {
		return badRequest(c, "VALIDATION", "from/to deben ser fechas RFC 3339")
	}
	limit, offset := pageParams(c)
	out, err := h.uc.History(c.Context(), c.Params("productId"), from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats agregados de inventario. GET /api/inventory/:productId/stats.
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// rangeParams parsea from/to (RFC 3339) de la query.
func rangeParams(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
