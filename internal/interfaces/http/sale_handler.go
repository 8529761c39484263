package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/sales"
)

// SaleHandler caja: registro, consulta y anulación de ventas.
type SaleHandler struct {
	uc *sales.SaleUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

func actor(c *fiber.Ctx) sales.Actor {
	return sales.Actor{CompanyID: GetCompanyID(c), UserID: GetUserID(c), Role: GetRole(c)}
}

// Checkout registrar venta (POST /api/sales).
// Venta, líneas y salida de stock en una sola transacción.
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Checkout(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List listar ventas (GET /api/sales).
// Los usuarios que no son admin solo ven sus propias ventas.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var in dto.SaleListRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get detalle de venta (GET /api/sales/{id}).
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actor(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Cancel anular venta (POST /api/sales/{id}/cancel).
// Devuelve el stock. Solo admin y manager.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.UserContext(), actor(c), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "venta anulada"})
}
