package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de inventario (protegido).
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	list     *inventory.ListMovementsUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, list *inventory.ListMovementsUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, list: list}
}

// RegisterMovement registrar movimiento de inventario (POST /api/inventory/movements).
// IN recalcula el costo promedio ponderado. TRANSFER usa from/to_warehouse_id.
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	mov := inventory.FromRequest(GetCompanyID(c), GetUserID(c), in)
	if err := h.register.RegisterMovement(c.UserContext(), mov); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "movimiento registrado"})
}

// ListMovements historial de movimientos (GET /api/inventory/movements).
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.list.List(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
