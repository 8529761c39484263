package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
)

type warehouseService interface {
	Create(ctx context.Context, companyID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error)
	GetByID(ctx context.Context, companyID, id string) (*dto.WarehouseResponse, error)
	List(ctx context.Context, companyID string) ([]dto.WarehouseResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

// WarehouseHandler bodegas de la empresa. List devuelve value/label para los selectores del tablero.
type WarehouseHandler struct {
	warehouses warehouseService
}

func NewWarehouseHandler(warehouses warehouseService) *WarehouseHandler {
	return &WarehouseHandler{warehouses: warehouses}
}

// Create sin code lo deriva del nombre; "all" está reservado.
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWarehouseRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.warehouses.Create(c.UserContext(), GetCompanyID(c), in)
	return respond(c, fiber.StatusCreated, out, err)
}

func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.warehouses.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	return respond(c, fiber.StatusOK, out, err)
}

func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	out, err := h.warehouses.List(c.UserContext(), GetCompanyID(c))
	return respond(c, fiber.StatusOK, out, err)
}

func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWarehouseRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.warehouses.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	return respond(c, fiber.StatusOK, out, err)
}

// Delete falla con CONFLICT si la bodega tiene ventas registradas.
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	if err := h.warehouses.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
