package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
)

type productService interface {
	Create(ctx context.Context, companyID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error)
	List(ctx context.Context, companyID string, in dto.ProductListRequest) (*dto.ProductListResponse, error)
	Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

// ProductHandler catálogo de productos de la empresa del token.
// Escritura: admin y manager (ver router).
type ProductHandler struct {
	products productService
}

func NewProductHandler(products productService) *ProductHandler {
	return &ProductHandler{products: products}
}

// Create POST /api/products. Con initial_stock registra la entrada en la misma transacción.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.products.Create(c.UserContext(), GetCompanyID(c), GetUserID(c), in)
	return respond(c, fiber.StatusCreated, out, err)
}

func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.products.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	return respond(c, fiber.StatusOK, out, err)
}

// List filtra por category_id y q (nombre o SKU).
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var in dto.ProductListRequest
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	out, err := h.products.List(c.UserContext(), GetCompanyID(c), in)
	return respond(c, fiber.StatusOK, out, err)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.products.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	return respond(c, fiber.StatusOK, out, err)
}

// Delete borra el producto y su stock; las líneas de venta conservan nombre y precio.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// respond escribe out con status o deja err al ErrorHandler.
func respond(c *fiber.Ctx, status int, out any, err error) error {
	if err != nil {
		return err
	}
	return c.Status(status).JSON(out)
}
