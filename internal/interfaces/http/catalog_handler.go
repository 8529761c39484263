package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
)

// catalogUseCase forma común de categorías, proveedores y clientes.
type catalogUseCase[Req, Resp any] interface {
	Create(ctx context.Context, companyID string, in Req) (*Resp, error)
	Get(ctx context.Context, companyID, id string) (*Resp, error)
	Update(ctx context.Context, companyID, id string, in Req) (*Resp, error)
	List(ctx context.Context, companyID string, page dto.PageRequest) ([]Resp, error)
	Delete(ctx context.Context, companyID, id string) error
}

// CatalogHandler CRUD de una entidad de catálogo por empresa.
//
// Rutas (ej. categories; igual para suppliers y clients):
//
//	POST   /api/categories       → 201 dto.CategoryResponse
//	GET    /api/categories       → 200 []dto.CategoryResponse (limit, offset)
//	GET    /api/categories/:id   → 200 | 404
//	PUT    /api/categories/:id   → 200 | 400 | 404
//	DELETE /api/categories/:id   → 204 | 404
type CatalogHandler[Req, Resp any] struct {
	uc catalogUseCase[Req, Resp]
}

// NewCatalogHandler construye el handler para un use case de catálogo.
func NewCatalogHandler[Req, Resp any](uc catalogUseCase[Req, Resp]) *CatalogHandler[Req, Resp] {
	return &CatalogHandler[Req, Resp]{uc: uc}
}

// Mount registra las cinco rutas en el grupo.
func (h *CatalogHandler[Req, Resp]) Mount(r fiber.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *CatalogHandler[Req, Resp]) Create(c *fiber.Ctx) error {
	var in Req
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *CatalogHandler[Req, Resp]) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp]) Update(c *fiber.Ctx) error {
	var in Req
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp]) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := bindQuery(c, &page); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func (h *CatalogHandler[Req, Resp]) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
