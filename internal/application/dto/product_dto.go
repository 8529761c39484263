package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Si InitialStock > 0 se registra
// la entrada en WarehouseID (o la bodega principal) en la misma transacción.
type CreateProductRequest struct {
	CategoryID   string           `json:"category_id" validate:"omitempty,uuid"`
	SupplierID   string           `json:"supplier_id" validate:"omitempty,uuid"`
	SKU          string           `json:"sku" validate:"omitempty,max=80"`
	Name         string           `json:"name" validate:"required,min=1,max=200"`
	Description  string           `json:"description" validate:"omitempty,max=2000"`
	Price        decimal.Decimal  `json:"price"`
	CostPrice    *decimal.Decimal `json:"cost_price,omitempty"`
	InitialStock *decimal.Decimal `json:"initial_stock,omitempty"`
	WarehouseID  string           `json:"warehouse_id" validate:"omitempty,uuid"`
}

// UpdateProductRequest entrada para actualizar un producto (sin costo ni stock).
type UpdateProductRequest struct {
	CategoryID  *string          `json:"category_id" validate:"omitempty"`
	SupplierID  *string          `json:"supplier_id" validate:"omitempty"`
	SKU         *string          `json:"sku" validate:"omitempty,max=80"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Price       *decimal.Decimal `json:"price"`
}

// ProductListRequest filtros del listado (query string).
type ProductListRequest struct {
	PageRequest
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
	Search     string `query:"q" validate:"omitempty,max=100"`
}

// StockResponse cantidad del producto en una bodega.
type StockResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	CategoryID  string           `json:"category_id,omitempty"`
	SupplierID  string           `json:"supplier_id,omitempty"`
	SKU         string           `json:"sku,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	Stock       []StockResponse  `json:"stock,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
