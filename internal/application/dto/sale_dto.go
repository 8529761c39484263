package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckoutItem línea del carrito. El precio sale del producto salvo que se indique.
type CheckoutItem struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// CheckoutRequest body de POST /api/sales.
type CheckoutRequest struct {
	WarehouseID   string           `json:"warehouse_id" validate:"required,uuid"`
	ClientID      string           `json:"client_id" validate:"omitempty,uuid"`
	Date          string           `json:"date" validate:"omitempty,datetime=2006-01-02"`
	TaxRate       *decimal.Decimal `json:"tax_rate,omitempty"`
	PaymentStatus string           `json:"payment_status" validate:"omitempty,oneof=paid unpaid partial"`
	Items         []CheckoutItem   `json:"items" validate:"required,min=1,dive"`
}

// SaleListRequest filtros de GET /api/sales.
type SaleListRequest struct {
	PageRequest
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

type SaleItemResponse struct {
	ProductID string          `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
}

// SaleResponse salida de una venta. Items solo en el detalle.
type SaleResponse struct {
	ID            string             `json:"id"`
	WarehouseID   string             `json:"warehouse_id"`
	ClientID      string             `json:"client_id,omitempty"`
	UserID        string             `json:"user_id,omitempty"`
	Date          string             `json:"date"`
	Amount        decimal.Decimal    `json:"amount"`
	AmountHT      decimal.Decimal    `json:"amount_ht"`
	AmountTax     decimal.Decimal    `json:"amount_tax"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	Status        string             `json:"status"`
	PaymentStatus string             `json:"payment_status"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}
