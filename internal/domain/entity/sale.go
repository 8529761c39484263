package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusCompleted = "completed"
	SaleStatusPending   = "pending"
	SaleStatusCancelled = "cancelled"
)

// Estados de pago.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
)

// Sale venta registrada en caja. Inmutable una vez liquidada salvo Status/PaymentStatus.
// Amount es TTC; AmountHT y AmountTax se derivan con TaxRate (ver report.AmountHT).
type Sale struct {
	ID            string
	CompanyID     string
	WarehouseID   string
	ClientID      string // vacío = venta de mostrador
	UserID        string // vendedor que registró la venta
	Date          time.Time
	Amount        decimal.Decimal
	AmountHT      decimal.Decimal
	AmountTax     decimal.Decimal
	TaxRate       decimal.NullDecimal // porcentaje; nulo = tasa por defecto
	Status        string
	PaymentStatus string
	Items         []SaleLineItem
	CreatedAt     time.Time
}

// SaleLineItem línea de una venta. ProductID es la referencia estable al producto;
// Name es la copia del nombre al momento de la venta.
type SaleLineItem struct {
	ID        string
	SaleID    string
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	Price     decimal.Decimal // precio unitario TTC
}

// Total devuelve quantity × price.
func (l SaleLineItem) Total() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}
