package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una empresa.
// El stock se maneja por bodega en Stock; CostPrice alimenta la estimación de beneficio.
type Product struct {
	ID          string
	CompanyID   string
	CategoryID  string // vacío si no tiene categoría
	SupplierID  string // vacío si no tiene proveedor
	SKU         string // único por empresa (opcional)
	Name        string
	Description string
	Price       decimal.Decimal     // precio de venta TTC
	CostPrice   decimal.NullDecimal // costo promedio ponderado; nulo = desconocido
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Cost devuelve el costo conocido o cero si no está definido.
func (p *Product) Cost() decimal.Decimal {
	if p == nil || !p.CostPrice.Valid {
		return decimal.Zero
	}
	return p.CostPrice.Decimal
}
