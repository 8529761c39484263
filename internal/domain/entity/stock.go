package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock existencias de un producto en una bodega. Una fila ausente equivale a cantidad cero.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

// Add suma qty a las existencias.
func (s *Stock) Add(qty decimal.Decimal, at time.Time) {
	s.Quantity = s.Quantity.Add(qty)
	s.UpdatedAt = at
}

// Take descuenta qty solo si alcanza. Con stock insuficiente no modifica nada y devuelve false.
func (s *Stock) Take(qty decimal.Decimal, at time.Time) bool {
	if s.Quantity.LessThan(qty) {
		return false
	}
	s.Quantity = s.Quantity.Sub(qty)
	s.UpdatedAt = at
	return true
}
