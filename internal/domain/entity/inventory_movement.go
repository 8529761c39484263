package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida (venta o baja)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste de conteo
	MovementTypeTRANSFER   = "TRANSFER"   // traslado entre bodegas
)

// InventoryMovement representa un movimiento de inventario.
// Reference apunta al documento que lo originó (ID de venta, de traslado, etc.).
type InventoryMovement struct {
	ID          string
	CompanyID   string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    decimal.Decimal // positivo entrada, negativo salida
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	Reference   string
	Date        time.Time
	CreatedAt   time.Time
	CreatedBy   string
}
