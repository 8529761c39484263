package entity

import "time"

// Warehouse representa una bodega o punto de venta donde se almacena inventario.
// Code es el identificador corto (slug) usado como filtro en los tableros.
type Warehouse struct {
	ID        string
	CompanyID string
	Code      string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultWarehouseCode es el código de la bodega creada junto con la empresa.
const DefaultWarehouseCode = "principal"
