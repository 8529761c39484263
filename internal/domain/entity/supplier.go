package entity

import "time"

// Supplier proveedor de productos de una empresa.
type Supplier struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
