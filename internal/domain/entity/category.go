package entity

import "time"

// Category agrupa productos para el desglose de ventas por categoría.
type Category struct {
	ID          string
	CompanyID   string
	Name        string // único por empresa
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
