package entity

import "time"

// Client comprador asociado opcionalmente a una venta.
type Client struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
