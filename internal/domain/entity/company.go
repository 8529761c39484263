package entity

import "time"

// Company representa una organización/tenant del sistema.
// Todo dato de negocio pertenece exactamente a una Company.
type Company struct {
	ID        string
	Name      string
	TaxID     string // identificador fiscal (opcional)
	Address   string
	Phone     string
	Email     string
	Currency  string // ISO 4217, ej. XOF
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Estados de una empresa.
const (
	CompanyStatusActive    = "active"
	CompanyStatusSuspended = "suspended"
)
