package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleSeller  = "seller"
)

// Estados de un usuario. Solo UserStatusActive puede iniciar sesión.
const (
	UserStatusActive    = "active"
	UserStatusInactive  = "inactive"
	UserStatusSuspended = "suspended"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	CompanyID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, seller
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario ve los datos de toda la empresa.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Active indica si el usuario puede operar.
func (u *User) Active() bool {
	return u != nil && u.Status == UserStatusActive
}

// ValidRole informa si role es uno de los roles soportados.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleSeller:
		return true
	}
	return false
}
