package dto

import "time"

// CreateUserRequest alta de usuario por un admin; la empresa sale del token.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Role     string `json:"role" validate:"required,oneof=admin manager seller"`
}

// UpdateUserRequest campos opcionales; Password vacío no cambia la contraseña.
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin manager seller"`
	Status   *string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// RegisterRequest registro público: crea empresa, usuario admin y bodega principal.
type RegisterRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=200"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
}

// RegisterResponse empresa creada y sesión del admin.
type RegisterResponse struct {
	Company CompanyResponse `json:"company"`
	Token   string          `json:"token"`
	User    UserResponse    `json:"user"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"company_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token JWT (también enviado en la cookie de sesión) y usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
