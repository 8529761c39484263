package dto

import "time"

// CreateWarehouseRequest Code es el slug usado en ?warehouse= de los tableros;
// si viene vacío se deriva del nombre.
type CreateWarehouseRequest struct {
	Code    string `json:"code" validate:"omitempty,min=1,max=60"`
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"omitempty,max=500"`
}

// UpdateWarehouseRequest campos opcionales.
type UpdateWarehouseRequest struct {
	Code    *string `json:"code" validate:"omitempty,min=1,max=60"`
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// WarehouseResponse salida de una bodega. Value/Label alimentan el selector del tablero.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"value"`
	Name      string    `json:"label"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
