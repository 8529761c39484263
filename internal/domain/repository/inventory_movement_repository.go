package repository

import (
	"context"
	"time"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos. Campos vacíos no filtran.
type MovementFilter struct {
	ProductID   string
	WarehouseID string
	From, To    *time.Time
	Limit       int
	Offset      int
}

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByCompany(ctx context.Context, companyID string, f MovementFilter) ([]*entity.InventoryMovement, error)
}
