package repository

import (
	"context"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Warehouse, error)
	// GetByCompanyAndCode resuelve el filtro ?warehouse=<code> de los tableros.
	GetByCompanyAndCode(ctx context.Context, companyID, code string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Warehouse, error)
	Delete(ctx context.Context, companyID, id string) error
}
