package repository

import (
	"context"
	"time"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas. UserID vacío = todas las del tenant.
type SaleFilter struct {
	UserID   string
	From, To *time.Time
	Limit    int
	Offset   int
}

// SaleRepository define el puerto de persistencia para ventas y sus líneas.
type SaleRepository interface {
	// Create inserta la venta y todas sus líneas. Debe ejecutarse dentro de una tx.
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Sale, error)
	ListByCompany(ctx context.Context, companyID string, f SaleFilter) ([]*entity.Sale, error)
	// UpdateStatus devuelve ErrConflict si la venta no existe o ya tenía ese estado.
	UpdateStatus(ctx context.Context, companyID, id, status, paymentStatus string) error
}
