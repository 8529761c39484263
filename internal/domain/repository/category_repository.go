package repository

import (
	"context"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Category, error)
	Delete(ctx context.Context, companyID, id string) error
}
