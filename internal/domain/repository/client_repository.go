package repository

import (
	"context"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client (compradores).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Client, error)
	Delete(ctx context.Context, companyID, id string) error
}
