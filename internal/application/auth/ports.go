package auth

import (
	"context"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

// RegisterTxRunner ejecuta el alta de una empresa en una sola transacción.
type RegisterTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
		warehouseRepo repository.WarehouseRepository,
	) error) error
}
