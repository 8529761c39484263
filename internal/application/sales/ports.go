package sales

import (
	"context"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

// CheckoutTxRunner ejecuta venta, líneas, descuento de stock y movimientos en una sola tx.
type CheckoutTxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
