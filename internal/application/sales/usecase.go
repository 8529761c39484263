// Package sales registro de ventas en caja (checkout) y consulta.
package sales

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/inventory"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

// Actor usuario autenticado que ejecuta la operación (datos del token).
type Actor struct {
	CompanyID string
	UserID    string
	Role      string
}

func (a Actor) isAdmin() bool { return a.Role == entity.RoleAdmin }

// lockOrder índices 0..n-1 ordenados por key; las filas de stock se bloquean siempre en ese orden.
func lockOrder(n int, key func(int) string) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return strings.Compare(key(a), key(b)) })
	return idx
}

// SaleUseCase checkout, listado, detalle y anulación de ventas.
type SaleUseCase struct {
	txRunner      CheckoutTxRunner
	saleRepo      repository.SaleRepository
	warehouseRepo repository.WarehouseRepository
	clientRepo    repository.ClientRepository
	loc           *time.Location
	now           func() time.Time
}

// NewSaleUseCase construye el caso de uso. loc define el día de la venta cuando no se indica fecha.
func NewSaleUseCase(
	txRunner CheckoutTxRunner,
	saleRepo repository.SaleRepository,
	warehouseRepo repository.WarehouseRepository,
	clientRepo repository.ClientRepository,
	loc *time.Location,
) *SaleUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &SaleUseCase{
		txRunner:      txRunner,
		saleRepo:      saleRepo,
		warehouseRepo: warehouseRepo,
		clientRepo:    clientRepo,
		loc:           loc,
		now:           time.Now,
	}
}

// Checkout registra la venta y descuenta el stock de la bodega. Si alguna línea no tiene
// stock suficiente no se persiste nada (ErrInsufficientStock).
func (uc *SaleUseCase) Checkout(ctx context.Context, actor Actor, in dto.CheckoutRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("la venta no tiene líneas", "items")
	}
	for i, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, domain.NewValidationError("la cantidad debe ser positiva", fmt.Sprintf("items[%d].quantity", i))
		}
		if it.Price != nil && it.Price.IsNegative() {
			return nil, domain.NewValidationError("el precio no puede ser negativo", fmt.Sprintf("items[%d].price", i))
		}
	}
	if in.TaxRate != nil && in.TaxRate.IsNegative() {
		return nil, domain.NewValidationError("tasa de impuesto inválida", "tax_rate")
	}

	wh, err := uc.warehouseRepo.GetByID(ctx, actor.CompanyID, in.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("get warehouse: %w", err)
	}
	if wh == nil {
		return nil, domain.ErrNotFound
	}
	if in.ClientID != "" {
		client, err := uc.clientRepo.GetByID(ctx, actor.CompanyID, in.ClientID)
		if err != nil {
			return nil, fmt.Errorf("get client: %w", err)
		}
		if client == nil {
			return nil, domain.ErrNotFound
		}
	}

	now := uc.now()
	day := now.In(uc.loc)
	if in.Date != "" {
		d, err := report.ParseDate(in.Date, uc.loc)
		if err != nil {
			return nil, err
		}
		day = *d
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     actor.CompanyID,
		WarehouseID:   wh.ID,
		ClientID:      in.ClientID,
		UserID:        actor.UserID,
		Date:          time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, uc.loc),
		Status:        entity.SaleStatusCompleted,
		PaymentStatus: in.PaymentStatus,
		CreatedAt:     now,
	}
	if sale.PaymentStatus == "" {
		sale.PaymentStatus = entity.PaymentStatusPaid
	}
	if in.TaxRate != nil {
		sale.TaxRate = decimal.NewNullDecimal(*in.TaxRate)
	}

	err = uc.txRunner.RunCheckout(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		products := make([]*entity.Product, len(in.Items))
		amount := decimal.Zero
		for i, it := range in.Items {
			p, err := productRepo.GetByID(ctx, actor.CompanyID, it.ProductID)
			if err != nil {
				return fmt.Errorf("get product: %w", err)
			}
			if p == nil {
				return fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
			}
			price := p.Price
			if it.Price != nil {
				price = *it.Price
			}
			line := entity.SaleLineItem{ProductID: p.ID, Name: p.Name, Quantity: it.Quantity, Price: price}
			sale.Items = append(sale.Items, line)
			amount = amount.Add(line.Total())
			products[i] = p
		}
		sale.Amount = amount.Round(2)
		sale.AmountHT, sale.AmountTax = report.SplitTax(sale.Amount, sale.TaxRate)

		if err := saleRepo.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		// Orden fijo de bloqueo entre ventas concurrentes.
		for _, i := range lockOrder(len(products), func(i int) string { return products[i].ID }) {
			p := products[i]
			err := inventory.RecordOUT(ctx, movRepo, stockRepo, p, inventory.MovementInput{
				CompanyID:   actor.CompanyID,
				UserID:      actor.UserID,
				ProductID:   p.ID,
				WarehouseID: wh.ID,
				Type:        entity.MovementTypeOUT,
				Quantity:    in.Items[i].Quantity,
				Reference:   sale.ID,
			}, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	res := toSaleResponse(sale, true)
	return &res, nil
}

// Cancel anula una venta y devuelve sus unidades a la bodega. Solo admin o manager.
func (uc *SaleUseCase) Cancel(ctx context.Context, actor Actor, id string) error {
	if actor.Role == entity.RoleSeller {
		return domain.ErrForbidden
	}
	now := uc.now()
	return uc.txRunner.RunCheckout(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		sale, err := saleRepo.GetByID(ctx, actor.CompanyID, id)
		if err != nil {
			return fmt.Errorf("get sale: %w", err)
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleStatusCancelled {
			return fmt.Errorf("%w: venta ya anulada", domain.ErrConflict)
		}
		// El UPDATE bloquea la venta: una segunda anulación concurrente espera y recibe ErrConflict.
		if err := saleRepo.UpdateStatus(ctx, actor.CompanyID, sale.ID, entity.SaleStatusCancelled, sale.PaymentStatus); err != nil {
			return err
		}
		items := sale.Items
		for _, i := range lockOrder(len(items), func(i int) string { return items[i].ProductID }) {
			it := items[i]
			if it.ProductID == "" {
				continue
			}
			p, err := productRepo.GetByID(ctx, actor.CompanyID, it.ProductID)
			if err != nil {
				return fmt.Errorf("get product: %w", err)
			}
			if p == nil {
				continue
			}
			cost := p.Cost()
			err = inventory.RecordIN(ctx, movRepo, stockRepo, productRepo, p, inventory.MovementInput{
				CompanyID:   actor.CompanyID,
				UserID:      actor.UserID,
				ProductID:   p.ID,
				WarehouseID: sale.WarehouseID,
				Type:        entity.MovementTypeIN,
				Quantity:    it.Quantity,
				UnitCost:    &cost,
				Reference:   sale.ID,
			}, now)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// List ventas del tenant; un usuario no admin solo ve las suyas.
func (uc *SaleUseCase) List(ctx context.Context, actor Actor, in dto.SaleListRequest) ([]dto.SaleResponse, error) {
	in.DefaultPage()
	f := repository.SaleFilter{Limit: in.Limit, Offset: in.Offset}
	if !actor.isAdmin() {
		f.UserID = actor.UserID
	}
	var err error
	if f.From, err = report.ParseDate(in.StartDate, uc.loc); err != nil {
		return nil, err
	}
	if f.To, err = report.ParseDate(in.EndDate, uc.loc); err != nil {
		return nil, err
	}

	list, err := uc.saleRepo.ListByCompany(ctx, actor.CompanyID, f)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s, false))
	}
	return out, nil
}

// Get detalle con líneas. Ventas ajenas de un no admin responden como inexistentes.
func (uc *SaleUseCase) Get(ctx context.Context, actor Actor, id string) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if s == nil || (!actor.isAdmin() && s.UserID != actor.UserID) {
		return nil, domain.ErrNotFound
	}
	res := toSaleResponse(s, true)
	return &res, nil
}

func toSaleResponse(s *entity.Sale, withItems bool) dto.SaleResponse {
	res := dto.SaleResponse{
		ID:            s.ID,
		WarehouseID:   s.WarehouseID,
		ClientID:      s.ClientID,
		UserID:        s.UserID,
		Date:          s.Date.Format(report.DateLayout),
		Amount:        s.Amount,
		AmountHT:      s.AmountHT,
		AmountTax:     s.AmountTax,
		TaxRate:       report.EffectiveTaxRate(s.TaxRate),
		Status:        s.Status,
		PaymentStatus: s.PaymentStatus,
		CreatedAt:     s.CreatedAt,
	}
	if withItems {
		for _, it := range s.Items {
			res.Items = append(res.Items, dto.SaleItemResponse{
				ProductID: it.ProductID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				Price:     it.Price,
				Total:     it.Total(),
			})
		}
	}
	return res
}
