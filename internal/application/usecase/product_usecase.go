package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/inventory"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Costo y stock se manejan vía movimientos.
type ProductUseCase struct {
	repo          repository.ProductRepository
	stockRepo     repository.StockRepository
	warehouseRepo repository.WarehouseRepository
	categoryRepo  repository.CategoryRepository
	supplierRepo  repository.SupplierRepository
	txRunner      inventory.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	txRunner inventory.TxRunner,
) *ProductUseCase {
	return &ProductUseCase{
		repo:          repo,
		stockRepo:     stockRepo,
		warehouseRepo: warehouseRepo,
		categoryRepo:  categoryRepo,
		supplierRepo:  supplierRepo,
		txRunner:      txRunner,
	}
}

// checkRefs exige que categoría y proveedor (si vienen) sean de la empresa.
func (uc *ProductUseCase) checkRefs(ctx context.Context, companyID, categoryID, supplierID string) error {
	if categoryID != "" {
		c, err := uc.categoryRepo.GetByID(ctx, companyID, categoryID)
		if err != nil {
			return fmt.Errorf("get category: %w", err)
		}
		if c == nil {
			return domain.NewValidationError("categoría inexistente", "category_id")
		}
	}
	if supplierID != "" {
		s, err := uc.supplierRepo.GetByID(ctx, companyID, supplierID)
		if err != nil {
			return fmt.Errorf("get supplier: %w", err)
		}
		if s == nil {
			return domain.NewValidationError("proveedor inexistente", "supplier_id")
		}
	}
	return nil
}

// Create crea un producto. Con InitialStock > 0 registra la entrada inicial en la bodega
// indicada (o la principal) dentro de la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("el precio no puede ser negativo", "price")
	}
	if in.CostPrice != nil && in.CostPrice.IsNegative() {
		return nil, domain.NewValidationError("el costo no puede ser negativo", "cost_price")
	}
	if in.InitialStock != nil && in.InitialStock.IsNegative() {
		return nil, domain.NewValidationError("el stock inicial no puede ser negativo", "initial_stock")
	}
	sku := strings.TrimSpace(in.SKU)
	if sku != "" {
		existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, sku)
		if err != nil {
			return nil, fmt.Errorf("lookup sku: %w", err)
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.checkRefs(ctx, companyID, in.CategoryID, in.SupplierID); err != nil {
		return nil, err
	}

	var wh *entity.Warehouse
	withStock := in.InitialStock != nil && in.InitialStock.IsPositive()
	if withStock {
		var err error
		if in.WarehouseID != "" {
			wh, err = uc.warehouseRepo.GetByID(ctx, companyID, in.WarehouseID)
		} else {
			wh, err = uc.warehouseRepo.GetByCompanyAndCode(ctx, companyID, entity.DefaultWarehouseCode)
		}
		if err != nil {
			return nil, fmt.Errorf("get warehouse: %w", err)
		}
		if wh == nil {
			return nil, domain.NewValidationError("bodega inexistente", "warehouse_id")
		}
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		CategoryID:  in.CategoryID,
		SupplierID:  in.SupplierID,
		SKU:         sku,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.CostPrice != nil {
		product.CostPrice = decimal.NewNullDecimal(*in.CostPrice)
	}

	err := uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
		if !withStock {
			return nil
		}
		cost := product.Cost()
		return inventory.RecordIN(ctx, movRepo, stockRepo, productRepo, product, inventory.MovementInput{
			CompanyID:   companyID,
			UserID:      userID,
			ProductID:   product.ID,
			WarehouseID: wh.ID,
			Type:        entity.MovementTypeIN,
			Quantity:    *in.InitialStock,
			UnitCost:    &cost,
			Reference:   "stock-initial",
		}, now)
	})
	if err != nil {
		return nil, err
	}

	res := toProductResponse(product)
	if withStock {
		res.Stock = []dto.StockResponse{{WarehouseID: wh.ID, Quantity: *in.InitialStock}}
	}
	return res, nil
}

// GetByID obtiene un producto con su stock por bodega.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.stockRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	res := toProductResponse(product)
	for _, s := range stock {
		res.Stock = append(res.Stock, dto.StockResponse{WarehouseID: s.WarehouseID, Quantity: s.Quantity})
	}
	return res, nil
}

// Update actualiza un producto. No permite modificar costo ni stock.
// Un puntero a cadena vacía en CategoryID/SupplierID quita la referencia.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	var categoryID, supplierID string
	if in.CategoryID != nil {
		categoryID = *in.CategoryID
		product.CategoryID = categoryID
	}
	if in.SupplierID != nil {
		supplierID = *in.SupplierID
		product.SupplierID = supplierID
	}
	if err := uc.checkRefs(ctx, companyID, categoryID, supplierID); err != nil {
		return nil, err
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		if sku != "" && sku != product.SKU {
			other, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, sku)
			if err != nil {
				return nil, fmt.Errorf("lookup sku: %w", err)
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
		}
		product.SKU = sku
	}
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.NewValidationError("el precio no puede ser negativo", "price")
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, repository.ProductFilter{
		CategoryID: in.CategoryID,
		Search:     strings.TrimSpace(in.Search),
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  in.PageRequest.Response(len(items)),
	}, nil
}

// Delete elimina un producto. Las líneas de venta conservan el nombre con product_id nulo.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.Delete(ctx, companyID, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	res := &dto.ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		SupplierID:  p.SupplierID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CostPrice.Valid {
		c := p.CostPrice.Decimal
		res.CostPrice = &c
	}
	return res
}
