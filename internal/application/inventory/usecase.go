package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/application/dto"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/inventory"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

// TxRunner abre una transacción y entrega los repos de stock atados a ella.
// Si fn devuelve error no queda nada escrito. Lo usan también el alta de productos
// con stock inicial y, vía sales.CheckoutTxRunner, las ventas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (IN, OUT, ADJUSTMENT, TRANSFER) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	now           func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		now:           time.Now,
	}
}

// MovementInput entrada para registrar un movimiento de inventario.
// Para IN/OUT/ADJUSTMENT: ProductID, WarehouseID, Type, Quantity; UnitCost obligatorio en IN.
// Para TRANSFER: ProductID, FromWarehouseID, ToWarehouseID, Type=TRANSFER, Quantity.
type MovementInput struct {
	CompanyID       string
	UserID          string
	ProductID       string
	WarehouseID     string
	FromWarehouseID string
	ToWarehouseID   string
	Type            string
	Quantity        decimal.Decimal
	UnitCost        *decimal.Decimal
	Reference       string
}

// FromRequest adapta el body HTTP; companyID y userID salen del token.
func FromRequest(companyID, userID string, in dto.RegisterMovementRequest) MovementInput {
	return MovementInput{
		CompanyID:       companyID,
		UserID:          userID,
		ProductID:       in.ProductID,
		WarehouseID:     in.WarehouseID,
		FromWarehouseID: in.FromWarehouseID,
		ToWarehouseID:   in.ToWarehouseID,
		Type:            in.Type,
		Quantity:        in.Quantity,
		UnitCost:        in.UnitCost,
		Reference:       in.Reference,
	}
}

func validate(in MovementInput) error {
	switch in.Type {
	case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
		if in.ProductID == "" || in.WarehouseID == "" {
			return domain.NewValidationError("producto y bodega son obligatorios", "product_id", "warehouse_id")
		}
		if in.Quantity.IsZero() {
			return domain.NewValidationError("la cantidad no puede ser cero", "quantity")
		}
		if in.Type == entity.MovementTypeIN && (in.UnitCost == nil || in.UnitCost.IsNegative()) {
			return domain.NewValidationError("costo unitario obligatorio en entradas", "unit_cost")
		}
		if in.Type != entity.MovementTypeADJUSTMENT && in.Quantity.IsNegative() {
			return domain.NewValidationError("la cantidad debe ser positiva", "quantity")
		}
	case entity.MovementTypeTRANSFER:
		if in.ProductID == "" || in.FromWarehouseID == "" || in.ToWarehouseID == "" {
			return domain.NewValidationError("producto y bodegas son obligatorios", "product_id", "from_warehouse_id", "to_warehouse_id")
		}
		if in.FromWarehouseID == in.ToWarehouseID {
			return domain.NewValidationError("las bodegas deben ser distintas", "to_warehouse_id")
		}
		if !in.Quantity.IsPositive() {
			return domain.NewValidationError("la cantidad debe ser positiva", "quantity")
		}
	default:
		return domain.NewValidationError("tipo de movimiento desconocido", "type")
	}
	return nil
}

// RegisterMovement valida, verifica que producto y bodega(s) sean de la empresa y aplica
// el movimiento dentro de una transacción.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, in MovementInput) error {
	if err := validate(in); err != nil {
		return err
	}

	product, err := uc.productRepo.GetByID(ctx, in.CompanyID, in.ProductID)
	if err != nil {
		return fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return domain.ErrNotFound
	}

	warehouses := []string{in.WarehouseID}
	if in.Type == entity.MovementTypeTRANSFER {
		warehouses = []string{in.FromWarehouseID, in.ToWarehouseID}
	}
	for _, id := range warehouses {
		wh, err := uc.warehouseRepo.GetByID(ctx, in.CompanyID, id)
		if err != nil {
			return fmt.Errorf("get warehouse: %w", err)
		}
		if wh == nil {
			return domain.ErrNotFound
		}
	}

	now := uc.now()
	if in.Reference == "" {
		in.Reference = uuid.New().String()
	}

	return uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		switch in.Type {
		case entity.MovementTypeIN:
			return RecordIN(ctx, movRepo, stockRepo, productRepo, product, in, now)
		case entity.MovementTypeOUT:
			return RecordOUT(ctx, movRepo, stockRepo, product, in, now)
		case entity.MovementTypeADJUSTMENT:
			return recordAdjustment(ctx, movRepo, stockRepo, productRepo, product, in, now)
		default:
			return recordTransfer(ctx, movRepo, stockRepo, product, in, now)
		}
	})
}

// RecordIN bloquea la fila, recalcula el costo promedio ponderado del producto,
// suma el stock y guarda el movimiento. Usa los repos de la tx del caller.
func RecordIN(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	in MovementInput,
	now time.Time,
) error {
	stock, err := stockRepo.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
	if err != nil {
		return fmt.Errorf("lock stock: %w", err)
	}
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		unitCost = *in.UnitCost
	}

	newCost := inventory.WeightedAverageCost(stock.Quantity, product.Cost(), in.Quantity, unitCost)
	if err := productRepo.UpdateCost(ctx, product.ID, newCost); err != nil {
		return fmt.Errorf("update cost: %w", err)
	}
	product.CostPrice = decimal.NewNullDecimal(newCost)

	stock.Add(in.Quantity, now)
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return movRepo.Create(ctx, newMovement(in, entity.MovementTypeIN, in.WarehouseID, in.Quantity, unitCost, now))
}

// RecordOUT bloquea la fila, exige stock suficiente y descuenta al costo promedio vigente.
// Lo usa también el checkout de ventas con Reference = ID de la venta.
func RecordOUT(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	product *entity.Product,
	in MovementInput,
	now time.Time,
) error {
	stock, err := stockRepo.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
	if err != nil {
		return fmt.Errorf("lock stock: %w", err)
	}
	if !stock.Take(in.Quantity, now) {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
	}
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return movRepo.Create(ctx, newMovement(in, entity.MovementTypeOUT, in.WarehouseID, in.Quantity.Neg(), product.Cost(), now))
}

// recordAdjustment positivo como IN (costo 0 si no viene), negativo como OUT.
func recordAdjustment(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	in MovementInput,
	now time.Time,
) error {
	if in.Quantity.IsPositive() {
		stock, err := stockRepo.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
		if err != nil {
			return fmt.Errorf("lock stock: %w", err)
		}
		unitCost := product.Cost()
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
			newCost := inventory.WeightedAverageCost(stock.Quantity, product.Cost(), in.Quantity, unitCost)
			if err := productRepo.UpdateCost(ctx, product.ID, newCost); err != nil {
				return fmt.Errorf("update cost: %w", err)
			}
		}
		stock.Add(in.Quantity, now)
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return fmt.Errorf("upsert stock: %w", err)
		}
		return movRepo.Create(ctx, newMovement(in, entity.MovementTypeADJUSTMENT, in.WarehouseID, in.Quantity, unitCost, now))
	}

	qty := in.Quantity.Neg()
	stock, err := stockRepo.GetForUpdate(ctx, in.ProductID, in.WarehouseID)
	if err != nil {
		return fmt.Errorf("lock stock: %w", err)
	}
	if !stock.Take(qty, now) {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
	}
	if err := stockRepo.Upsert(ctx, stock); err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return movRepo.Create(ctx, newMovement(in, entity.MovementTypeADJUSTMENT, in.WarehouseID, in.Quantity, product.Cost(), now))
}

// recordTransfer resta en origen y suma en destino; dos registros con la misma Reference.
func recordTransfer(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	product *entity.Product,
	in MovementInput,
	now time.Time,
) error {
	// Las dos filas se bloquean por ID de bodega para que transferencias cruzadas no se bloqueen entre sí.
	locked := map[string]*entity.Stock{}
	for _, wh := range []string{min(in.FromWarehouseID, in.ToWarehouseID), max(in.FromWarehouseID, in.ToWarehouseID)} {
		s, err := stockRepo.GetForUpdate(ctx, in.ProductID, wh)
		if err != nil {
			return fmt.Errorf("lock stock %s: %w", wh, err)
		}
		locked[wh] = s
	}
	origin, dest := locked[in.FromWarehouseID], locked[in.ToWarehouseID]
	if !origin.Take(in.Quantity, now) {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
	}
	dest.Add(in.Quantity, now)
	if err := stockRepo.Upsert(ctx, origin); err != nil {
		return fmt.Errorf("upsert origin stock: %w", err)
	}
	if err := stockRepo.Upsert(ctx, dest); err != nil {
		return fmt.Errorf("upsert destination stock: %w", err)
	}

	cost := product.Cost()
	if err := movRepo.Create(ctx, newMovement(in, entity.MovementTypeTRANSFER, in.FromWarehouseID, in.Quantity.Neg(), cost, now)); err != nil {
		return err
	}
	return movRepo.Create(ctx, newMovement(in, entity.MovementTypeTRANSFER, in.ToWarehouseID, in.Quantity, cost, now))
}

func newMovement(in MovementInput, typ, warehouseID string, qty, unitCost decimal.Decimal, now time.Time) *entity.InventoryMovement {
	return &entity.InventoryMovement{
		CompanyID:   in.CompanyID,
		ProductID:   in.ProductID,
		WarehouseID: warehouseID,
		Type:        typ,
		Quantity:    qty,
		UnitCost:    unitCost,
		TotalCost:   qty.Mul(unitCost),
		Reference:   in.Reference,
		Date:        now,
		CreatedAt:   now,
		CreatedBy:   in.UserID,
	}
}

// ── Historial ─────────────────────────────────────────────────────────────────

// ListMovementsUseCase lista los movimientos de la empresa.
type ListMovementsUseCase struct {
	movRepo repository.InventoryMovementRepository
}

func NewListMovementsUseCase(movRepo repository.InventoryMovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movRepo: movRepo}
}

func (uc *ListMovementsUseCase) List(ctx context.Context, companyID string, in dto.MovementListRequest) ([]dto.MovementResponse, error) {
	in.DefaultPage()
	movs, err := uc.movRepo.ListByCompany(ctx, companyID, repository.MovementFilter{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			WarehouseID: m.WarehouseID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			UnitCost:    m.UnitCost,
			TotalCost:   m.TotalCost,
			Reference:   m.Reference,
			Date:        m.Date,
			CreatedBy:   m.CreatedBy,
		})
	}
	return out, nil
}
