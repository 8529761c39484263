package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación de InventoryMovementRepository sobre PostgreSQL.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario. Genera el ID si viene vacío.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements
			(id, company_id, product_id, warehouse_id, type, quantity, unit_cost, total_cost, reference, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.ProductID, m.WarehouseID, m.Type, m.Quantity, m.UnitCost, m.TotalCost,
		m.Reference, m.Date, m.CreatedAt, nullString(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByCompany historial de movimientos del tenant, más recientes primero.
func (r *InventoryMovementRepo) ListByCompany(ctx context.Context, companyID string, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	query := `
		SELECT id, company_id, product_id, warehouse_id, type, quantity, unit_cost, total_cost,
			reference, date, created_at, created_by
		FROM inventory_movements
		WHERE company_id = $1
		  AND ($2::uuid IS NULL OR product_id = $2)
		  AND ($3::uuid IS NULL OR warehouse_id = $3)
		  AND ($4::timestamptz IS NULL OR date >= $4)
		  AND ($5::timestamptz IS NULL OR date <= $5)
		ORDER BY date DESC, created_at DESC
		LIMIT $6 OFFSET $7`
	rows, err := r.q.Query(ctx, query,
		companyID, nullString(f.ProductID), nullString(f.WarehouseID), f.From, f.To, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list inventory movements: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.InventoryMovement, 0)
	for rows.Next() {
		var m entity.InventoryMovement
		var createdBy *string
		if err := rows.Scan(
			&m.ID, &m.CompanyID, &m.ProductID, &m.WarehouseID, &m.Type, &m.Quantity, &m.UnitCost,
			&m.TotalCost, &m.Reference, &m.Date, &m.CreatedAt, &createdBy,
		); err != nil {
			return nil, fmt.Errorf("scan inventory movement: %w", err)
		}
		m.CreatedBy = derefString(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}
