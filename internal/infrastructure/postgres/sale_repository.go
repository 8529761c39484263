package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/report"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Create requiere un Querier transaccional.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, warehouse_id, client_id, user_id, date, amount, amount_ht, amount_tax,
	tax_rate, status, payment_status, created_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var clientID, userID *string
	var ht, tax decimal.NullDecimal
	if err := row.Scan(
		&s.ID, &s.CompanyID, &s.WarehouseID, &clientID, &userID, &s.Date, &s.Amount, &ht,
		&tax, &s.TaxRate, &s.Status, &s.PaymentStatus, &s.CreatedAt,
	); err != nil {
		return nil, err
	}
	s.ClientID = derefString(clientID)
	s.UserID = derefString(userID)
	// Ventas antiguas sin desglose: se recalcula con la tasa de la venta o la de defecto.
	s.AmountHT, s.AmountTax = report.SplitTax(s.Amount, s.TaxRate)
	if ht.Valid {
		s.AmountHT = ht.Decimal
	}
	if tax.Valid {
		s.AmountTax = tax.Decimal
	}
	return &s, nil
}

// Create inserta la cabecera y las líneas de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.WarehouseID, nullString(s.ClientID), nullString(s.UserID), s.Date,
		s.Amount, s.AmountHT, s.AmountTax, s.TaxRate, s.Status, s.PaymentStatus, s.CreatedAt,
	)
	if err != nil {
		return classify(err, "insert sale", nil, domain.NewValidationError("bodega o cliente inexistente", "warehouse_id", "client_id"))
	}

	itemQuery := `
		INSERT INTO sale_line_items (id, sale_id, product_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i := range s.Items {
		it := &s.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.SaleID = s.ID
		if _, err := r.q.Exec(ctx, itemQuery, it.ID, it.SaleID, nullString(it.ProductID), it.Name, it.Quantity, it.Price); err != nil {
			return fmt.Errorf("insert sale line item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE company_id = $1 AND id = $2`
	s, err := scanSale(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, name, quantity, price
		FROM sale_line_items WHERE sale_id = $1 ORDER BY name`, s.ID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.SaleLineItem
		var productID *string
		if err := rows.Scan(&it.ID, &it.SaleID, &productID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		it.ProductID = derefString(productID)
		s.Items = append(s.Items, it)
	}
	return s, rows.Err()
}

// ListByCompany lista ventas (sin líneas), más recientes primero.
func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, f repository.SaleFilter) ([]*entity.Sale, error) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE company_id = $1
		  AND ($2::uuid IS NULL OR user_id = $2)
		  AND ($3::date IS NULL OR date >= $3)
		  AND ($4::date IS NULL OR date <= $4)
		ORDER BY date DESC, created_at DESC
		LIMIT $5 OFFSET $6`
	rows, err := r.q.Query(ctx, query, companyID, nullString(f.UserID), f.From, f.To, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la venta y de su pago. Bloquea la fila hasta el fin de la tx;
// si la venta ya tenía ese estado devuelve ErrConflict.
func (r *SaleRepo) UpdateStatus(ctx context.Context, companyID, id, status, paymentStatus string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $3, payment_status = $4
		 WHERE company_id = $1 AND id = $2 AND status <> $3`,
		companyID, id, status, paymentStatus,
	)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: venta inexistente o ya en estado %s", domain.ErrConflict, status)
	}
	return nil
}
