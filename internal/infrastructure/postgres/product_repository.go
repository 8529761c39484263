package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/entity"
	"github.com/Aboudouaba87/app-gestion-stock-new-sub001/internal/domain/repository"
)

var errProductRefs = domain.NewValidationError("categoría o proveedor inexistente", "category_id", "supplier_id")

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, category_id, supplier_id, sku, name, description, price, cost_price, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID, supplierID, sku *string
	if err := row.Scan(
		&p.ID, &p.CompanyID, &categoryID, &supplierID, &sku, &p.Name, &p.Description,
		&p.Price, &p.CostPrice, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.CategoryID = derefString(categoryID)
	p.SupplierID = derefString(supplierID)
	p.SKU = derefString(sku)
	return &p, nil
}

// Create persiste un nuevo producto. SKU duplicado en la empresa -> ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, nullString(p.CategoryID), nullString(p.SupplierID), nullString(p.SKU),
		p.Name, p.Description, p.Price, p.CostPrice, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return classify(err, "insert product", domain.ErrDuplicate, errProductRefs)
	}
	return nil
}

// GetByID obtiene un producto de la empresa. nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByCompanyAndSKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetByCompanyAndSKU(ctx context.Context, companyID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND sku = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, companyID, sku))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by sku: %w", err)
	}
	return p, nil
}

// Update actualiza los datos del producto (no el costo, ver UpdateCost).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET category_id = $3, supplier_id = $4, sku = $5, name = $6, description = $7,
			price = $8, updated_at = $9
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		p.CompanyID, p.ID, nullString(p.CategoryID), nullString(p.SupplierID), nullString(p.SKU),
		p.Name, p.Description, p.Price, p.UpdatedAt,
	)
	if err != nil {
		return classify(err, "update product", domain.ErrDuplicate, errProductRefs)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateCost actualiza el costo promedio ponderado del producto.
func (r *ProductRepo) UpdateCost(ctx context.Context, productID string, cost decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE products SET cost_price = $2, updated_at = now() WHERE id = $1`, productID, cost)
	if err != nil {
		return fmt.Errorf("update product cost: %w", err)
	}
	return nil
}

// ListByCompany lista productos con filtro opcional por categoría y búsqueda.
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, f repository.ProductFilter) ([]*entity.Product, error) {
	limit, offset := pageArgs(f.Limit, f.Offset)
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE company_id = $1
		  AND ($2::uuid IS NULL OR category_id = $2)
		  AND ($3::text = '' OR name ILIKE '%' || $3 || '%' OR sku ILIKE '%' || $3 || '%')
		ORDER BY name
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(ctx, query, companyID, nullString(f.CategoryID), f.Search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina el producto. Las líneas de venta conservan el nombre con product_id NULL.
func (r *ProductRepo) Delete(ctx context.Context, companyID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
