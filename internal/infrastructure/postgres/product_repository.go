package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/novuscrm/novus-api/internal/domain"
	"github.com/novuscrm/novus-api/internal/domain/brand"
	"github.com/novuscrm/novus-api/internal/domain/entity"
	"github.com/novuscrm/novus-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, brand_id, sku_code, name, base_price, pricing_tiers, status, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// pricing_tiers es jsonb y se mueve como json.RawMessage sin interpretar.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.BrandID, &p.SKUCode, &p.Name, &p.BasePrice,
		&p.PricingTiers, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. SKU duplicado -> domain.ErrDuplicate.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, brand_id, sku_code, name, base_price, pricing_tiers, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.BrandID, product.SKUCode, product.Name, product.BasePrice,
		product.PricingTiers, product.Status, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByScope obtiene un producto por ID dentro de las marcas del caller.
// Devuelve nil tanto si no existe como si está fuera de alcance.
func (r *ProductRepo) GetByScope(id string, scope brand.Scope) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	args := []any{id}
	if !scope.IsAdmin() {
		query += ` AND brand_id = ANY($2)`
		args = append(args, scope.BrandIDs)
	}
	product, err := scanProduct(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// List devuelve los productos de las marcas del caller, por nombre ascendente
// (orden de catálogo, no cronológico).
func (r *ProductRepo) List(scope brand.Scope, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	args := []any{}
	idx := 1
	if !scope.IsAdmin() {
		query += fmt.Sprintf(" WHERE brand_id = ANY($%d)", idx)
		args = append(args, scope.BrandIDs)
		idx++
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.BrandID, &p.SKUCode, &p.Name, &p.BasePrice,
			&p.PricingTiers, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Count devuelve el total de productos visibles para el caller.
func (r *ProductRepo) Count(scope brand.Scope) (int, error) {
	query := `SELECT COUNT(*) FROM products`
	args := []any{}
	if !scope.IsAdmin() {
		query += ` WHERE brand_id = ANY($1)`
		args = append(args, scope.BrandIDs)
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// Update persiste los campos mutables del producto. SKU duplicado -> domain.ErrDuplicate.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products
		SET sku_code = $2, name = $3, base_price = $4, pricing_tiers = $5, status = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.SKUCode, product.Name, product.BasePrice,
		product.PricingTiers, product.Status, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}
