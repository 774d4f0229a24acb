package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{
	"id", "code", "name", "description", "price", "stock",
	"category_id", "brand_id", "provider_id", "active", "created_at", "updated_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, code, name, description, price, stock, category_id, brand_id, provider_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.Code, p.Name, p.Description, p.Price, p.Stock,
		p.CategoryID, p.BrandID, p.ProviderID, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query, args, err := psql.Select(productColumns...).From("products").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get product: %w", err)
	}
	p, err := scanProduct(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza todos los campos editables.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		UPDATE products
		SET code = $2, name = $3, description = $4, price = $5, stock = $6,
		    category_id = $7, brand_id = $8, provider_id = $9, active = $10, updated_at = $11
		WHERE id = $1`,
		p.ID, p.Code, p.Name, p.Description, p.Price, p.Stock,
		p.CategoryID, p.BrandID, p.ProviderID, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// List aplica los filtros de ProductFilter; el rango de precio es inclusivo.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, int, error) {
	where := nameConds("name", repository.NameFilter{Name: f.Name, Active: f.Active})
	if f.CategoryID != "" {
		where = append(where, sq.Eq{"category_id": f.CategoryID})
	}
	if f.BrandID != "" {
		where = append(where, sq.Eq{"brand_id": f.BrandID})
	}
	if f.ProviderID != "" {
		where = append(where, sq.Eq{"provider_id": f.ProviderID})
	}
	if f.MinPrice != nil {
		where = append(where, sq.GtOrEq{"price": *f.MinPrice})
	}
	if f.MaxPrice != nil {
		where = append(where, sq.LtOrEq{"price": *f.MaxPrice})
	}

	rows, total, err := selectPage(ctx, r.q, "products", productColumns, where, "name ASC", f.Page)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(
		&p.ID, &p.Code, &p.Name, &p.Description, &p.Price, &p.Stock,
		&p.CategoryID, &p.BrandID, &p.ProviderID, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
