package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

var catalogColumns = []string{"id", "name", "description", "active", "created_at", "updated_at"}

// CategoryRepo implementación del puerto CategoryRepository.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO categories (id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.Name, c.Description, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByName busca sin distinguir mayúsculas.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, sq.Expr("lower(name) = lower(?)", name))
}

func (r *CategoryRepo) getOne(ctx context.Context, where sq.Sqlizer) (*entity.Category, error) {
	query, args, err := psql.Select(catalogColumns...).From("categories").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get category: %w", err)
	}
	var c entity.Category
	err = r.q.QueryRow(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `
		UPDATE categories SET name = $2, description = $3, active = $4, updated_at = $5
		WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Active, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context, f repository.NameFilter) ([]*entity.Category, int, error) {
	rows, total, err := selectPage(ctx, r.q, "categories", catalogColumns, nameConds("name", f), "name ASC", f.Page)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
