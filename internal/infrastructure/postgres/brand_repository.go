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

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación del puerto BrandRepository (misma forma que categorías).
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador.
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO brands (id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		b.ID, b.Name, b.Description, b.Active, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *BrandRepo) GetByName(ctx context.Context, name string) (*entity.Brand, error) {
	return r.getOne(ctx, sq.Expr("lower(name) = lower(?)", name))
}

func (r *BrandRepo) getOne(ctx context.Context, where sq.Sqlizer) (*entity.Brand, error) {
	query, args, err := psql.Select(catalogColumns...).From("brands").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get brand: %w", err)
	}
	var b entity.Brand
	err = r.q.QueryRow(ctx, query, args...).Scan(&b.ID, &b.Name, &b.Description, &b.Active, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	_, err := r.q.Exec(ctx, `
		UPDATE brands SET name = $2, description = $3, active = $4, updated_at = $5
		WHERE id = $1`,
		b.ID, b.Name, b.Description, b.Active, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update brand: %w", err)
	}
	return nil
}

func (r *BrandRepo) List(ctx context.Context, f repository.NameFilter) ([]*entity.Brand, int, error) {
	rows, total, err := selectPage(ctx, r.q, "brands", catalogColumns, nameConds("name", f), "name ASC", f.Page)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Brand, 0)
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Active, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan brand: %w", err)
		}
		list = append(list, &b)
	}
	return list, total, rows.Err()
}

func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM brands WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	return nil
}
