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

var _ repository.ProviderRepository = (*ProviderRepo)(nil)

var providerColumns = []string{
	"id", "name", "ruc", "dni", "address", "phone", "email", "active", "created_at", "updated_at",
}

// ProviderRepo implementación del puerto ProviderRepository.
// ruc/dni/email no tienen índice único: la unicidad la decide el validador de la aplicación.
type ProviderRepo struct {
	q Querier
}

// NewProviderRepository construye el adaptador.
func NewProviderRepository(q Querier) *ProviderRepo {
	return &ProviderRepo{q: q}
}

func (r *ProviderRepo) Create(ctx context.Context, p *entity.Provider) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO providers (id, name, ruc, dni, address, phone, email, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, p.RUC, p.DNI, p.Address, p.Phone, p.Email, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert provider: %w", err)
	}
	return nil
}

func (r *ProviderRepo) GetByID(ctx context.Context, id string) (*entity.Provider, error) {
	query, args, err := psql.Select(providerColumns...).From("providers").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get provider: %w", err)
	}
	p, err := scanProvider(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}
	return p, nil
}

func (r *ProviderRepo) Update(ctx context.Context, p *entity.Provider) error {
	_, err := r.q.Exec(ctx, `
		UPDATE providers
		SET name = $2, ruc = $3, dni = $4, address = $5, phone = $6, email = $7, active = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Name, p.RUC, p.DNI, p.Address, p.Phone, p.Email, p.Active, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update provider: %w", err)
	}
	return nil
}

func (r *ProviderRepo) List(ctx context.Context, f repository.NameFilter) ([]*entity.Provider, int, error) {
	rows, total, err := selectPage(ctx, r.q, "providers", providerColumns, nameConds("name", f), "name ASC", f.Page)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Provider, 0)
	for rows.Next() {
		p, err := scanProvider(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan provider: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func (r *ProviderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM providers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete provider: %w", err)
	}
	return nil
}

func (r *ProviderRepo) ExistsByRUC(ctx context.Context, ruc, excludeID string) (bool, error) {
	return exists(ctx, r.q, "providers", activeProviderExcept(sq.Eq{"ruc": ruc}, excludeID))
}

func (r *ProviderRepo) ExistsByDNI(ctx context.Context, dni, excludeID string) (bool, error) {
	return exists(ctx, r.q, "providers", activeProviderExcept(sq.Eq{"dni": dni}, excludeID))
}

func (r *ProviderRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	return exists(ctx, r.q, "providers", activeProviderExcept(sq.Expr("lower(email) = lower(?)", email), excludeID))
}

func activeProviderExcept(cond sq.Sqlizer, excludeID string) sq.And {
	where := sq.And{cond, sq.Eq{"active": true}}
	if excludeID != "" {
		where = append(where, sq.NotEq{"id": excludeID})
	}
	return where
}

func scanProvider(row pgx.Row) (*entity.Provider, error) {
	var p entity.Provider
	if err := row.Scan(
		&p.ID, &p.Name, &p.RUC, &p.DNI, &p.Address, &p.Phone, &p.Email, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
