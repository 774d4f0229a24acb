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

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

var permissionColumns = []string{"id", "name", "description", "active", "created_at", "updated_at"}

// PermissionRepo implementación del puerto PermissionRepository.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador.
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

func (r *PermissionRepo) Create(ctx context.Context, p *entity.Permission) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO permissions (id, name, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Description, p.Active, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert permission: %w", err)
	}
	return nil
}

func (r *PermissionRepo) GetByID(ctx context.Context, id string) (*entity.Permission, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *PermissionRepo) GetByName(ctx context.Context, name string) (*entity.Permission, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

// GetByNames devuelve los permisos existentes entre names.
func (r *PermissionRepo) GetByNames(ctx context.Context, names []string) ([]*entity.Permission, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query, args, err := psql.Select(permissionColumns...).From("permissions").
		Where(sq.Eq{"name": names}).OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build permissions by names: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("permissions by names: %w", err)
	}
	defer rows.Close()
	var list []*entity.Permission
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PermissionRepo) getOne(ctx context.Context, where sq.Eq) (*entity.Permission, error) {
	query, args, err := psql.Select(permissionColumns...).From("permissions").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get permission: %w", err)
	}
	p, err := scanPermission(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permission: %w", err)
	}
	return p, nil
}

func (r *PermissionRepo) Update(ctx context.Context, p *entity.Permission) error {
	_, err := r.q.Exec(ctx, `
		UPDATE permissions SET name = $2, description = $3, active = $4, updated_at = $5
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Active, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update permission: %w", err)
	}
	return nil
}

func (r *PermissionRepo) List(ctx context.Context, f repository.NameFilter) ([]*entity.Permission, int, error) {
	rows, total, err := selectPage(ctx, r.q, "permissions", permissionColumns, nameConds("name", f), "name ASC", f.Page)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Permission, 0)
	for rows.Next() {
		p, err := scanPermission(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan permission: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

func (r *PermissionRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM permissions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete permission: %w", err)
	}
	return nil
}

func scanPermission(row pgx.Row) (*entity.Permission, error) {
	var p entity.Permission
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
