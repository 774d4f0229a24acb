package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain"
	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.RoleRepository = (*RoleRepo)(nil)

var roleColumns = []string{"id", "name", "permissions", "active", "created_at", "updated_at"}

// RoleRepo roles con sus permisos embebidos (JSONB).
type RoleRepo struct {
	q Querier
}

// NewRoleRepository construye el adaptador de persistencia para roles.
func NewRoleRepository(q Querier) *RoleRepo {
	return &RoleRepo{q: q}
}

// Create persiste un rol.
func (r *RoleRepo) Create(ctx context.Context, role *entity.Role) error {
	perms, err := toJSON(role.Permissions)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO roles (id, name, permissions, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		role.ID, role.Name, perms, role.Active, role.CreatedAt, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}
	return nil
}

func (r *RoleRepo) GetByID(ctx context.Context, id string) (*entity.Role, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *RoleRepo) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	return r.getOne(ctx, sq.Eq{"name": name})
}

// GetByNames devuelve los roles existentes entre names; los ausentes se omiten.
func (r *RoleRepo) GetByNames(ctx context.Context, names []string) ([]*entity.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}
	query, args, err := psql.Select(roleColumns...).From("roles").
		Where(sq.Eq{"name": names}).OrderBy("name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build roles by names: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("roles by names: %w", err)
	}
	defer rows.Close()
	var list []*entity.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}
	return list, rows.Err()
}

func (r *RoleRepo) getOne(ctx context.Context, where sq.Eq) (*entity.Role, error) {
	query, args, err := psql.Select(roleColumns...).From("roles").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get role: %w", err)
	}
	role, err := scanRole(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get role: %w", err)
	}
	return role, nil
}

// Update reemplaza nombre, permisos y estado.
func (r *RoleRepo) Update(ctx context.Context, role *entity.Role) error {
	perms, err := toJSON(role.Permissions)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		UPDATE roles SET name = $2, permissions = $3, active = $4, updated_at = $5
		WHERE id = $1`,
		role.ID, role.Name, perms, role.Active, role.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update role: %w", err)
	}
	return nil
}

func (r *RoleRepo) List(ctx context.Context, f repository.NameFilter) ([]*entity.Role, int, error) {
	rows, total, err := selectPage(ctx, r.q, "roles", roleColumns, nameConds("name", f), "name ASC", f.Page)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Role, 0)
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan role: %w", err)
		}
		list = append(list, role)
	}
	return list, total, rows.Err()
}

func (r *RoleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}
	return nil
}

func scanRole(row pgx.Row) (*entity.Role, error) {
	var role entity.Role
	var perms []byte
	if err := row.Scan(&role.ID, &role.Name, &perms, &role.Active, &role.CreatedAt, &role.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(perms, &role.Permissions); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}
	return &role, nil
}
