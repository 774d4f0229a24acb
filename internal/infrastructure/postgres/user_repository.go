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

var _ repository.UserRepository = (*UserRepo)(nil)

var userColumns = []string{
	"id", "name", "last_name", "username", "password_hash", "email", "phone",
	"roles", "active", "created_at", "updated_at",
}

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Los roles viajan embebidos en la columna JSONB roles.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	roles, err := toJSON(user.Roles)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO users (id, name, last_name, username, password_hash, email, phone, roles, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, query,
		user.ID, user.Name, user.LastName, user.Username, user.PasswordHash, user.Email, user.Phone,
		roles, user.Active, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

// GetByUsername obtiene un usuario por username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, sq.Eq{"username": username})
}

func (r *UserRepo) getOne(ctx context.Context, where sq.Eq) (*entity.User, error) {
	query, args, err := psql.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user: %w", err)
	}
	u, err := scanUser(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update actualiza perfil, password, roles y estado.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	roles, err := toJSON(user.Roles)
	if err != nil {
		return err
	}
	query := `
		UPDATE users
		SET name = $2, last_name = $3, password_hash = $4, email = $5, phone = $6,
		    roles = $7, active = $8, updated_at = $9
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		user.ID, user.Name, user.LastName, user.PasswordHash, user.Email, user.Phone,
		roles, user.Active, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// List lista usuarios filtrando por username.
func (r *UserRepo) List(ctx context.Context, f repository.NameFilter) ([]*entity.User, int, error) {
	rows, total, err := selectPage(ctx, r.q, "users", userColumns, nameConds("username", f), "username ASC", f.Page)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}

// Deactivate marca al usuario como inactivo.
func (r *UserRepo) Deactivate(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE users SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var roles []byte
	if err := row.Scan(
		&u.ID, &u.Name, &u.LastName, &u.Username, &u.PasswordHash, &u.Email, &u.Phone,
		&roles, &u.Active, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(roles, &u.Roles); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	return &u, nil
}
