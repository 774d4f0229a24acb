package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stock-api/internal/domain/repository"
)

// Querier lo cumplen *pgxpool.Pool y pgx.Tx; los repos aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// nameConds filtro común: coincidencia parcial de column y estado.
func nameConds(column string, f repository.NameFilter) sq.And {
	conds := sq.And{}
	if f.Name != "" {
		conds = append(conds, sq.ILike{column: "%" + f.Name + "%"})
	}
	if f.Active != nil {
		conds = append(conds, sq.Eq{"active": *f.Active})
	}
	return conds
}

// selectPage ejecuta el count(*) y la página pedida con los mismos filtros.
// El llamador cierra rows.
func selectPage(ctx context.Context, q Querier, table string, cols []string, where sq.And, orderBy string, p repository.Page) (pgx.Rows, int, error) {
	countSQL, args, err := psql.Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count %s: %w", table, err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count %s: %w", table, err)
	}

	p = p.Normalize()
	listSQL, args, err := psql.Select(cols...).From(table).Where(where).
		OrderBy(orderBy).
		Limit(uint64(p.Limit)).Offset(uint64(p.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list %s: %w", table, err)
	}
	rows, err := q.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}
	return rows, total, nil
}

// exists true si hay al menos una fila que cumpla where.
func exists(ctx context.Context, q Querier, table string, where sq.Sqlizer) (bool, error) {
	inner, args, err := psql.Select("1").From(table).Where(where).Limit(1).ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists %s: %w", table, err)
	}
	var ok bool
	if err := q.QueryRow(ctx, "SELECT EXISTS ("+inner+")", args...).Scan(&ok); err != nil {
		return false, fmt.Errorf("exists %s: %w", table, err)
	}
	return ok, nil
}

func toJSON(v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	return b, nil
}
