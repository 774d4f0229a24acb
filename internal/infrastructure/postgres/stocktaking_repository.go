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

var _ repository.StocktakingRepository = (*StocktakingRepo)(nil)

var stocktakingColumns = []string{
	"id", "product_id", "user_id", "system_quantity", "counted_quantity", "difference",
	"notes", "date", "active", "created_at", "updated_at",
}

// StocktakingRepo conteos físicos.
type StocktakingRepo struct {
	q Querier
}

// NewStocktakingRepository construye el adaptador.
func NewStocktakingRepository(q Querier) *StocktakingRepo {
	return &StocktakingRepo{q: q}
}

func (r *StocktakingRepo) Create(ctx context.Context, s *entity.Stocktaking) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stocktakings (id, product_id, user_id, system_quantity, counted_quantity, difference, notes, date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.ProductID, s.UserID, s.SystemQuantity, s.CountedQuantity, s.Difference,
		s.Notes, s.Date, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stocktaking: %w", err)
	}
	return nil
}

func (r *StocktakingRepo) GetByID(ctx context.Context, id string) (*entity.Stocktaking, error) {
	query, args, err := psql.Select(stocktakingColumns...).From("stocktakings").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get stocktaking: %w", err)
	}
	s, err := scanStocktaking(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stocktaking: %w", err)
	}
	return s, nil
}

func (r *StocktakingRepo) Update(ctx context.Context, s *entity.Stocktaking) error {
	_, err := r.q.Exec(ctx, `
		UPDATE stocktakings
		SET counted_quantity = $2, difference = $3, notes = $4, date = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.CountedQuantity, s.Difference, s.Notes, s.Date, s.Active, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stocktaking: %w", err)
	}
	return nil
}

func (r *StocktakingRepo) List(ctx context.Context, f repository.StocktakingFilter) ([]*entity.Stocktaking, int, error) {
	where := sq.And{}
	if f.From != nil {
		where = append(where, sq.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		where = append(where, sq.LtOrEq{"date": *f.To})
	}
	if f.ProductID != "" {
		where = append(where, sq.Eq{"product_id": f.ProductID})
	}
	rows, total, err := selectPage(ctx, r.q, "stocktakings", stocktakingColumns, where, "date DESC, id ASC", f.Page)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Stocktaking, 0)
	for rows.Next() {
		s, err := scanStocktaking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan stocktaking: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

func (r *StocktakingRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stocktakings WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete stocktaking: %w", err)
	}
	return nil
}

func scanStocktaking(row pgx.Row) (*entity.Stocktaking, error) {
	var s entity.Stocktaking
	if err := row.Scan(
		&s.ID, &s.ProductID, &s.UserID, &s.SystemQuantity, &s.CountedQuantity, &s.Difference,
		&s.Notes, &s.Date, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}
