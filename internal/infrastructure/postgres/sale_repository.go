package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-api/internal/domain/entity"
	"github.com/jhoicas/stock-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

var saleColumns = []string{"id", "user_id", "customer", "items", "total", "date", "active", "created_at", "updated_at"}

// SaleRepo ventas; las líneas se guardan en la columna JSONB items.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	items, err := toJSON(s.Items)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO sales (id, user_id, customer, items, total, date, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.ID, s.UserID, s.Customer, items, s.Total, s.Date, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query, args, err := psql.Select(saleColumns...).From("sales").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get sale: %w", err)
	}
	s, err := scanSale(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) Update(ctx context.Context, s *entity.Sale) error {
	items, err := toJSON(s.Items)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		UPDATE sales SET customer = $2, items = $3, total = $4, date = $5, active = $6, updated_at = $7
		WHERE id = $1`,
		s.ID, s.Customer, items, s.Total, s.Date, s.Active, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sale: %w", err)
	}
	return nil
}

// List ventas más recientes primero; From/To inclusivos.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	where := sq.And{}
	if f.From != nil {
		where = append(where, sq.GtOrEq{"date": *f.From})
	}
	if f.To != nil {
		where = append(where, sq.LtOrEq{"date": *f.To})
	}
	if f.UserID != "" {
		where = append(where, sq.Eq{"user_id": f.UserID})
	}
	rows, total, err := selectPage(ctx, r.q, "sales", saleColumns, where, "date DESC, id ASC", f.Page)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	list := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM sales WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var items []byte
	if err := row.Scan(&s.ID, &s.UserID, &s.Customer, &items, &s.Total, &s.Date, &s.Active, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return nil, fmt.Errorf("decode items: %w", err)
	}
	return &s, nil
}
