package calendar

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// ListOverlapping returns holidays whose range intersects [from, to].
	ListOverlapping(ctx context.Context, from, to string) ([]Holiday, error)
	CreateBatch(ctx context.Context, holidays []Holiday) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListOverlapping(ctx context.Context, from, to string) ([]Holiday, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "kind",
		"to_char(start_date, 'YYYY-MM-DD')", "to_char(end_date, 'YYYY-MM-DD')", "created_at",
	).
		From("public.holidays").
		Where(squirrel.LtOrEq{"start_date": to}).
		Where(squirrel.GtOrEq{"end_date": from}).
		OrderBy("start_date ASC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list holidays query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list holidays failed: %w", err)
	}
	defer rows.Close()

	var result []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.ID, &h.Name, &h.Kind, &h.StartDate, &h.EndDate, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan holiday failed: %w", err)
		}
		result = append(result, h)
	}
	return result, rows.Err()
}

func (r *pgxRepository) CreateBatch(ctx context.Context, holidays []Holiday) error {
	if len(holidays) == 0 {
		return nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert := psql.Insert("public.holidays").Columns("name", "kind", "start_date", "end_date")
	for _, h := range holidays {
		insert = insert.Values(h.Name, h.Kind, h.StartDate, h.EndDate)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build create holidays query failed: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("create holidays failed: %w", err)
		}
		return nil
	})
}
