package eventtype

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	List(ctx context.Context) ([]EventType, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) List(ctx context.Context) ([]EventType, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "label", "icon", "allow_overlap", "sort_order").
		From("public.event_types").
		OrderBy("sort_order ASC", "label ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list event types query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list event types failed: %w", err)
	}
	defer rows.Close()

	var result []EventType
	for rows.Next() {
		var t EventType
		if err := rows.Scan(&t.ID, &t.Label, &t.Icon, &t.AllowOverlap, &t.SortOrder); err != nil {
			return nil, fmt.Errorf("scan event type failed: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
