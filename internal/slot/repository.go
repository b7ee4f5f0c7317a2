package slot

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, s *Slot) error
	List(ctx context.Context, filter Filter) ([]Slot, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, s *Slot) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.slots").
		Columns("resource_id", "day_of_week", "start_time", "end_time", "valid_from", "valid_until").
		Values(s.ResourceID, int(s.DayOfWeek), s.StartTime, s.EndTime, nullableDate(s.ValidFrom), nullableDate(s.ValidUntil)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create slot query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("create slot failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]Slot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "resource_id", "day_of_week",
		"to_char(start_time, 'HH24:MI')", "to_char(end_time, 'HH24:MI')",
		"coalesce(to_char(valid_from, 'YYYY-MM-DD'), '')", "coalesce(to_char(valid_until, 'YYYY-MM-DD'), '')",
		"created_at",
	).
		From("public.slots").
		OrderBy("resource_id", "day_of_week", "start_time")

	if filter.ResourceID != "" {
		query = query.Where(squirrel.Eq{"resource_id": filter.ResourceID})
	}
	if len(filter.ResourceIDs) > 0 {
		query = query.Where(squirrel.Eq{"resource_id": filter.ResourceIDs})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list slots failed: %w", err)
	}
	defer rows.Close()

	var result []Slot
	for rows.Next() {
		var s Slot
		var day int
		if err := rows.Scan(&s.ID, &s.ResourceID, &day, &s.StartTime, &s.EndTime, &s.ValidFrom, &s.ValidUntil, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan slot failed: %w", err)
		}
		s.DayOfWeek = time.Weekday(day)
		result = append(result, s)
	}
	return result, rows.Err()
}

func nullableDate(s string) any {
	if s == "" {
		return nil
	}
	return s
}
