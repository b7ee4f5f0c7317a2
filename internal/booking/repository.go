package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ValidateFunc inspects the bookings already stored for the requested dates
// and returns an error to abort the write.
type ValidateFunc func(existing []Booking) error

type Repository interface {
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	// ListByDates returns all non-rejected bookings on the given dates.
	ListByDates(ctx context.Context, dates []string) ([]Booking, error)

	// CreateGuarded inserts rows in one transaction after serializing on the
	// lock keys and passing the current bookings of dates to validate.
	CreateGuarded(ctx context.Context, lockKeys []string, dates []string, validate ValidateFunc, rows []*Booking) error

	// UpdateStatus moves a pending booking and the rows generated from it to status.
	// It returns ErrInvalidTransition when no pending row matched.
	UpdateStatus(ctx context.Context, id string, status Status) error
	// UpdateSeriesStatus sets status on every pending row of the series.
	UpdateSeriesStatus(ctx context.Context, seriesID string, status Status) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteSeries(ctx context.Context, seriesID string) (int64, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.resource_id", "to_char(b.date, 'YYYY-MM-DD')",
	"to_char(b.start_time, 'HH24:MI')", "to_char(b.end_time, 'HH24:MI')",
	"b.title", "b.booking_type", "b.user_id", "coalesce(b.team_id::text, '')", "b.status",
	"coalesce(b.series_id::text, '')", "b.parent_booking", "coalesce(b.origin_id::text, '')",
	"b.created_at", "b.updated_at",
}

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	dest := []any{
		&b.ID, &b.ResourceID, &b.Date, &b.StartTime, &b.EndTime,
		&b.Title, &b.BookingType, &b.UserID, &b.TeamID, &b.Status,
		&b.SeriesID, &b.ParentBooking, &b.OriginID, &b.CreatedAt, &b.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(bookingColumns, "count(*) OVER() as total_count")...).
		From("public.bookings b").
		Where(squirrel.Eq{"b.parent_booking": false})

	if filter.ResourceID != "" {
		query = query.Where(squirrel.Eq{"b.resource_id": filter.ResourceID})
	}
	if filter.SeriesID != "" {
		query = query.Where(squirrel.Eq{"b.series_id": filter.SeriesID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.DateFrom != "" {
		query = query.Where(squirrel.GtOrEq{"b.date": filter.DateFrom})
	}
	if filter.DateTo != "" {
		query = query.Where(squirrel.LtOrEq{"b.date": filter.DateTo})
	}

	orderDir := "ASC"
	if filter.SortOrder == "DESC" {
		orderDir = "DESC"
	}
	query = query.OrderBy("b.date "+orderDir, "b.start_time "+orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, total, rows.Err()
}

func (r *pgxRepository) ListByDates(ctx context.Context, dates []string) ([]Booking, error) {
	return listByDates(ctx, r.pool, dates)
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func listByDates(ctx context.Context, q querier, dates []string) ([]Booking, error) {
	if len(dates) == 0 {
		return nil, nil
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Where(squirrel.Eq{"b.date": dates}).
		Where(squirrel.NotEq{"b.status": StatusRejected}).
		OrderBy("b.date", "b.start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings by date query failed: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings by date failed: %w", err)
	}
	defer rows.Close()

	var result []Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

func (r *pgxRepository) CreateGuarded(ctx context.Context, lockKeys []string, dates []string, validate ValidateFunc, rows []*Booking) error {
	if len(rows) == 0 {
		return nil
	}

	// Sorted lock order keeps concurrent writers from deadlocking.
	keys := append([]string(nil), lockKeys...)
	sort.Strings(keys)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	insert := psql.Insert("public.bookings").
		Columns(
			"id", "resource_id", "date", "start_time", "end_time", "title", "booking_type",
			"user_id", "team_id", "status", "series_id", "parent_booking", "origin_id",
		).
		Suffix("RETURNING created_at, updated_at")
	for _, b := range rows {
		insert = insert.Values(
			b.ID, b.ResourceID, b.Date, b.StartTime, b.EndTime, b.Title, b.BookingType,
			b.UserID, nullable(b.TeamID), b.Status, nullable(b.SeriesID), b.ParentBooking, nullable(b.OriginID),
		)
	}
	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build create bookings query failed: %w", err)
	}

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, key := range keys {
			if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
				return fmt.Errorf("acquire booking lock failed: %w", err)
			}
		}

		existing, err := listByDates(ctx, tx, dates)
		if err != nil {
			return err
		}
		if err := validate(existing); err != nil {
			return err
		}

		result, err := tx.Query(ctx, query, args...)
		if err != nil {
			return mapWriteError(err)
		}
		defer result.Close()

		for i := 0; result.Next(); i++ {
			if err := result.Scan(&rows[i].CreatedAt, &rows[i].UpdatedAt); err != nil {
				return fmt.Errorf("scan created booking failed: %w", err)
			}
		}
		if err := result.Err(); err != nil {
			return mapWriteError(err)
		}
		return nil
	})
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Or{squirrel.Eq{"id": id}, squirrel.Eq{"origin_id": id}}).
		Where(squirrel.Eq{"status": StatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	// Zero rows means the booking was decided concurrently or removed.
	if ct.RowsAffected() == 0 {
		return ErrInvalidTransition
	}
	return nil
}

func (r *pgxRepository) UpdateSeriesStatus(ctx context.Context, seriesID string, status Status) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"series_id": seriesID}).
		Where(squirrel.Eq{"status": StatusPending}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update series status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update series status failed: %w", err)
	}
	return ct.RowsAffected(), nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	// Generated part rows go with it via ON DELETE CASCADE on origin_id.
	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteSeries(ctx context.Context, seriesID string) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"series_id": seriesID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete series query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete series failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	return ct.RowsAffected(), nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation:
			return ErrResourceNotFound
		case pgerrcode.CheckViolation:
			return ErrInvalidTimeRange
		case pgerrcode.ExclusionViolation, pgerrcode.UniqueViolation:
			return ErrTimeConflict
		}
	}
	return fmt.Errorf("create bookings failed: %w", err)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
