package facility

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository reads the facility configuration hierarchy.
type Repository interface {
	ListFacilities(ctx context.Context) ([]Facility, error)
	// ListGroups returns groups ordered by sort_order. An empty facilityID lists all.
	ListGroups(ctx context.Context, facilityID string) ([]ResourceGroup, error)
	// ListResources returns resources with their sub-resources attached,
	// ordered by sort_order. An empty facilityID lists all.
	ListResources(ctx context.Context, facilityID string) ([]Resource, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) ListFacilities(ctx context.Context) ([]Facility, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "name", "address", "sort_order", "created_at").
		From("public.facilities").
		OrderBy("sort_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list facilities query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list facilities failed: %w", err)
	}
	defer rows.Close()

	var result []Facility
	for rows.Next() {
		var f Facility
		if err := rows.Scan(&f.ID, &f.Name, &f.Address, &f.SortOrder, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan facility failed: %w", err)
		}
		result = append(result, f)
	}
	return result, rows.Err()
}

func (r *pgxRepository) ListGroups(ctx context.Context, facilityID string) ([]ResourceGroup, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("id", "facility_id", "name", "icon", "sort_order").
		From("public.resource_groups").
		OrderBy("sort_order ASC", "name ASC")
	if facilityID != "" {
		query = query.Where(squirrel.Eq{"facility_id": facilityID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list resource groups query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list resource groups failed: %w", err)
	}
	defer rows.Close()

	var result []ResourceGroup
	for rows.Next() {
		var g ResourceGroup
		if err := rows.Scan(&g.ID, &g.FacilityID, &g.Name, &g.Icon, &g.SortOrder); err != nil {
			return nil, fmt.Errorf("scan resource group failed: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

func (r *pgxRepository) ListResources(ctx context.Context, facilityID string) ([]Resource, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"r.id", "r.group_id", "r.name", "r.color", "r.booking_mode", "r.splittable", "r.sort_order",
	).
		From("public.resources r").
		Join("public.resource_groups g ON r.group_id = g.id").
		OrderBy("g.sort_order ASC", "r.sort_order ASC", "r.name ASC")
	if facilityID != "" {
		query = query.Where(squirrel.Eq{"g.facility_id": facilityID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list resources query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list resources failed: %w", err)
	}
	defer rows.Close()

	var result []Resource
	position := map[string]int{}
	for rows.Next() {
		var res Resource
		if err := rows.Scan(
			&res.ID, &res.GroupID, &res.Name, &res.Color, &res.BookingMode, &res.Splittable, &res.SortOrder,
		); err != nil {
			return nil, fmt.Errorf("scan resource failed: %w", err)
		}
		position[res.ID] = len(result)
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resources failed: %w", err)
	}
	if len(result) == 0 {
		return result, nil
	}

	ids := make([]string, len(result))
	for i, res := range result {
		ids[i] = res.ID
	}

	subSQL, subArgs, err := psql.Select("id", "resource_id", "name", "color").
		From("public.sub_resources").
		Where(squirrel.Eq{"resource_id": ids}).
		OrderBy("sort_order ASC", "name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list sub-resources query failed: %w", err)
	}

	subRows, err := r.pool.Query(ctx, subSQL, subArgs...)
	if err != nil {
		return nil, fmt.Errorf("list sub-resources failed: %w", err)
	}
	defer subRows.Close()

	for subRows.Next() {
		var sub SubResource
		var parentID string
		if err := subRows.Scan(&sub.ID, &parentID, &sub.Name, &sub.Color); err != nil {
			return nil, fmt.Errorf("scan sub-resource failed: %w", err)
		}
		if i, ok := position[parentID]; ok {
			result[i].SubResources = append(result[i].SubResources, sub)
		}
	}
	return result, subRows.Err()
}
