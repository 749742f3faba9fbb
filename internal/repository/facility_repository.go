package repository

import (
	"context"
	"fmt"

	"github.com/rkaranja/facility-registry/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// facilityRepository implements FacilityRepository over the canonical table.
type facilityRepository struct {
	pool *pgxpool.Pool
}

// NewFacilityRepository wires a repository backed by pgxpool.
func NewFacilityRepository(pool *pgxpool.Pool) FacilityRepository {
	return &facilityRepository{pool: pool}
}

func (r *facilityRepository) List(ctx context.Context) ([]domain.FacilityRow, error) {
	rows, err := r.pool.Query(ctx, `SELECT * FROM facilities`)
	if err != nil {
		return nil, fmt.Errorf("failed to list facilities: %w", err)
	}
	defer rows.Close()

	return collectRows(rows, "facilities")
}

func (r *facilityRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT DISTINCT facility_type FROM facilities WHERE facility_type IS NOT NULL`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list facility types: %w", err)
	}
	defer rows.Close()

	types := []string{}
	for rows.Next() {
		var facilityType string
		if scanErr := rows.Scan(&facilityType); scanErr != nil {
			return nil, fmt.Errorf("failed to scan facility type: %w", scanErr)
		}
		types = append(types, facilityType)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate facility types: %w", rowsErr)
	}

	return types, nil
}

// collectRows materializes a result set as column-keyed rows. The facility
// tables carry an open column set, so rows are read positionally against the
// field descriptions instead of a fixed struct.
func collectRows(rows pgx.Rows, table string) ([]domain.FacilityRow, error) {
	fields := rows.FieldDescriptions()

	out := []domain.FacilityRow{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s row: %w", table, err)
		}

		row := make(domain.FacilityRow, len(fields))
		for i, field := range fields {
			row[field.Name] = values[i]
		}
		out = append(out, row)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate %s rows: %w", table, rowsErr)
	}

	return out, nil
}
