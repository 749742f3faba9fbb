package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/rkaranja/facility-registry/internal/db"
	"github.com/rkaranja/facility-registry/internal/domain"

	"github.com/jackc/pgx/v5"
)

// stagingRepository implements StagingRepository over the uploaded_facilities
// table.
type stagingRepository struct {
	conn *db.Connection
}

// NewStagingRepository wires a repository backed by the shared connection.
func NewStagingRepository(conn *db.Connection) StagingRepository {
	return &stagingRepository{conn: conn}
}

func (r *stagingRepository) ExistingCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	rows, err := r.conn.Pool.Query(
		ctx,
		`SELECT DISTINCT code FROM uploaded_facilities WHERE code = ANY($1)`,
		codes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check staged codes: %w", err)
	}
	defer rows.Close()

	existing := []string{}
	for rows.Next() {
		var code string
		if scanErr := rows.Scan(&code); scanErr != nil {
			return nil, fmt.Errorf("failed to scan staged code: %w", scanErr)
		}
		existing = append(existing, code)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("failed to iterate staged codes: %w", rowsErr)
	}

	return existing, nil
}

func (r *stagingRepository) ListByCounty(ctx context.Context) ([]domain.FacilityRow, error) {
	rows, err := r.conn.Pool.Query(
		ctx,
		`SELECT * FROM uploaded_facilities ORDER BY county ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploaded facilities: %w", err)
	}
	defer rows.Close()

	return collectRows(rows, "uploaded_facilities")
}

// InsertBatch appends every record of the batch inside one transaction.
// Columns declared by the upload header but not yet present on the staging
// table are added first, so arbitrary extra columns pass through verbatim.
func (r *stagingRepository) InsertBatch(ctx context.Context, batch domain.Batch) error {
	if batch.Len() == 0 {
		return nil
	}

	return r.conn.WithTx(ctx, func(tx pgx.Tx) error {
		if err := ensureColumns(ctx, tx, batch.Columns); err != nil {
			return err
		}

		stmt := buildInsert(batch.Columns)
		for _, rec := range batch.Records {
			args := make([]any, len(batch.Columns))
			for i, column := range batch.Columns {
				args[i] = rec.Get(column)
			}
			if _, err := tx.Exec(ctx, stmt, args...); err != nil {
				return fmt.Errorf("failed to insert staged facility: %w", err)
			}
		}

		return nil
	})
}

func ensureColumns(ctx context.Context, tx pgx.Tx, columns []string) error {
	for _, column := range columns {
		stmt := fmt.Sprintf(
			`ALTER TABLE uploaded_facilities ADD COLUMN IF NOT EXISTS %s TEXT`,
			pgx.Identifier{column}.Sanitize(),
		)
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to add staging column %s: %w", column, err)
		}
	}
	return nil
}

func buildInsert(columns []string) string {
	idents := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	for i, column := range columns {
		idents[i] = pgx.Identifier{column}.Sanitize()
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf(
		`INSERT INTO uploaded_facilities (%s) VALUES (%s)`,
		strings.Join(idents, ", "),
		strings.Join(placeholders, ", "),
	)
}
