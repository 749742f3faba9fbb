package repository

import (
	"context"

	"github.com/rkaranja/facility-registry/internal/domain"
)

// FacilityRepository reads the canonical facility registry.
type FacilityRepository interface {
	// List returns every canonical facility row in store order.
	List(ctx context.Context) ([]domain.FacilityRow, error)
	// DistinctTypes returns the distinct non-null facility_type values.
	DistinctTypes(ctx context.Context) ([]string, error)
}

// StagingRepository manages the upload staging table.
type StagingRepository interface {
	// ExistingCodes returns which of the given codes are already staged.
	ExistingCodes(ctx context.Context, codes []string) ([]string, error)
	// ListByCounty returns every staged row ordered by county ascending.
	ListByCounty(ctx context.Context) ([]domain.FacilityRow, error)
	// InsertBatch writes every record of the batch in file order inside a
	// single transaction. Any failure rolls the whole batch back.
	InsertBatch(ctx context.Context, batch domain.Batch) error
}
