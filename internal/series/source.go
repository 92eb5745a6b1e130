package series

import (
	"context"
	"time"

	"mpicli/pkg/contracts/domain"
)

// RecordSource is the read-only lookup contract the engine computes against.
// Ingestion guarantees at most one record per (category, day) before the
// engine ever sees data, so implementations never need to deduplicate.
//
// A (nil, nil) return from the point lookups means "no such record" — absence
// drives the documented fallback chains and is not an error. A non-nil error
// means the lookup itself failed.
type RecordSource interface {
	// RecordOn returns the record dated exactly day, or nil.
	RecordOn(ctx context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error)

	// LastOnOrBefore returns the most recent record dated at or before day,
	// or nil.
	LastOnOrBefore(ctx context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error)

	// FirstOnOrAfter returns the earliest record dated at or after day,
	// or nil.
	FirstOnOrAfter(ctx context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error)

	// RecordsBetween returns all records dated within [from, to] inclusive,
	// ascending by date.
	RecordsBetween(ctx context.Context, cat domain.Category, from, to time.Time) ([]domain.PriceRecord, error)
}
