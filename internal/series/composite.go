package series

import (
	"context"
	"fmt"
	"sort"
	"time"

	"mpicli/pkg/contracts/domain"
)

// categoryPool holds one category's window records, keyed and ordered by
// day, ready for per-date fallback resolution.
type categoryPool struct {
	category domain.Category
	weight   float64
	days     []time.Time // ascending
	values   map[time.Time]float64
}

func newCategoryPool(cat domain.Category, weight float64, records []domain.PriceRecord, currency domain.Currency) categoryPool {
	pool := categoryPool{
		category: cat,
		weight:   weight,
		days:     make([]time.Time, 0, len(records)),
		values:   make(map[time.Time]float64, len(records)),
	}
	for _, record := range records {
		day := domain.Day(record.Date)
		pool.days = append(pool.days, day)
		pool.values[day] = record.ValueIn(currency)
	}
	return pool
}

// first returns the value of the earliest pooled record.
func (p categoryPool) first() float64 {
	return p.values[p.days[0]]
}

// valueOn resolves day inside the pool: exact match first, then the latest
// earlier record, then the earliest later one. A non-empty pool always
// resolves; ok is false only for an empty pool.
func (p categoryPool) valueOn(day time.Time) (float64, bool) {
	i := sort.Search(len(p.days), func(j int) bool { return !p.days[j].Before(day) })
	switch {
	case i < len(p.days) && p.days[i].Equal(day):
		return p.values[p.days[i]], true
	case i > 0:
		return p.values[p.days[i-1]], true
	case i < len(p.days):
		return p.values[p.days[i]], true
	default:
		return 0, false
	}
}

// Composite combines the specified categories into one weighted index series
// over the given dates.
//
// Each category's pool is its records inside [dates[0], dates[last]]; a
// category with none substitutes its single most recent record at or before
// dates[last]. A category with no records at all is skipped or aborts the
// calculation, per the configured MissingPolicy.
//
// The denominator is Σ(first pooled record value × weight), computed once
// for the window — the index is anchored to the window start, not rebased
// per date. A zero denominator fails with ErrDivisionByZero. Per date the
// numerator resolves every category through the pool's fallback chain and
// the output is (Σ value×weight)×100/denominator, aligned 1:1 with dates.
func (c *Calculator) Composite(ctx context.Context, dates []time.Time, spec domain.Specification, currency domain.Currency) ([]float64, error) {
	if len(dates) < 2 {
		return nil, fmt.Errorf("composite over %d dates: %w", len(dates), ErrInsufficientPeriod)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("composite specification: %w", err)
	}

	first := domain.Day(dates[0])
	last := domain.Day(dates[len(dates)-1])

	// Pool records per category in ascending code order so the denominator
	// and numerator sums are reproducible run to run.
	pools := make([]categoryPool, 0, len(spec))
	denominator := 0.0
	for _, cat := range spec.Categories() {
		records, err := c.source.RecordsBetween(ctx, cat, first, last)
		if err != nil {
			return nil, fmt.Errorf("window records for %s: %w", cat.Name(), err)
		}
		if len(records) == 0 {
			substitute, err := c.source.LastOnOrBefore(ctx, cat, last)
			if err != nil {
				return nil, fmt.Errorf("substitute record for %s: %w", cat.Name(), err)
			}
			if substitute != nil {
				records = []domain.PriceRecord{*substitute}
			}
		}
		if len(records) == 0 {
			if c.missing == FailOnMissing {
				return nil, fmt.Errorf("composite category %s has no records: %w", cat.Name(), ErrMissingBaseline)
			}
			c.logger.WarnContext(ctx, "composite skipping category without records",
				"category", cat.Name(),
				"window_end", last.Format(domain.DateFormat),
			)
			continue
		}

		pool := newCategoryPool(cat, spec[cat], records, currency)
		denominator += pool.first() * pool.weight
		pools = append(pools, pool)
	}

	if denominator == 0 {
		return nil, fmt.Errorf("composite denominator over %d categories: %w", len(pools), ErrDivisionByZero)
	}

	c.logger.DebugContext(ctx, "building composite series",
		"categories", len(pools),
		"currency", currency.Code(),
		"dates", len(dates),
		"denominator", denominator,
		"missing_policy", c.missing.String(),
	)

	composite := make([]float64, len(dates))
	for i, date := range dates {
		day := domain.Day(date)
		sum := 0.0
		for _, pool := range pools {
			if v, ok := pool.valueOn(day); ok {
				sum += v * pool.weight
			}
		}
		composite[i] = sum * 100 / denominator
	}
	return composite, nil
}
