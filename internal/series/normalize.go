package series

import (
	"context"
	"fmt"
	"time"

	"mpicli/pkg/contracts/domain"
)

// Normalize rebases one category's quotes over the given dates into indexed
// percentages of the window baseline.
//
// The baseline is the most recent record at or before dates[0]; without one
// the series cannot be anchored and ErrMissingBaseline is returned. Dates
// with no exact record reuse the baseline value — deliberately not the
// nearest neighbour, so gaps read as "unchanged since baseline". Each output
// value is step*100/baseline, aligned 1:1 with dates. A zero baseline cannot
// scale anything, so the raw step values pass through unscaled.
//
// Composite-index records carry a single value and ignore currency.
func (c *Calculator) Normalize(ctx context.Context, cat domain.Category, dates []time.Time, currency domain.Currency) ([]float64, error) {
	if len(dates) < 2 {
		return nil, fmt.Errorf("normalize %s over %d dates: %w", cat.Name(), len(dates), ErrInsufficientPeriod)
	}

	first := domain.Day(dates[0])
	last := domain.Day(dates[len(dates)-1])

	baselineRecord, err := c.source.LastOnOrBefore(ctx, cat, first)
	if err != nil {
		return nil, fmt.Errorf("baseline lookup for %s: %w", cat.Name(), err)
	}
	if baselineRecord == nil {
		return nil, fmt.Errorf("normalize %s at %s: %w",
			cat.Name(), first.Format(domain.DateFormat), ErrMissingBaseline)
	}
	baseline := baselineRecord.ValueIn(currency)

	pool, err := c.source.RecordsBetween(ctx, cat, first, last)
	if err != nil {
		return nil, fmt.Errorf("window records for %s: %w", cat.Name(), err)
	}
	valueOn := make(map[time.Time]float64, len(pool))
	for _, record := range pool {
		valueOn[domain.Day(record.Date)] = record.ValueIn(currency)
	}

	c.logger.DebugContext(ctx, "normalizing series",
		"category", cat.Name(),
		"currency", currency.Code(),
		"dates", len(dates),
		"records", len(pool),
		"baseline", baseline,
	)

	indexed := make([]float64, len(dates))
	for i, date := range dates {
		step := baseline
		if v, ok := valueOn[domain.Day(date)]; ok {
			step = v
		}
		if baseline == 0 {
			indexed[i] = step
		} else {
			indexed[i] = step * 100 / baseline
		}
	}
	return indexed, nil
}
