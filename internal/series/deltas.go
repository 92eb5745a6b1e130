package series

import (
	"context"
	"fmt"
	"time"

	"mpicli/pkg/contracts/domain"
)

// Deltas summarises where a category's quote stands today against three
// look-back anchors. Current is the raw quote; the anchors are percentage
// changes of current against the anchor value.
type Deltas struct {
	Current   float64 `json:"current"`
	MonthAgo  float64 `json:"month_ago"`
	StartYear float64 `json:"start_year"`
	YearAgo   float64 `json:"year_ago"`
}

// Deltas computes the point-in-time delta row for one category.
//
// Anchors resolve as "most recent record at or before X": current ← today,
// month ago ← today minus one calendar month (clamped), year ago ← today
// minus one calendar year (clamped). The start-of-year anchor is the first
// record at or after January 1st of the current year, falling back to the
// most recent record before year end while the current year is still empty.
//
// An anchor with no record fails with ErrMissingBaseline; a zero anchor
// value fails with ErrDivisionByZero. Both name the anchor.
func (c *Calculator) Deltas(ctx context.Context, cat domain.Category, currency domain.Currency) (*Deltas, error) {
	today := domain.Day(c.now())

	current, err := c.anchorOnOrBefore(ctx, cat, currency, "current", today)
	if err != nil {
		return nil, err
	}

	monthAgo, err := c.anchorOnOrBefore(ctx, cat, currency, "month ago", AddMonths(today, -1))
	if err != nil {
		return nil, err
	}

	startYear, err := c.startYearAnchor(ctx, cat, currency, today.Year())
	if err != nil {
		return nil, err
	}

	yearAgo, err := c.anchorOnOrBefore(ctx, cat, currency, "year ago", AddYears(today, -1))
	if err != nil {
		return nil, err
	}

	deltas := &Deltas{Current: current}
	if deltas.MonthAgo, err = changeOver(cat, "month ago", current, monthAgo); err != nil {
		return nil, err
	}
	if deltas.StartYear, err = changeOver(cat, "start of year", current, startYear); err != nil {
		return nil, err
	}
	if deltas.YearAgo, err = changeOver(cat, "year ago", current, yearAgo); err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "computed period deltas",
		"category", cat.Name(),
		"currency", currency.Code(),
		"current", deltas.Current,
		"month_ago", deltas.MonthAgo,
		"start_year", deltas.StartYear,
		"year_ago", deltas.YearAgo,
	)
	return deltas, nil
}

func (c *Calculator) anchorOnOrBefore(ctx context.Context, cat domain.Category, currency domain.Currency, anchor string, day time.Time) (float64, error) {
	record, err := c.source.LastOnOrBefore(ctx, cat, day)
	if err != nil {
		return 0, fmt.Errorf("%s anchor lookup for %s: %w", anchor, cat.Name(), err)
	}
	if record == nil {
		return 0, fmt.Errorf("%s anchor for %s at %s: %w",
			anchor, cat.Name(), day.Format(domain.DateFormat), ErrMissingBaseline)
	}
	return record.ValueIn(currency), nil
}

// startYearAnchor finds the first record of the given year. Years with no
// records yet fall back to the most recent record at or before year end.
func (c *Calculator) startYearAnchor(ctx context.Context, cat domain.Category, currency domain.Currency, year int) (float64, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	record, err := c.source.FirstOnOrAfter(ctx, cat, yearStart)
	if err != nil {
		return 0, fmt.Errorf("start of year anchor lookup for %s: %w", cat.Name(), err)
	}
	// FirstOnOrAfter has no upper bound; a hit beyond year end would belong
	// to a later year and is treated as absent.
	if record != nil && domain.Day(record.Date).After(yearEnd) {
		record = nil
	}
	if record == nil {
		record, err = c.source.LastOnOrBefore(ctx, cat, yearEnd)
		if err != nil {
			return 0, fmt.Errorf("start of year fallback lookup for %s: %w", cat.Name(), err)
		}
	}
	if record == nil {
		return 0, fmt.Errorf("start of year anchor for %s in %d: %w", cat.Name(), year, ErrMissingBaseline)
	}
	return record.ValueIn(currency), nil
}

func changeOver(cat domain.Category, anchor string, current, reference float64) (float64, error) {
	if reference == 0 {
		return 0, fmt.Errorf("%s reference for %s: %w", anchor, cat.Name(), ErrDivisionByZero)
	}
	return (current - reference) / reference * 100, nil
}
