// Package series implements the price-index calculation engine for metal
// price sheets.
//
// Given a date range and a read-only record source, the engine rebases raw
// category quotes into comparable indexed percentages, combines several
// categories into a weighted composite index, and computes point-in-time
// percentage deltas for tabular display.
//
// # Core Components
//
//   - calculator.go: Calculator orchestrator, configuration and missing-data policies
//   - dates.go: date-range generation and clamped calendar arithmetic
//   - normalize.go: single-category rebasing against a window baseline
//   - composite.go: weighted multi-category composite with per-date fallback lookup
//   - deltas.go: current / month-ago / start-of-year / year-ago deltas
//   - source.go: the RecordSource contract the engine reads through
//   - errors.go: sentinel errors callers branch on
//
// # Calculation Model
//
// Normalize anchors a window on the most recent record at or before its first
// date and scales every step value to that baseline (value*100/baseline).
// Dates without an exact record reuse the baseline value.
//
// Composite pools each specified category's records over the window, derives
// a denominator from the first pooled record of every category weighted by
// the specification, and resolves each date through an
// exact / at-or-before / at-or-after fallback chain inside the pool.
// The denominator is computed once per window, never per date.
//
// # Usage Example
//
//	calc := series.NewCalculator(store, logger, nil)
//
//	dates, err := calc.DateRange("2024-01-01", "2024-03-01")
//	if err != nil {
//	    return err
//	}
//
//	indexed, err := calc.Normalize(ctx, domain.CategoryBeam, dates, domain.CurrencyUAH)
//	if errors.Is(err, series.ErrInsufficientPeriod) {
//	    return nil // nothing to chart
//	}
//
// The Calculator holds no mutable state between calls and is safe for
// concurrent use whenever its RecordSource supports concurrent reads.
package series
