package series

import (
	"log/slog"
	"time"

	"mpicli/pkg/contracts/domain"
)

// MissingPolicy controls how Composite treats a specified category that has
// no usable records anywhere in or before the window.
type MissingPolicy int

const (
	// SkipMissing drops the category from both the numerator and the
	// denominator and carries on. This mirrors the long-observed behaviour
	// of the published index; note that it biases the composite when
	// sparsity differs across categories.
	SkipMissing MissingPolicy = iota

	// FailOnMissing aborts the composite with ErrMissingBaseline instead.
	FailOnMissing
)

func (p MissingPolicy) String() string {
	switch p {
	case SkipMissing:
		return "skip-missing"
	case FailOnMissing:
		return "fail-on-missing"
	default:
		return "unknown"
	}
}

// CalculatorConfig carries the tunables of a Calculator. The zero value of
// each field selects the default.
type CalculatorConfig struct {
	// LookbackDays is the window span used when a range request names an
	// end date but no start date. Defaults to DefaultLookbackDays.
	LookbackDays int

	// Missing selects the composite policy for categories without records.
	Missing MissingPolicy

	// Now supplies the current time for today-anchored calculations.
	// Defaults to time.Now; tests pin it.
	Now func() time.Time
}

// Calculator computes indexed, composite and delta series from a record
// source. It holds no mutable state between calls and is safe for concurrent
// use whenever the source supports concurrent reads.
type Calculator struct {
	source       RecordSource
	logger       *slog.Logger
	lookbackDays int
	missing      MissingPolicy
	now          func() time.Time
}

// NewCalculator creates a calculator over the given record source. A nil
// logger falls back to slog.Default; a nil config selects all defaults.
func NewCalculator(source RecordSource, logger *slog.Logger, config *CalculatorConfig) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	if config == nil {
		config = &CalculatorConfig{}
	}

	lookback := config.LookbackDays
	if lookback <= 0 {
		lookback = DefaultLookbackDays
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &Calculator{
		source:       source,
		logger:       logger,
		lookbackDays: lookback,
		missing:      config.Missing,
		now:          now,
	}
}

// Today reports the calculator's current day canonicalized to UTC midnight.
// Delta anchors and default date ranges are derived from it.
func (c *Calculator) Today() time.Time {
	return domain.Day(c.now())
}
