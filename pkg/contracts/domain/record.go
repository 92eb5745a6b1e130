package domain

import (
	"time"
)

// DateFormat is the canonical day format used in storage, exports and CLI
// flags.
const DateFormat = "2006-01-02"

// PriceRecord is one day's averaged quote for a category. Product categories
// carry one average per currency; the composite index carries a single
// denominated-free value in IndexValue. At most one record exists per
// (category, day).
type PriceRecord struct {
	Category   Category  `json:"category" db:"category" validate:"required"`
	Date       time.Time `json:"date" db:"date"`
	AvgUAH     float64   `json:"avg_uah" db:"avg_uah"`
	AvgUSD     float64   `json:"avg_usd" db:"avg_usd"`
	AvgEUR     float64   `json:"avg_euro" db:"avg_euro"`
	IndexValue float64   `json:"index_value,omitempty" db:"index_value"`
}

// ValueIn returns the record's value in the requested currency. Composite
// index records have a single value regardless of currency.
func (r PriceRecord) ValueIn(currency Currency) float64 {
	if r.Category.IsIndex() {
		return r.IndexValue
	}
	switch currency {
	case CurrencyUSD:
		return r.AvgUSD
	case CurrencyEUR:
		return r.AvgEUR
	default:
		return r.AvgUAH
	}
}

// Day truncates t to its UTC calendar day. All record dates and range
// endpoints are compared at this granularity.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}
