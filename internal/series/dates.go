package series

import (
	"fmt"
	"time"

	"mpicli/pkg/contracts/domain"
)

// DefaultLookbackDays is how far a window reaches back when the caller names
// an end date but no start date.
const DefaultLookbackDays = 7

// ParseDay parses strict YYYY-MM-DD date text into a UTC calendar day.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not YYYY-MM-DD", ErrMalformedDate, s)
	}
	return domain.Day(t), nil
}

// DatesBetween returns every day from from to to inclusive, strictly
// ascending, one-day steps. from after to yields an empty sequence.
func DatesBetween(from, to time.Time) []time.Time {
	from, to = domain.Day(from), domain.Day(to)
	if from.After(to) {
		return []time.Time{}
	}
	n := int(to.Sub(from).Hours()/24) + 1
	dates := make([]time.Time, 0, n)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

// DateRange builds the inclusive day sequence for a pair of optional
// YYYY-MM-DD strings. An empty to defaults to the current date; an empty
// from defaults to to minus the configured lookback. Malformed text fails
// with ErrMalformedDate. from after to yields an empty sequence, which
// downstream calculations reject as an insufficient period.
func (c *Calculator) DateRange(fromStr, toStr string) ([]time.Time, error) {
	to := domain.Day(c.now())
	if toStr != "" {
		parsed, err := ParseDay(toStr)
		if err != nil {
			return nil, fmt.Errorf("to date: %w", err)
		}
		to = parsed
	}

	from := to.AddDate(0, 0, -c.lookbackDays)
	if fromStr != "" {
		parsed, err := ParseDay(fromStr)
		if err != nil {
			return nil, fmt.Errorf("from date: %w", err)
		}
		from = parsed
	}

	return DatesBetween(from, to), nil
}

// AddMonths shifts t by the given number of calendar months, clamping to the
// last day of the target month when the source day does not exist there:
// Mar 31 minus one month is Feb 28 (29 in leap years), never Mar 2/3.
// time.Time.AddDate normalizes overflow instead of clamping, which would
// skew month-ago anchors taken from month ends.
func AddMonths(t time.Time, months int) time.Time {
	t = domain.Day(t)
	year, month, day := t.Date()

	total := int(month) - 1 + months
	year += total / 12
	total %= 12
	if total < 0 {
		total += 12
		year--
	}
	target := time.Month(total + 1)

	if last := lastDayOf(year, target); day > last {
		day = last
	}
	return time.Date(year, target, day, 0, 0, 0, 0, time.UTC)
}

// AddYears shifts t by whole calendar years with the same day clamping as
// AddMonths: Feb 29 minus one year is Feb 28.
func AddYears(t time.Time, years int) time.Time {
	return AddMonths(t, years*12)
}

func lastDayOf(year int, month time.Month) int {
	// Day zero of the following month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
