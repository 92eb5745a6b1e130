package series

import "errors"

// Sentinel errors for the calculation failure modes callers branch on.
// Returned errors wrap these with category and anchor context; match with
// errors.Is.
var (
	// ErrInsufficientPeriod signals a date range shorter than two days.
	// Not fatal: it means "nothing to compute", and chart-level callers
	// typically translate it into an empty result.
	ErrInsufficientPeriod = errors.New("period spans fewer than two dates")

	// ErrMissingBaseline signals that no record exists at or before the
	// reference point a calculation needs to anchor on.
	ErrMissingBaseline = errors.New("no record at or before reference point")

	// ErrDivisionByZero signals a zero denominator or reference value where
	// scaling is required. Surfaced explicitly so callers never see
	// infinities or NaNs.
	ErrDivisionByZero = errors.New("zero reference value")

	// ErrMalformedDate signals caller-supplied date text that does not parse
	// as YYYY-MM-DD.
	ErrMalformedDate = errors.New("malformed date")
)
