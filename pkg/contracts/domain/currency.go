package domain

import "fmt"

// Currency selects which per-currency average a calculation reads. The
// numeric codes are part of the storage and export formats.
type Currency int

const (
	CurrencyUAH Currency = 1
	CurrencyUSD Currency = 2
	CurrencyEUR Currency = 3
)

// DefaultCurrency is used when a request does not name one.
const DefaultCurrency = CurrencyUAH

// Valid reports whether the currency code is known.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUAH, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Title returns the display title, e.g. "Hryvna".
func (c Currency) Title() string {
	switch c {
	case CurrencyUAH:
		return "Hryvna"
	case CurrencyUSD:
		return "Dollar"
	case CurrencyEUR:
		return "Euro"
	}
	return ""
}

// Code returns the ISO-style short code, e.g. "UAH".
func (c Currency) Code() string {
	switch c {
	case CurrencyUAH:
		return "UAH"
	case CurrencyUSD:
		return "USD"
	case CurrencyEUR:
		return "EUR"
	}
	return ""
}

func (c Currency) String() string {
	if c.Valid() {
		return c.Code()
	}
	return fmt.Sprintf("Currency(%d)", int(c))
}

// Currencies returns the supported currencies in ascending code order.
func Currencies() []Currency {
	return []Currency{CurrencyUAH, CurrencyUSD, CurrencyEUR}
}

// ParseCurrency converts a numeric code to a Currency, rejecting codes that
// are not registered.
func ParseCurrency(code int) (Currency, error) {
	c := Currency(code)
	if !c.Valid() {
		return 0, fmt.Errorf("unknown currency code %d", code)
	}
	return c, nil
}
