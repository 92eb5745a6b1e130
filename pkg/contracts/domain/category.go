package domain

import "fmt"

// Category identifies a price-sheet category. The numeric codes are part of
// the storage and export formats and must not be renumbered.
type Category int

const (
	// CategoryCompositeIndex is the synthetic weighted index across products.
	CategoryCompositeIndex Category = 1
	// CategorySheet is hot/cold rolled sheet.
	CategorySheet Category = 2
	// CategoryBeam is structural beam.
	CategoryBeam Category = 3
	// CategoryChannel is channel bar.
	CategoryChannel Category = 4
	// CategoryCorner is corner (angle) bar.
	CategoryCorner Category = 5
	// CategoryProfilePipe is rectangular profile pipe.
	CategoryProfilePipe Category = 6
	// CategoryRoundTube is round tube.
	CategoryRoundTube Category = 7
	// CategoryFinalIndicator is the indicator computed by the final method.
	CategoryFinalIndicator Category = 8
	// CategoryExchangeRates holds daily currency exchange rates.
	CategoryExchangeRates Category = 9
	// CategoryShareSpec holds specification share snapshots.
	CategoryShareSpec Category = 10
)

// categoryInfo carries the display attributes registered for one category.
type categoryInfo struct {
	name      string
	sizeLabel string
	weight    float64
	chartable bool
}

var categoryRegistry = map[Category]categoryInfo{
	CategoryCompositeIndex: {name: "Composite index", chartable: true},
	CategorySheet:          {name: "Sheet g/p", sizeLabel: "from 5 to 14 mm", weight: 60, chartable: true},
	CategoryBeam:           {name: "Beam", sizeLabel: "№20", weight: 10, chartable: true},
	CategoryChannel:        {name: "Channel", sizeLabel: "№18", weight: 10, chartable: true},
	CategoryCorner:         {name: "Corner", sizeLabel: "63х5", weight: 10, chartable: true},
	CategoryProfilePipe:    {name: "Profile pipe", sizeLabel: "100х4", weight: 5, chartable: true},
	CategoryRoundTube:      {name: "Round tube", sizeLabel: "114х4", weight: 5, chartable: true},
	CategoryFinalIndicator: {name: "Indicator by final method"},
	CategoryExchangeRates:  {name: "Exchange rates"},
	CategoryShareSpec:      {name: "Specification shares"},
}

// Valid reports whether c is a registered category code.
func (c Category) Valid() bool {
	_, ok := categoryRegistry[c]
	return ok
}

// Name returns the display name, e.g. "Sheet g/p".
func (c Category) Name() string {
	return categoryRegistry[c].name
}

// SizeLabel returns the reference size the category is quoted for,
// e.g. "№20" for beam. Empty for categories without a size.
func (c Category) SizeLabel() string {
	return categoryRegistry[c].sizeLabel
}

// Title returns the display name combined with the size label,
// e.g. "Beam №20". Categories without a size label return the bare name.
func (c Category) Title() string {
	info := categoryRegistry[c]
	if info.sizeLabel == "" {
		return info.name
	}
	return info.name + " " + info.sizeLabel
}

// DefaultWeight returns the category's share in the default specification,
// in percent. Zero for categories outside the default specification.
func (c Category) DefaultWeight() float64 {
	return categoryRegistry[c].weight
}

// Chartable reports whether the category appears in chart selections.
// Service categories (final indicator, exchange rates, specification
// shares) are kept out of charts.
func (c Category) Chartable() bool {
	return categoryRegistry[c].chartable
}

// IsIndex reports whether the category carries a single index value per
// record instead of per-currency averages.
func (c Category) IsIndex() bool {
	return c == CategoryCompositeIndex
}

func (c Category) String() string {
	if info, ok := categoryRegistry[c]; ok {
		return info.name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// ChartCategories returns the chartable categories in ascending code order.
func ChartCategories() []Category {
	return []Category{
		CategoryCompositeIndex,
		CategorySheet,
		CategoryBeam,
		CategoryChannel,
		CategoryCorner,
		CategoryProfilePipe,
		CategoryRoundTube,
	}
}

// ProductCategories returns the physical product categories, the ones that
// participate in the default specification, in ascending code order.
func ProductCategories() []Category {
	return []Category{
		CategorySheet,
		CategoryBeam,
		CategoryChannel,
		CategoryCorner,
		CategoryProfilePipe,
		CategoryRoundTube,
	}
}

// AllCategories returns every registered category in ascending code order.
func AllCategories() []Category {
	return []Category{
		CategoryCompositeIndex,
		CategorySheet,
		CategoryBeam,
		CategoryChannel,
		CategoryCorner,
		CategoryProfilePipe,
		CategoryRoundTube,
		CategoryFinalIndicator,
		CategoryExchangeRates,
		CategoryShareSpec,
	}
}

// ParseCategory converts a numeric code to a Category, rejecting codes that
// are not registered.
func ParseCategory(code int) (Category, error) {
	c := Category(code)
	if !c.Valid() {
		return 0, fmt.Errorf("unknown category code %d", code)
	}
	return c, nil
}
