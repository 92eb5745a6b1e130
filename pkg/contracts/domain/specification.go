package domain

import "fmt"

// Specification maps product categories to their weights in the composite
// calculation. Weights are free-scale: only their relative sizes matter, the
// default set happens to sum to 100.
type Specification map[Category]float64

// DefaultSpecification returns the standard market-basket weights.
func DefaultSpecification() Specification {
	spec := make(Specification, len(ProductCategories()))
	for _, cat := range ProductCategories() {
		spec[cat] = cat.DefaultWeight()
	}
	return spec
}

// Validate rejects specifications that the composite calculation cannot use:
// empty sets, non-product categories, and non-positive weights.
func (s Specification) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("specification is empty")
	}
	for cat, weight := range s {
		if !cat.Valid() || cat.IsIndex() || !cat.Chartable() {
			return fmt.Errorf("category %d cannot carry a specification weight", int(cat))
		}
		if weight <= 0 {
			return fmt.Errorf("weight for %s must be positive, got %v", cat.Name(), weight)
		}
	}
	return nil
}

// Categories returns the specification's categories in ascending code order.
func (s Specification) Categories() []Category {
	cats := make([]Category, 0, len(s))
	for _, cat := range ProductCategories() {
		if _, ok := s[cat]; ok {
			cats = append(cats, cat)
		}
	}
	return cats
}

// Entry is one row of a specification presented for display.
type Entry struct {
	Category Category `json:"code"`
	Title    string   `json:"title"`
	Weight   float64  `json:"value"`
}

// Entries returns display rows in ascending category code order.
func (s Specification) Entries() []Entry {
	cats := s.Categories()
	entries := make([]Entry, 0, len(cats))
	for _, cat := range cats {
		entries = append(entries, Entry{Category: cat, Title: cat.Name(), Weight: s[cat]})
	}
	return entries
}
