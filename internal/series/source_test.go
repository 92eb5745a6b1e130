package series

import (
	"context"
	"time"

	"mpicli/pkg/contracts/domain"
)

// stubSource is an in-memory RecordSource for tests. Records are kept
// ascending per category; lookups are linear scans over test-sized data.
type stubSource struct {
	records map[domain.Category][]domain.PriceRecord
}

func newStubSource(records ...domain.PriceRecord) *stubSource {
	s := &stubSource{records: make(map[domain.Category][]domain.PriceRecord)}
	for _, r := range records {
		s.add(r)
	}
	return s
}

func (s *stubSource) add(record domain.PriceRecord) {
	record.Date = domain.Day(record.Date)
	list := s.records[record.Category]
	i := len(list)
	for i > 0 && list[i-1].Date.After(record.Date) {
		i--
	}
	list = append(list, domain.PriceRecord{})
	copy(list[i+1:], list[i:])
	list[i] = record
	s.records[record.Category] = list
}

func (s *stubSource) RecordOn(_ context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error) {
	day = domain.Day(day)
	for _, r := range s.records[cat] {
		if r.Date.Equal(day) {
			record := r
			return &record, nil
		}
	}
	return nil, nil
}

func (s *stubSource) LastOnOrBefore(_ context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error) {
	day = domain.Day(day)
	list := s.records[cat]
	for i := len(list) - 1; i >= 0; i-- {
		if !list[i].Date.After(day) {
			record := list[i]
			return &record, nil
		}
	}
	return nil, nil
}

func (s *stubSource) FirstOnOrAfter(_ context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error) {
	day = domain.Day(day)
	for _, r := range s.records[cat] {
		if !r.Date.Before(day) {
			record := r
			return &record, nil
		}
	}
	return nil, nil
}

func (s *stubSource) RecordsBetween(_ context.Context, cat domain.Category, from, to time.Time) ([]domain.PriceRecord, error) {
	from, to = domain.Day(from), domain.Day(to)
	var out []domain.PriceRecord
	for _, r := range s.records[cat] {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

// day builds the UTC calendar day for compact fixtures.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// uahRecord builds a product record quoted only in hryvnia.
func uahRecord(cat domain.Category, date time.Time, value float64) domain.PriceRecord {
	return domain.PriceRecord{Category: cat, Date: date, AvgUAH: value}
}

// indexRecord builds a composite-index record with its single value.
func indexRecord(date time.Time, value float64) domain.PriceRecord {
	return domain.PriceRecord{Category: domain.CategoryCompositeIndex, Date: date, IndexValue: value}
}

// fixedClock pins the calculator's today.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
