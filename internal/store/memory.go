package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	apperrors "mpicli/internal/errors"
	"mpicli/pkg/contracts/domain"
)

// MemoryStore keeps price records in per-category slices sorted by date.
// It mirrors SQLiteStore's lookup semantics and is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[domain.Category][]domain.PriceRecord
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[domain.Category][]domain.PriceRecord)}
}

// SaveRecords upserts records, replacing any stored record on the same
// (category, day).
func (m *MemoryStore) SaveRecords(_ context.Context, records []domain.PriceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, record := range records {
		if !record.Category.Valid() {
			return apperrors.NewAppValidationError(
				fmt.Sprintf("record has unknown category code %d", int(record.Category)))
		}
		record.Date = domain.Day(record.Date)
		list := m.records[record.Category]
		i := m.searchLocked(list, record.Date)
		switch {
		case i < len(list) && list[i].Date.Equal(record.Date):
			list[i] = record
		default:
			list = append(list, domain.PriceRecord{})
			copy(list[i+1:], list[i:])
			list[i] = record
		}
		m.records[record.Category] = list
	}
	return nil
}

// searchLocked returns the first index whose date is at or after day.
func (m *MemoryStore) searchLocked(list []domain.PriceRecord, day time.Time) int {
	return sort.Search(len(list), func(i int) bool { return !list[i].Date.Before(day) })
}

// RecordOn returns the record dated exactly day, or nil.
func (m *MemoryStore) RecordOn(_ context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	day = domain.Day(day)
	list := m.records[cat]
	i := m.searchLocked(list, day)
	if i < len(list) && list[i].Date.Equal(day) {
		record := list[i]
		return &record, nil
	}
	return nil, nil
}

// LastOnOrBefore returns the most recent record dated at or before day, or nil.
func (m *MemoryStore) LastOnOrBefore(_ context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	day = domain.Day(day)
	list := m.records[cat]
	i := m.searchLocked(list, day)
	if i < len(list) && list[i].Date.Equal(day) {
		record := list[i]
		return &record, nil
	}
	if i == 0 {
		return nil, nil
	}
	record := list[i-1]
	return &record, nil
}

// FirstOnOrAfter returns the earliest record dated at or after day, or nil.
func (m *MemoryStore) FirstOnOrAfter(_ context.Context, cat domain.Category, day time.Time) (*domain.PriceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	day = domain.Day(day)
	list := m.records[cat]
	i := m.searchLocked(list, day)
	if i == len(list) {
		return nil, nil
	}
	record := list[i]
	return &record, nil
}

// RecordsBetween returns all records dated within [from, to] inclusive,
// ascending by date.
func (m *MemoryStore) RecordsBetween(_ context.Context, cat domain.Category, from, to time.Time) ([]domain.PriceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	from, to = domain.Day(from), domain.Day(to)
	list := m.records[cat]
	lo := m.searchLocked(list, from)
	hi := m.searchLocked(list, to.AddDate(0, 0, 1))

	if lo >= hi {
		return nil, nil
	}
	out := make([]domain.PriceRecord, hi-lo)
	copy(out, list[lo:hi])
	return out, nil
}
