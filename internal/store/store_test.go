package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpicli/internal/series"
	"mpicli/pkg/contracts/domain"
)

// Both stores must satisfy the engine's lookup contract.
var (
	_ series.RecordSource = (*SQLiteStore)(nil)
	_ series.RecordSource = (*MemoryStore)(nil)
)

// recordStore is the common surface the contract suite runs against.
type recordStore interface {
	series.RecordSource
	SaveRecords(ctx context.Context, records []domain.PriceRecord) error
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func beamRecord(date time.Time, uah float64) domain.PriceRecord {
	return domain.PriceRecord{Category: domain.CategoryBeam, Date: date, AvgUAH: uah, AvgUSD: uah / 40, AvgEUR: uah / 44}
}

func openSQLite(t *testing.T) recordStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "prices.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func openMemory(t *testing.T) recordStore {
	t.Helper()
	return NewMemoryStore()
}

func TestStoreContract(t *testing.T) {
	stores := []struct {
		name string
		open func(t *testing.T) recordStore
	}{
		{name: "sqlite", open: openSQLite},
		{name: "memory", open: openMemory},
	}

	for _, impl := range stores {
		t.Run(impl.name, func(t *testing.T) {
			ctx := context.Background()
			beam := domain.CategoryBeam

			t.Run("point lookups", func(t *testing.T) {
				s := impl.open(t)
				require.NoError(t, s.SaveRecords(ctx, []domain.PriceRecord{
					beamRecord(day(2024, time.January, 2), 100),
					beamRecord(day(2024, time.January, 5), 110),
					beamRecord(day(2024, time.January, 9), 120),
				}))

				exact, err := s.RecordOn(ctx, beam, day(2024, time.January, 5))
				require.NoError(t, err)
				require.NotNil(t, exact)
				assert.Equal(t, 110.0, exact.AvgUAH)

				miss, err := s.RecordOn(ctx, beam, day(2024, time.January, 4))
				require.NoError(t, err)
				assert.Nil(t, miss)

				// An exact hit wins the at-or-before tie.
				before, err := s.LastOnOrBefore(ctx, beam, day(2024, time.January, 5))
				require.NoError(t, err)
				require.NotNil(t, before)
				assert.Equal(t, 110.0, before.AvgUAH)

				before, err = s.LastOnOrBefore(ctx, beam, day(2024, time.January, 8))
				require.NoError(t, err)
				require.NotNil(t, before)
				assert.Equal(t, 110.0, before.AvgUAH)

				none, err := s.LastOnOrBefore(ctx, beam, day(2024, time.January, 1))
				require.NoError(t, err)
				assert.Nil(t, none)

				after, err := s.FirstOnOrAfter(ctx, beam, day(2024, time.January, 5))
				require.NoError(t, err)
				require.NotNil(t, after)
				assert.Equal(t, 110.0, after.AvgUAH)

				after, err = s.FirstOnOrAfter(ctx, beam, day(2024, time.January, 6))
				require.NoError(t, err)
				require.NotNil(t, after)
				assert.Equal(t, 120.0, after.AvgUAH)

				none, err = s.FirstOnOrAfter(ctx, beam, day(2024, time.January, 10))
				require.NoError(t, err)
				assert.Nil(t, none)
			})

			t.Run("range query is inclusive and ascending", func(t *testing.T) {
				s := impl.open(t)
				require.NoError(t, s.SaveRecords(ctx, []domain.PriceRecord{
					beamRecord(day(2024, time.January, 9), 120),
					beamRecord(day(2024, time.January, 2), 100),
					beamRecord(day(2024, time.January, 5), 110),
				}))

				records, err := s.RecordsBetween(ctx, beam, day(2024, time.January, 2), day(2024, time.January, 9))
				require.NoError(t, err)
				require.Len(t, records, 3)
				assert.Equal(t, 100.0, records[0].AvgUAH)
				assert.Equal(t, 110.0, records[1].AvgUAH)
				assert.Equal(t, 120.0, records[2].AvgUAH)
				for i := 1; i < len(records); i++ {
					assert.True(t, records[i].Date.After(records[i-1].Date))
				}

				partial, err := s.RecordsBetween(ctx, beam, day(2024, time.January, 3), day(2024, time.January, 8))
				require.NoError(t, err)
				require.Len(t, partial, 1)
				assert.Equal(t, 110.0, partial[0].AvgUAH)

				empty, err := s.RecordsBetween(ctx, beam, day(2024, time.February, 1), day(2024, time.February, 28))
				require.NoError(t, err)
				assert.Empty(t, empty)
			})

			t.Run("upsert replaces the day's record", func(t *testing.T) {
				s := impl.open(t)
				date := day(2024, time.March, 1)
				require.NoError(t, s.SaveRecords(ctx, []domain.PriceRecord{beamRecord(date, 100)}))
				require.NoError(t, s.SaveRecords(ctx, []domain.PriceRecord{beamRecord(date, 105)}))

				got, err := s.RecordOn(ctx, beam, date)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, 105.0, got.AvgUAH)

				records, err := s.RecordsBetween(ctx, beam, date, date)
				require.NoError(t, err)
				assert.Len(t, records, 1)
			})

			t.Run("categories do not leak into each other", func(t *testing.T) {
				s := impl.open(t)
				date := day(2024, time.March, 1)
				require.NoError(t, s.SaveRecords(ctx, []domain.PriceRecord{
					beamRecord(date, 100),
					{Category: domain.CategoryCorner, Date: date, AvgUAH: 55},
				}))

				got, err := s.RecordOn(ctx, domain.CategoryCorner, date)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, 55.0, got.AvgUAH)

				records, err := s.RecordsBetween(ctx, domain.CategorySheet, date, date)
				require.NoError(t, err)
				assert.Empty(t, records)
			})

			t.Run("timestamps collapse to their calendar day", func(t *testing.T) {
				s := impl.open(t)
				noon := time.Date(2024, time.March, 1, 12, 30, 0, 0, time.UTC)
				require.NoError(t, s.SaveRecords(ctx, []domain.PriceRecord{beamRecord(noon, 100)}))

				got, err := s.RecordOn(ctx, beam, day(2024, time.March, 1))
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.True(t, got.Date.Equal(day(2024, time.March, 1)))
			})

			t.Run("unknown category is rejected", func(t *testing.T) {
				s := impl.open(t)
				err := s.SaveRecords(ctx, []domain.PriceRecord{
					{Category: domain.Category(99), Date: day(2024, time.March, 1), AvgUAH: 1},
				})
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown category code")
			})

			t.Run("index records round-trip their single value", func(t *testing.T) {
				s := impl.open(t)
				date := day(2024, time.March, 1)
				require.NoError(t, s.SaveRecords(ctx, []domain.PriceRecord{
					{Category: domain.CategoryCompositeIndex, Date: date, IndexValue: 104.8},
				}))

				got, err := s.RecordOn(ctx, domain.CategoryCompositeIndex, date)
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, 104.8, got.IndexValue)
				assert.Equal(t, 104.8, got.ValueIn(domain.CurrencyUSD))
			})
		})
	}
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prices.db")

	first, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	require.NoError(t, first.SaveRecords(ctx, []domain.PriceRecord{
		beamRecord(day(2024, time.January, 2), 100),
	}))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path, nil)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.RecordOn(ctx, domain.CategoryBeam, day(2024, time.January, 2))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 100.0, got.AvgUAH)
}

func TestSQLiteFeedsCalculator(t *testing.T) {
	// The store must slot straight under the engine.
	ctx := context.Background()
	s := openSQLite(t)
	require.NoError(t, s.SaveRecords(ctx, []domain.PriceRecord{
		beamRecord(day(2024, time.January, 1), 100),
		beamRecord(day(2024, time.January, 3), 110),
	}))

	calc := series.NewCalculator(s, nil, nil)
	dates := series.DatesBetween(day(2024, time.January, 1), day(2024, time.January, 3))

	indexed, err := calc.Normalize(ctx, domain.CategoryBeam, dates, domain.CurrencyUAH)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, indexed[0], 0.0001)
	assert.InDelta(t, 100.0, indexed[1], 0.0001)
	assert.InDelta(t, 110.0, indexed[2], 0.0001)
}
