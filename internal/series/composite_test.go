package series

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mpicli/pkg/contracts/domain"
)

func TestComposite(t *testing.T) {
	beam := domain.CategoryBeam
	corner := domain.CategoryCorner

	tests := []struct {
		name    string
		records []domain.PriceRecord
		dates   []time.Time
		spec    domain.Specification
		want    []float64
		wantErr error
	}{
		{
			name: "weighted index anchored to window start",
			records: []domain.PriceRecord{
				uahRecord(beam, day(2024, time.January, 1), 50),
				uahRecord(beam, day(2024, time.January, 2), 60),
				uahRecord(corner, day(2024, time.January, 1), 25),
			},
			dates: DatesBetween(day(2024, time.January, 1), day(2024, time.January, 3)),
			spec:  domain.Specification{beam: 2, corner: 1},
			// Denominator 50*2+25*1 = 125. Jan 2 resolves corner back to
			// Jan 1, Jan 3 resolves beam back to Jan 2.
			want: []float64{100.0, 116.0, 116.0},
		},
		{
			name: "date before any pooled record borrows forward",
			records: []domain.PriceRecord{
				uahRecord(beam, day(2024, time.January, 1), 50),
				uahRecord(beam, day(2024, time.January, 2), 55),
				uahRecord(corner, day(2024, time.January, 3), 30),
			},
			dates: DatesBetween(day(2024, time.January, 1), day(2024, time.January, 3)),
			spec:  domain.Specification{beam: 2, corner: 1},
			// Denominator 50*2+30*1 = 130. Corner has nothing at or before
			// Jan 1/2, so its Jan 3 record fills in.
			want: []float64{100.0, 100.0 * 140 / 130, 100.0 * 140 / 130},
		},
		{
			name: "category absent from window substitutes its latest earlier record",
			records: []domain.PriceRecord{
				uahRecord(beam, day(2024, time.January, 10), 50),
				uahRecord(beam, day(2024, time.January, 11), 55),
				uahRecord(beam, day(2024, time.January, 12), 60),
				uahRecord(corner, day(2023, time.December, 20), 20),
			},
			dates: DatesBetween(day(2024, time.January, 10), day(2024, time.January, 12)),
			spec:  domain.Specification{beam: 2, corner: 1},
			// Corner's pool is the single December record: denominator
			// 50*2+20 = 120 and every date adds corner at 20.
			want: []float64{100.0, 100.0 * 130 / 120, 100.0 * 140 / 120},
		},
		{
			name: "zero denominator",
			records: []domain.PriceRecord{
				uahRecord(beam, day(2024, time.January, 1), 0),
				uahRecord(beam, day(2024, time.January, 2), 10),
			},
			dates:   DatesBetween(day(2024, time.January, 1), day(2024, time.January, 2)),
			spec:    domain.Specification{beam: 2},
			wantErr: ErrDivisionByZero,
		},
		{
			name: "single date is insufficient",
			records: []domain.PriceRecord{
				uahRecord(beam, day(2024, time.January, 1), 50),
			},
			dates:   DatesBetween(day(2024, time.January, 1), day(2024, time.January, 1)),
			spec:    domain.Specification{beam: 1},
			wantErr: ErrInsufficientPeriod,
		},
		{
			name:    "empty range is insufficient",
			dates:   []time.Time{},
			spec:    domain.Specification{beam: 1},
			wantErr: ErrInsufficientPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(newStubSource(tt.records...), nil, nil)

			got, err := calc.Composite(context.Background(), tt.dates, tt.spec, domain.CurrencyUAH)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, len(tt.dates))
			for i, want := range tt.want {
				assert.InDelta(t, want, got[i], 0.0001, "index %d", i)
			}
		})
	}
}

func TestCompositeMissingPolicy(t *testing.T) {
	beam := domain.CategoryBeam
	corner := domain.CategoryCorner
	records := []domain.PriceRecord{
		uahRecord(beam, day(2024, time.January, 1), 50),
		uahRecord(beam, day(2024, time.January, 2), 60),
		// Corner has no records at all.
	}
	dates := DatesBetween(day(2024, time.January, 1), day(2024, time.January, 2))
	spec := domain.Specification{beam: 2, corner: 1}

	t.Run("skip-missing drops the category entirely", func(t *testing.T) {
		calc := NewCalculator(newStubSource(records...), nil, nil)

		got, err := calc.Composite(context.Background(), dates, spec, domain.CurrencyUAH)
		require.NoError(t, err)
		// Denominator and numerator both reduce to beam alone.
		assert.InDelta(t, 100.0, got[0], 0.0001)
		assert.InDelta(t, 120.0, got[1], 0.0001)
	})

	t.Run("fail-on-missing aborts", func(t *testing.T) {
		calc := NewCalculator(newStubSource(records...), nil, &CalculatorConfig{Missing: FailOnMissing})

		_, err := calc.Composite(context.Background(), dates, spec, domain.CurrencyUAH)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingBaseline)
		assert.Contains(t, err.Error(), corner.Name())
	})
}

func TestCompositeInvalidSpecification(t *testing.T) {
	calc := NewCalculator(newStubSource(), nil, nil)
	dates := DatesBetween(day(2024, time.January, 1), day(2024, time.January, 2))

	tests := []struct {
		name string
		spec domain.Specification
	}{
		{name: "empty", spec: domain.Specification{}},
		{name: "negative weight", spec: domain.Specification{domain.CategoryBeam: -1}},
		{name: "non-product category", spec: domain.Specification{domain.CategoryExchangeRates: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := calc.Composite(context.Background(), dates, tt.spec, domain.CurrencyUAH)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "specification")
		})
	}
}

func TestCompositeSingleCategoryMatchesNormalize(t *testing.T) {
	// With weight 1 and a fully populated window the composite collapses to
	// the plain normalized series of that category.
	sheet := domain.CategorySheet
	source := newStubSource(
		uahRecord(sheet, day(2024, time.March, 1), 40000),
		uahRecord(sheet, day(2024, time.March, 2), 41000),
		uahRecord(sheet, day(2024, time.March, 3), 39500),
		uahRecord(sheet, day(2024, time.March, 4), 42000),
	)
	calc := NewCalculator(source, nil, nil)
	dates := DatesBetween(day(2024, time.March, 1), day(2024, time.March, 4))

	normalized, err := calc.Normalize(context.Background(), sheet, dates, domain.CurrencyUAH)
	require.NoError(t, err)

	composite, err := calc.Composite(context.Background(), dates, domain.Specification{sheet: 1}, domain.CurrencyUAH)
	require.NoError(t, err)

	require.Len(t, composite, len(normalized))
	for i := range normalized {
		assert.InDelta(t, normalized[i], composite[i], 1e-9, "index %d", i)
	}
}

func TestCompositeDefaultSpecification(t *testing.T) {
	// All six products quoted on both dates; every one moves +10%, so the
	// composite moves +10% regardless of the weights.
	var records []domain.PriceRecord
	base := map[domain.Category]float64{
		domain.CategorySheet:       40000,
		domain.CategoryBeam:        32000,
		domain.CategoryChannel:     31000,
		domain.CategoryCorner:      30000,
		domain.CategoryProfilePipe: 35000,
		domain.CategoryRoundTube:   36000,
	}
	for cat, value := range base {
		records = append(records,
			uahRecord(cat, day(2024, time.July, 1), value),
			uahRecord(cat, day(2024, time.July, 2), value*1.1),
		)
	}
	calc := NewCalculator(newStubSource(records...), nil, nil)
	dates := DatesBetween(day(2024, time.July, 1), day(2024, time.July, 2))

	got, err := calc.Composite(context.Background(), dates, domain.DefaultSpecification(), domain.CurrencyUAH)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got[0], 0.0001)
	assert.InDelta(t, 110.0, got[1], 0.0001)
}
