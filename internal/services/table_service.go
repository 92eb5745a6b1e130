package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "mpicli/internal/errors"
	"mpicli/internal/series"
	"mpicli/pkg/contracts/domain"
)

// TableRequest selects the categories and denomination of a delta table.
// An empty category list selects every chartable category. Unlike charts,
// any valid category may be requested explicitly: exchange-rate deltas are
// meaningful even though the category is never plotted.
type TableRequest struct {
	Categories []int `json:"categories,omitempty" validate:"omitempty,min=1,dive,min=1,max=10"`
	Currency   int   `json:"currency,omitempty" validate:"omitempty,min=1,max=3"`
}

// TableRow is one category's delta row: the current quote plus percentage
// changes against the three look-back anchors.
type TableRow struct {
	Code int    `json:"code"`
	Name string `json:"name"`
	Size string `json:"size,omitempty"`
	series.Deltas
}

// TableReport is a point-in-time delta table as of Date.
type TableReport struct {
	ID          string     `json:"id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Date        string     `json:"date"`
	Currency    string     `json:"currency"`
	Rows        []TableRow `json:"rows"`
}

// TableService builds period-delta tables from the calculation engine.
type TableService struct {
	calc     *series.Calculator
	logger   *slog.Logger
	validate *validator.Validate
}

// NewTableService creates a table service over the given calculator.
func NewTableService(calc *series.Calculator, logger *slog.Logger) *TableService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableService{
		calc:     calc,
		logger:   logger,
		validate: newValidator(),
	}
}

// BuildTable computes one delta row per selected category. Categories with
// no anchor history yet are skipped with a warning; a zero reference value
// is a hard failure, as silently dropping it would hide corrupt data. A
// table with no rows at all is an error.
func (s *TableService) BuildTable(ctx context.Context, req TableRequest) (*TableReport, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	currency, err := resolveCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	cats, err := resolveTableCategories(req.Categories)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	asOf := s.calc.Today().Format(domain.DateFormat)
	s.logger.InfoContext(ctx, "building delta table",
		"run_id", runID,
		"categories", len(cats),
		"currency", currency.Code(),
		"date", asOf,
	)

	rows := make([]TableRow, 0, len(cats))
	for _, cat := range cats {
		deltas, err := s.calc.Deltas(ctx, cat, currency)
		if err != nil {
			if errors.Is(err, series.ErrMissingBaseline) {
				s.logger.WarnContext(ctx, "skipping category without anchor history",
					"run_id", runID,
					"category", cat.Name(),
					"error", err,
				)
				continue
			}
			return nil, fmt.Errorf("deltas for %s: %w", cat.Name(), err)
		}
		rows = append(rows, TableRow{
			Code:   int(cat),
			Name:   cat.Name(),
			Size:   cat.SizeLabel(),
			Deltas: *deltas,
		})
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no delta rows could be built from %d categories", len(cats))
	}

	report := &TableReport{
		ID:          runID,
		GeneratedAt: time.Now().UTC(),
		Date:        asOf,
		Currency:    currency.Code(),
		Rows:        rows,
	}
	s.logger.InfoContext(ctx, "delta table ready",
		"run_id", runID,
		"rows", len(rows),
	)
	return report, nil
}

func resolveTableCategories(codes []int) ([]domain.Category, error) {
	if len(codes) == 0 {
		return domain.ChartCategories(), nil
	}
	cats := make([]domain.Category, 0, len(codes))
	for _, code := range codes {
		cat, err := domain.ParseCategory(code)
		if err != nil {
			return nil, apperrors.NewAppValidationError(err.Error())
		}
		cats = append(cats, cat)
	}
	return cats, nil
}
