package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	apperrors "mpicli/internal/errors"
	"mpicli/internal/series"
	"mpicli/pkg/contracts/domain"
)

// ChartRequest selects the window, categories and denomination of a chart
// build. Zero values select the defaults: a week back from today, every
// chartable category, hryvnia.
type ChartRequest struct {
	From       string          `json:"from,omitempty" validate:"omitempty,dateonly"`
	To         string          `json:"to,omitempty" validate:"omitempty,dateonly"`
	Categories []int           `json:"categories,omitempty" validate:"omitempty,min=1,dive,min=1,max=10"`
	Currency   int             `json:"currency,omitempty" validate:"omitempty,min=1,max=3"`
	Composite  bool            `json:"composite,omitempty"`
	Weights    map[int]float64 `json:"weights,omitempty"`
}

// ChartSeries is one plotted line. Code 0 marks the weighted composite
// computed from the specification rather than read from a stored category.
type ChartSeries struct {
	Code   int       `json:"code"`
	Title  string    `json:"title"`
	Values []float64 `json:"values"`
}

// ChartReport is a fully assembled chart dataset: date labels plus series
// aligned 1:1 with them.
type ChartReport struct {
	ID          string        `json:"id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Currency    string        `json:"currency"`
	From        string        `json:"from"`
	To          string        `json:"to"`
	Labels      []string      `json:"labels"`
	Series      []ChartSeries `json:"series"`
}

// WeightedCompositeTitle names the on-the-fly composite series in reports.
const WeightedCompositeTitle = "Weighted composite"

// ChartService builds chart reports from the calculation engine.
type ChartService struct {
	calc     *series.Calculator
	logger   *slog.Logger
	validate *validator.Validate
}

// NewChartService creates a chart service over the given calculator.
func NewChartService(calc *series.Calculator, logger *slog.Logger) *ChartService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartService{
		calc:     calc,
		logger:   logger,
		validate: newValidator(),
	}
}

// BuildCharts resolves the request's date range once and computes every
// selected series over it, one goroutine per category. Categories with no
// baseline yet are skipped with a warning; a report with no series at all
// is an error.
func (s *ChartService) BuildCharts(ctx context.Context, req ChartRequest) (*ChartReport, error) {
	if err := validateStruct(s.validate, req); err != nil {
		return nil, err
	}
	currency, err := resolveCurrency(req.Currency)
	if err != nil {
		return nil, err
	}
	cats, err := resolveChartCategories(req.Categories)
	if err != nil {
		return nil, err
	}
	var spec domain.Specification
	if req.Composite {
		if spec, err = resolveSpecification(req.Weights); err != nil {
			return nil, err
		}
	}

	dates, err := s.calc.DateRange(req.From, req.To)
	if err != nil {
		return nil, fmt.Errorf("build date range: %w", err)
	}
	if len(dates) < 2 {
		return nil, fmt.Errorf("range %q to %q: %w", req.From, req.To, series.ErrInsufficientPeriod)
	}

	runID := uuid.NewString()
	s.logger.InfoContext(ctx, "building chart report",
		"run_id", runID,
		"categories", len(cats),
		"currency", currency.Code(),
		"dates", len(dates),
		"composite", req.Composite,
	)

	// The engine is concurrency-safe over a read-only source, so every
	// series builds in parallel against the shared date range.
	slots := make([][]float64, len(cats))
	var compositeValues []float64

	g, gctx := errgroup.WithContext(ctx)
	for i, cat := range cats {
		i, cat := i, cat
		g.Go(func() error {
			values, err := s.calc.Normalize(gctx, cat, dates, currency)
			if err != nil {
				if errors.Is(err, series.ErrMissingBaseline) {
					s.logger.WarnContext(gctx, "skipping category without baseline",
						"run_id", runID,
						"category", cat.Name(),
					)
					return nil
				}
				return fmt.Errorf("normalize %s: %w", cat.Name(), err)
			}
			slots[i] = values
			return nil
		})
	}
	if req.Composite {
		g.Go(func() error {
			values, err := s.calc.Composite(gctx, dates, spec, currency)
			if err != nil {
				return fmt.Errorf("weighted composite: %w", err)
			}
			compositeValues = values
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	labels := make([]string, len(dates))
	for i, d := range dates {
		labels[i] = d.Format(domain.DateFormat)
	}

	report := &ChartReport{
		ID:          runID,
		GeneratedAt: time.Now().UTC(),
		Currency:    currency.Code(),
		From:        labels[0],
		To:          labels[len(labels)-1],
		Labels:      labels,
	}
	for i, cat := range cats {
		if slots[i] == nil {
			continue
		}
		report.Series = append(report.Series, ChartSeries{
			Code:   int(cat),
			Title:  cat.Title(),
			Values: slots[i],
		})
	}
	if compositeValues != nil {
		report.Series = append(report.Series, ChartSeries{
			Code:   0,
			Title:  WeightedCompositeTitle,
			Values: compositeValues,
		})
	}
	if len(report.Series) == 0 {
		return nil, fmt.Errorf("no series could be built from %d categories", len(cats))
	}

	s.logger.InfoContext(ctx, "chart report ready",
		"run_id", runID,
		"series", len(report.Series),
	)
	return report, nil
}

func resolveCurrency(code int) (domain.Currency, error) {
	if code == 0 {
		return domain.DefaultCurrency, nil
	}
	currency, err := domain.ParseCurrency(code)
	if err != nil {
		return 0, apperrors.NewAppValidationError(err.Error())
	}
	return currency, nil
}

func resolveChartCategories(codes []int) ([]domain.Category, error) {
	if len(codes) == 0 {
		return domain.ChartCategories(), nil
	}
	cats := make([]domain.Category, 0, len(codes))
	for _, code := range codes {
		cat, err := domain.ParseCategory(code)
		if err != nil {
			return nil, apperrors.NewAppValidationError(err.Error())
		}
		if !cat.Chartable() {
			return nil, apperrors.NewAppValidationError(
				fmt.Sprintf("category %s is not chartable", cat.Name()))
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

func resolveSpecification(weights map[int]float64) (domain.Specification, error) {
	if len(weights) == 0 {
		return domain.DefaultSpecification(), nil
	}
	spec := make(domain.Specification, len(weights))
	for code, weight := range weights {
		spec[domain.Category(code)] = weight
	}
	if err := spec.Validate(); err != nil {
		return nil, apperrors.NewAppValidationError(err.Error())
	}
	return spec, nil
}
