package exporter

import (
	"fmt"
	"log/slog"

	apperrors "mpicli/internal/errors"
	"mpicli/internal/services"
)

// ChartExporter writes chart reports to files.
type ChartExporter struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewChartExporter creates a new chart report exporter
func NewChartExporter(logger *slog.Logger) *ChartExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChartExporter{
		csvWriter: NewCSVWriter(logger),
		logger:    logger,
	}
}

// Export writes the report to path in the given format.
func (e *ChartExporter) Export(report *services.ChartReport, format Format, path string) error {
	var err error
	switch format {
	case FormatCSV:
		err = e.exportCSV(report, path)
	case FormatJSON:
		err = writeJSONFile(report, path)
	case FormatXLSX:
		err = e.exportXLSX(report, path)
	default:
		err = fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return apperrors.NewExportError(fmt.Sprintf("export chart report as %s", format), err)
	}

	e.logger.Info("Exported chart report",
		slog.String("format", string(format)),
		slog.String("path", path),
		slog.Int("series_count", len(report.Series)))
	return nil
}

// headers returns the date column followed by one column per series.
func (e *ChartExporter) headers(report *services.ChartReport) []string {
	headers := make([]string, 0, len(report.Series)+1)
	headers = append(headers, "Date")
	for _, s := range report.Series {
		headers = append(headers, s.Title)
	}
	return headers
}

func (e *ChartExporter) exportCSV(report *services.ChartReport, path string) error {
	records := make([][]string, 0, len(report.Labels))
	for i, label := range report.Labels {
		row := make([]string, 0, len(report.Series)+1)
		row = append(row, label)
		for _, s := range report.Series {
			row = append(row, formatFloat(s.Values[i]))
		}
		records = append(records, row)
	}
	return e.csvWriter.WriteSimpleCSV(path, e.headers(report), records)
}

func (e *ChartExporter) exportXLSX(report *services.ChartReport, path string) error {
	rows := make([][]interface{}, 0, len(report.Labels)+1)

	header := make([]interface{}, 0, len(report.Series)+1)
	for _, h := range e.headers(report) {
		header = append(header, h)
	}
	rows = append(rows, header)

	for i, label := range report.Labels {
		row := make([]interface{}, 0, len(report.Series)+1)
		row = append(row, label)
		for _, s := range report.Series {
			row = append(row, s.Values[i])
		}
		rows = append(rows, row)
	}
	return saveWorkbook("Chart", rows, path)
}
