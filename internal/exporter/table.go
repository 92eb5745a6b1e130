package exporter

import (
	"fmt"
	"log/slog"
	"strconv"

	apperrors "mpicli/internal/errors"
	"mpicli/internal/services"
)

// TableExporter writes period-delta tables to files.
type TableExporter struct {
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewTableExporter creates a new delta table exporter
func NewTableExporter(logger *slog.Logger) *TableExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableExporter{
		csvWriter: NewCSVWriter(logger),
		logger:    logger,
	}
}

// Export writes the report to path in the given format.
func (e *TableExporter) Export(report *services.TableReport, format Format, path string) error {
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
		return apperrors.NewExportError(fmt.Sprintf("export delta table as %s", format), err)
	}

	e.logger.Info("Exported delta table",
		slog.String("format", string(format)),
		slog.String("path", path),
		slog.Int("row_count", len(report.Rows)))
	return nil
}

func (e *TableExporter) headers() []string {
	return []string{
		"Code", "Name", "Size",
		"Current", "Month ago %", "Start of year %", "Year ago %",
	}
}

func (e *TableExporter) exportCSV(report *services.TableReport, path string) error {
	records := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		records = append(records, []string{
			strconv.Itoa(row.Code),
			row.Name,
			row.Size,
			formatFloat(row.Current),
			formatFloat(row.MonthAgo),
			formatFloat(row.StartYear),
			formatFloat(row.YearAgo),
		})
	}
	return e.csvWriter.WriteSimpleCSV(path, e.headers(), records)
}

func (e *TableExporter) exportXLSX(report *services.TableReport, path string) error {
	rows := make([][]interface{}, 0, len(report.Rows)+1)

	header := make([]interface{}, 0, 7)
	for _, h := range e.headers() {
		header = append(header, h)
	}
	rows = append(rows, header)

	for _, row := range report.Rows {
		rows = append(rows, []interface{}{
			row.Code,
			row.Name,
			row.Size,
			row.Current,
			row.MonthAgo,
			row.StartYear,
			row.YearAgo,
		})
	}
	return saveWorkbook("Price table", rows, path)
}
