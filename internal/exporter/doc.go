// Package exporter writes chart and table reports to files.
//
// This package contains three main components:
//
// CSVWriter: Core CSV writing functionality with support for headers and
// UTF-8 BOM for Excel compatibility.
//
// ChartExporter: Writes chart reports (date labels plus one column per
// series) as CSV, JSON or XLSX.
//
// TableExporter: Writes period-delta tables (one row per category) in the
// same three formats.
//
// Example usage:
//
//	chartExporter := exporter.NewChartExporter(logger)
//
//	format, err := exporter.ParseFormat("xlsx")
//	if err != nil {
//		return err
//	}
//	err = chartExporter.Export(report, format, "reports/chart.xlsx")
package exporter
