// Package services implements the report-building layer between the CLI
// tools and the calculation engine.
//
// ChartService turns a chart request into a labelled multi-series dataset:
// one indexed series per selected category, plus the weighted composite
// series when requested. TableService produces the period-delta table rows
// shown alongside the charts.
//
// # Service Layer Responsibilities
//
//	- Request validation (struct tags plus catalog checks)
//	- Fanning one date range out across category calculations
//	- Skipping categories that have no usable data, with a logged warning
//	- Tagging every run with an ID carried in logs and report output
//	- Error transformation into the application error taxonomy
//
// Services take their collaborators through constructors and log through
// *slog.Logger; a nil logger falls back to slog.Default.
package services
