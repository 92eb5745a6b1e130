// Package config provides centralized configuration management for the
// price index tools. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration file (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern MPI_* for namespacing:
//
//	MPI_DATABASE_PATH=data/prices.db
//	MPI_LOGGING_LEVEL=debug
//	MPI_CHART_LOOKBACK_DAYS=30
//	MPI_REPORTS_DIR=reports
//
// MPI_CONFIG points at an explicit config file; otherwise mpi.yaml and
// configs/mpi.yaml are tried in that order.
//
// # Configuration File
//
// The YAML file mirrors the same structure:
//
//	database:
//	  path: data/prices.db
//	logging:
//	  level: info
//	  format: json
//	chart:
//	  lookback_days: 7
//	  default_currency: 1
//	  missing_policy: skip
//	reports:
//	  dir: reports
package config
