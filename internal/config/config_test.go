package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every MPI_* variable a test could observe, restoring the
// original values on cleanup.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"MPI_CONFIG",
		"MPI_DATABASE_PATH",
		"MPI_LOGGING_LEVEL", "MPI_LOGGING_FORMAT", "MPI_LOGGING_OUTPUT",
		"MPI_LOGGING_FILE_PATH", "MPI_LOGGING_DEVELOPMENT",
		"MPI_CHART_LOOKBACK_DAYS", "MPI_CHART_DEFAULT_CURRENCY",
		"MPI_CHART_MISSING_POLICY",
		"MPI_REPORTS_DIR",
	}
	for _, v := range vars {
		if val, ok := os.LookupEnv(v); ok {
			t.Setenv(v, val) // registers restore of the original value
			os.Unsetenv(v)
		}
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mpi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/prices.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, 7, cfg.Chart.LookbackDays)
	assert.Equal(t, 1, cfg.Chart.DefaultCurrency)
	assert.Equal(t, "skip", cfg.Chart.MissingPolicy)
	assert.Equal(t, "reports", cfg.Reports.Dir)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
database:
  path: /var/lib/mpi/prices.db
chart:
  lookback_days: 30
`)
	t.Setenv("MPI_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/mpi/prices.db", cfg.Database.Path)
	assert.Equal(t, 30, cfg.Chart.LookbackDays)
	assert.Equal(t, "skip", cfg.Chart.MissingPolicy, "unset file fields keep defaults")
	assert.Equal(t, "reports", cfg.Reports.Dir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `
database:
  path: from-file.db
chart:
  lookback_days: 14
`)
	t.Setenv("MPI_CONFIG", path)
	t.Setenv("MPI_DATABASE_PATH", "from-env.db")
	t.Setenv("MPI_CHART_LOOKBACK_DAYS", "30")
	t.Setenv("MPI_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Database.Path)
	assert.Equal(t, 30, cfg.Chart.LookbackDays)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, "database: [not a mapping")
	t.Setenv("MPI_CONFIG", path)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestLoadRejectsMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MPI_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "database path",
		},
		{
			name:    "empty reports dir",
			mutate:  func(c *Config) { c.Reports.Dir = "" },
			wantErr: "reports directory",
		},
		{
			name:    "zero lookback",
			mutate:  func(c *Config) { c.Chart.LookbackDays = 0 },
			wantErr: "lookback days",
		},
		{
			name:    "unknown missing policy",
			mutate:  func(c *Config) { c.Chart.MissingPolicy = "ignore" },
			wantErr: "missing policy",
		},
		{
			name:    "currency code out of range",
			mutate:  func(c *Config) { c.Chart.DefaultCurrency = 4 },
			wantErr: "default currency",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "logging level",
		},
		{
			name:   "fail policy accepted",
			mutate: func(c *Config) { c.Chart.MissingPolicy = "fail" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateNormalizesLogging(t *testing.T) {
	cfg := Default()
	cfg.Logging.Format = "xml"
	cfg.Logging.Output = "syslog"

	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)

	cfg = Default()
	cfg.Logging.Output = "file"
	cfg.Logging.FilePath = ""

	require.NoError(t, cfg.validate())
	assert.Equal(t, "logs/app.log", cfg.Logging.FilePath)
}
