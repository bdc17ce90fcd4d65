package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{
		"APP_PORT", "APP_ENV", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS", "STORAGE_BASE_PATH",
		"REPORT_RETENTION", "REPORT_PURGE_INTERVAL", "DEFAULT_MAX_HOURS",
		"MAX_UPLOAD_MB", "LAYOUT_FILE", "BATCH_CONCURRENCY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.NotEmpty(t, cfg.App.CORSAllowedOrigins)
	assert.Equal(t, "./storage", cfg.Storage.BasePath)
	assert.Equal(t, 168*time.Hour, cfg.Reports.Retention)
	assert.Equal(t, time.Hour, cfg.Reports.PurgeInterval)
	assert.Equal(t, "8", cfg.Processing.DefaultMaxHours.String())
	assert.Equal(t, int64(10<<20), cfg.Processing.MaxUploadBytes())
	assert.Equal(t, 4, cfg.Processing.BatchConcurrency)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("DEFAULT_MAX_HOURS", "10.5")
	t.Setenv("REPORT_RETENTION", "24h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.CORSAllowedOrigins)
	assert.Equal(t, "10.5", cfg.Processing.DefaultMaxHours.String())
	assert.Equal(t, 24*time.Hour, cfg.Reports.Retention)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	// godotenv never overrides variables already present, even empty ones
	t.Setenv("BATCH_CONCURRENCY", "")
	require.NoError(t, os.Unsetenv("BATCH_CONCURRENCY"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BATCH_CONCURRENCY=2\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Processing.BatchConcurrency)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"APP_PORT", "http"},
		{"REPORT_RETENTION", "a week"},
		{"DEFAULT_MAX_HOURS", "25"},
		{"DEFAULT_MAX_HOURS", "eight"},
		{"MAX_UPLOAD_MB", "0"},
		{"LOG_LEVEL", "verbose"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Chdir(t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseLogLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestParseLayouts(t *testing.T) {
	data := []byte(`
[[layouts]]
name = "compact"
header_labels = ["emp no", "emp name"]
min_day_columns = 7
block_marker = "No:"
id_column = 1
name_column = 4
`)

	layouts, err := ParseLayouts(data)
	require.NoError(t, err)
	require.Len(t, layouts, 1)

	l := layouts[0]
	assert.Equal(t, "compact", l.Name)
	assert.Equal(t, []string{"emp no", "emp name"}, l.HeaderLabels)
	assert.Equal(t, 7, l.MinDayColumns)
	assert.Equal(t, "No:", l.BlockMarker)
	assert.Equal(t, 1, l.IDColumn)
	assert.Equal(t, 4, l.NameColumn)
}

func TestParseLayouts_Rejects(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `[[layouts]] name = `},
		{"missing marker", `
[[layouts]]
name = "x"
min_day_columns = 5
id_column = 1
name_column = 2
`},
		{"duplicate", `
[[layouts]]
name = "x"
min_day_columns = 5
block_marker = "ID:"
id_column = 1
name_column = 2

[[layouts]]
name = "x"
min_day_columns = 5
block_marker = "ID:"
id_column = 1
name_column = 2
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLayouts([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadLayouts_EmptyPath(t *testing.T) {
	layouts, err := LoadLayouts("")
	require.NoError(t, err)
	assert.Nil(t, layouts)
}
