package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage_path: storage/roster.db
http_server:
  address: localhost:9090
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "storage/roster.db", cfg.StoragePath)
	assert.Equal(t, "crud_mahasiswa", cfg.StorageKey)
	assert.Equal(t, "localhost:9090", cfg.Addr)
	assert.Equal(t, 56, cfg.CohortPivot)
	assert.Equal(t, 2000, cfg.MinCohortYear)
	assert.Equal(t, 2025, cfg.MaxCohortYear)
	assert.Equal(t, 10, cfg.ImportErrorLimit)
	assert.True(t, cfg.SeedOnEmpty)
}

func TestLoad_RosterSection(t *testing.T) {
	path := writeConfig(t, `
env: prod
storage_path: /tmp/roster.db
roster:
  cohort_pivot: 60
  min_cohort_year: 1990
  max_cohort_year: 2030
  import_error_limit: 3
  seed_on_empty: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.CohortPivot)
	assert.Equal(t, 1990, cfg.MinCohortYear)
	assert.Equal(t, 2030, cfg.MaxCohortYear)
	assert.Equal(t, 3, cfg.ImportErrorLimit)
	assert.False(t, cfg.SeedOnEmpty)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
env: dev
storage_path: a.db
`)
	t.Setenv("STORAGE_PATH", "b.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "b.db", cfg.StoragePath)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("missing required field", func(t *testing.T) {
		_, err := Load(writeConfig(t, "env: dev\n"))
		assert.Error(t, err)
	})

	t.Run("inverted cohort range", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
env: dev
storage_path: a.db
roster:
  min_cohort_year: 2030
  max_cohort_year: 2000
`))
		assert.ErrorContains(t, err, "min_cohort_year")
	})
}
