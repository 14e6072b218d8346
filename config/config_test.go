package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
http:
  address: ":8080"
database:
  host: localhost
  port: 5432
  user: estatehub
  password: secret
  name: estatehub
  ssl_mode: disable
redis:
  addr: localhost:6379
kafka:
  brokers: ["localhost:9092"]
  booking_events_topic: booking_events
  notifications_topic: notifications
  group_id: estatehub-worker
commission:
  rate_percent: 10
worker:
  archive_sweep_minutes: 60
  catalog_cache_ttl_seconds: 120
logging:
  level: debug
  format: console
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, 10.0, cfg.Commission.RatePercent)
	assert.Equal(t, 60, cfg.Worker.ArchiveSweepMinutes)
	assert.Equal(t, "host=localhost port=5432 user=estatehub password=secret dbname=estatehub sslmode=disable", cfg.Database.DSN())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_DefaultsWorkerIntervals(t *testing.T) {
	path := writeConfig(t, `
commission:
  rate_percent: 10
`)

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	// unset intervals fall back to sane values instead of a zero ticker
	assert.Equal(t, defaultArchiveSweepMinutes, cfg.Worker.ArchiveSweepMinutes)
	assert.Equal(t, defaultCatalogCacheTTLSecs, cfg.Worker.CatalogCacheTTLSecs)
}

func TestLoadConfig_BadRate(t *testing.T) {
	path := writeConfig(t, `
commission:
  rate_percent: 120
`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}
