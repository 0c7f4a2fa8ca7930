package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	if !strings.Contains(body, "auth:") {
		body = "auth:\n  secret: test-secret\n" + body
	}

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("applies defaults and propagates lock timeout", func(t *testing.T) {
		path := writeConfig(t, `
api:
  port: "9090"
database:
  driver: postgres
  lock_timeout: 2s
  postgres:
    host: db
`)

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.API.Port)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "db", cfg.Database.Postgres.Host)
		assert.Equal(t, "5432", cfg.Database.Postgres.Port)
		assert.Equal(t, 2*time.Second, cfg.Database.Postgres.LockTimeout)
		assert.Equal(t, 2*time.Second, cfg.Database.MySQL.LockTimeout)
		assert.Equal(t, "ledger.events", cfg.RabbitMQ.Queue)
		assert.Equal(t, 500, cfg.Reconcile.BatchSize)
		assert.Equal(t, 500*time.Millisecond, cfg.RabbitMQ.RetryDelay)
		assert.Equal(t, 30*time.Second, cfg.RabbitMQ.MaxRetryDelay)
		assert.Equal(t, time.Second, cfg.Metrics.SlowRequestThreshold)
	})

	t.Run("driver specific lock timeout is kept", func(t *testing.T) {
		path := writeConfig(t, `
database:
  lock_timeout: 2s
  mysql:
    lock_timeout: 7s
`)

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, 7*time.Second, cfg.Database.MySQL.LockTimeout)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Setenv("LEDGER_DATABASE_MYSQL_HOST", "mysql.internal")

		path := writeConfig(t, `
database:
  mysql:
    host: localhost
`)

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "mysql.internal", cfg.Database.MySQL.Host)
	})

	t.Run("rejects unknown driver", func(t *testing.T) {
		path := writeConfig(t, `
database:
  driver: oracle
`)

		_, err := LoadFile(path)
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("rejects empty auth secret", func(t *testing.T) {
		path := writeConfig(t, `
auth:
  secret: ""
`)

		_, err := LoadFile(path)
		assert.ErrorIs(t, err, ErrEmptyAuthSecret)
	})

	t.Run("auth secret from environment", func(t *testing.T) {
		t.Setenv("LEDGER_AUTH_SECRET", "from-env")

		path := writeConfig(t, `
auth:
  secret: ""
`)

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "from-env", cfg.Auth.Secret)
	})

	t.Run("rejects non positive intervals", func(t *testing.T) {
		cases := map[string]string{
			"reconcile.interval":             "reconcile:\n  interval: 0s\n",
			"metrics.collect_interval":       "metrics:\n  collect_interval: 0s\n",
			"metrics.slow_request_threshold": "metrics:\n  slow_request_threshold: -1s\n",
		}

		for key, body := range cases {
			_, err := LoadFile(writeConfig(t, body))
			assert.ErrorContains(t, err, key)
		}
	})

	t.Run("interval from environment is validated", func(t *testing.T) {
		t.Setenv("LEDGER_RECONCILE_INTERVAL", "0")

		_, err := LoadFile(writeConfig(t, "api:\n  port: \"8080\"\n"))
		assert.ErrorContains(t, err, "reconcile.interval")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
	})
}
