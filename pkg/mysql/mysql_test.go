package mysql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "3306", User: "ledger", Password: "secret", Name: "credit"}

	t.Run("without lock timeout", func(t *testing.T) {
		assert.Equal(t, "ledger:secret@tcp(db:3306)/credit?charset=utf8mb4&parseTime=True&loc=UTC", DSN(cfg))
	})

	t.Run("lock timeout in whole seconds", func(t *testing.T) {
		cfg := cfg
		cfg.LockTimeout = 5 * time.Second
		assert.Contains(t, DSN(cfg), "&innodb_lock_wait_timeout=5")
	})

	t.Run("sub-second lock timeout rounds up to one", func(t *testing.T) {
		cfg := cfg
		cfg.LockTimeout = 200 * time.Millisecond
		assert.Contains(t, DSN(cfg), "&innodb_lock_wait_timeout=1")
	})
}
