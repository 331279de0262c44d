package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.App.Env)
	assert.True(t, cfg.App.IsDev())
	assert.False(t, cfg.App.IsProd())
	assert.True(t, cfg.App.AutoMigrate)

	assert.Equal(t, "data.db", cfg.DB.Path)
	assert.Equal(t, 1, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5*time.Second, cfg.DB.BusyTimeout)

	assert.Equal(t, 65536, cfg.Password.ArgonMemoryKB)
	assert.Equal(t, "AURUM", cfg.Shop.Name)
}

func TestDSN(t *testing.T) {
	plain := DBConfig{Path: "data.db", BusyTimeout: 5 * time.Second}
	assert.Equal(t, "data.db?_fk=1&_busy_timeout=5000", plain.DSN())

	noTimeout := DBConfig{Path: "data.db"}
	assert.Equal(t, "data.db?_fk=1", noTimeout.DSN())

	// URI paths that already carry options keep a single query string.
	uri := DBConfig{Path: "file:test?mode=memory&cache=shared"}
	assert.Equal(t, "file:test?mode=memory&cache=shared&_fk=1", uri.DSN())
}
