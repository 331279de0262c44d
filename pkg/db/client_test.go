package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/aurumpos/backend/pkg/config"
	"github.com/aurumpos/backend/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T) *db.Client {
	t.Helper()

	cfg := config.DBConfig{Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewRequiresPath(t *testing.T) {
	_, err := db.New(context.Background(), config.DBConfig{}, nil)
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	client := newTestClient(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestWithTxCommit(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Exec(ctx, "CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)").Error)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Exec("INSERT INTO things (name) VALUES ('kept')").Error
	})
	require.NoError(t, err)

	var count int64
	require.NoError(t, client.Raw(ctx, "SELECT COUNT(*) FROM things").Scan(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWithTxRollbackOnError(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Exec(ctx, "CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)").Error)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Exec("INSERT INTO things (name) VALUES ('discarded')").Error; err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	require.EqualError(t, err, "boom")

	var count int64
	require.NoError(t, client.Raw(ctx, "SELECT COUNT(*) FROM things").Scan(&count).Error)
	assert.Zero(t, count, "failed transaction must leave nothing behind")
}

func TestIsUniqueViolation(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Exec(ctx, "CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT UNIQUE)").Error)
	require.NoError(t, client.Exec(ctx, "INSERT INTO things (name) VALUES ('dup')").Error)

	err := client.Exec(ctx, "INSERT INTO things (name) VALUES ('dup')").Error
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "things.name"))
	assert.False(t, db.IsUniqueViolation(err, "things.other"))
	assert.False(t, db.IsUniqueViolation(nil, "things.name"))
}

func TestIsMissingColumn(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.Exec(ctx, "CREATE TABLE things (id INTEGER PRIMARY KEY)").Error)

	var v int64
	err := client.Raw(ctx, "SELECT stock FROM things").Scan(&v).Error
	require.Error(t, err)
	assert.True(t, db.IsMissingColumn(err, "stock"))
	assert.False(t, db.IsMissingColumn(err, "name"))
	assert.False(t, db.IsMissingColumn(nil, "stock"))
}
