package main

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aurumpos/backend/internal/closing"
	"github.com/aurumpos/backend/pkg/config"
	"github.com/aurumpos/backend/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTillTestClient(t *testing.T, withSessionTable bool) *db.Client {
	t.Helper()

	cfg := config.DBConfig{Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	if withSessionTable {
		require.NoError(t, client.Exec(context.Background(),
			`CREATE TABLE IF NOT EXISTS till_sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  opened_at DATETIME NOT NULL,
  opened_by INTEGER NOT NULL,
  opening_float INTEGER NOT NULL DEFAULT 0,
  closed_at DATETIME,
  closed_by INTEGER,
  counted_amount INTEGER
);`).Error)
	}
	return client
}

func TestCurrentSessionRef(t *testing.T) {
	ctx := context.Background()

	t.Run("open session is referenced", func(t *testing.T) {
		client := newTillTestClient(t, true)
		svc, err := closing.NewService(closing.NewRepository(client.DB()))
		require.NoError(t, err)

		id, err := svc.OpenSession(ctx, 1, 50000)
		require.NoError(t, err)

		ref, err := currentSessionRef(ctx, svc)
		require.NoError(t, err)
		require.NotNil(t, ref)
		assert.Equal(t, id, *ref)
	})

	t.Run("no open session reads as absence", func(t *testing.T) {
		client := newTillTestClient(t, true)
		svc, err := closing.NewService(closing.NewRepository(client.DB()))
		require.NoError(t, err)

		ref, err := currentSessionRef(ctx, svc)
		require.NoError(t, err)
		assert.Nil(t, ref)
	})

	t.Run("storage failure is surfaced", func(t *testing.T) {
		client := newTillTestClient(t, false)
		svc, err := closing.NewService(closing.NewRepository(client.DB()))
		require.NoError(t, err)

		_, err = currentSessionRef(ctx, svc)
		require.Error(t, err)
	})
}

func TestPaymentMismatchWarning(t *testing.T) {
	warning, mismatch := paymentMismatchWarning(40000, 100000)
	require.True(t, mismatch)
	assert.Equal(t, "payments (40000) do not match total (100000)", warning)

	warning, mismatch = paymentMismatchWarning(130000, 100000)
	require.True(t, mismatch, "overpayment also warns")
	assert.Equal(t, "payments (130000) do not match total (100000)", warning)

	_, mismatch = paymentMismatchWarning(100000, 100000)
	assert.False(t, mismatch)
}
