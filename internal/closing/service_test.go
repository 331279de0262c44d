package closing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aurumpos/backend/pkg/config"
	"github.com/aurumpos/backend/pkg/db"
	"github.com/aurumpos/backend/pkg/enums"
	pkgerrors "github.com/aurumpos/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClosingTestDB(t *testing.T) *db.Client {
	t.Helper()

	cfg := config.DBConfig{Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	statements := []string{
		`CREATE TABLE IF NOT EXISTS sales (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  timestamp DATETIME NOT NULL,
  operator_id INTEGER NOT NULL,
  tier TEXT NOT NULL,
  till_session_id INTEGER,
  total INTEGER NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS payments (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  sale_id INTEGER NOT NULL,
  method TEXT NOT NULL,
  amount INTEGER NOT NULL
);`,
		`CREATE TABLE IF NOT EXISTS till_sessions (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  opened_at DATETIME NOT NULL,
  opened_by INTEGER NOT NULL,
  opening_float INTEGER NOT NULL DEFAULT 0,
  closed_at DATETIME,
  closed_by INTEGER,
  counted_amount INTEGER
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, client.Exec(context.Background(), stmt).Error)
	}
	return client
}

func buildClosingService(t *testing.T, client *db.Client) Service {
	t.Helper()
	svc, err := NewService(NewRepository(client.DB()))
	require.NoError(t, err)
	return svc
}

func insertSale(t *testing.T, client *db.Client, ts time.Time, total int64, payments map[enums.PaymentMethod]int64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, client.Exec(ctx,
		"INSERT INTO sales (timestamp, operator_id, tier, total) VALUES (?, 1, 'RETAIL', ?)", ts, total).Error)

	var saleID int64
	require.NoError(t, client.Raw(ctx, "SELECT id FROM sales ORDER BY id DESC LIMIT 1").Scan(&saleID).Error)
	for method, amount := range payments {
		require.NoError(t, client.Exec(ctx,
			"INSERT INTO payments (sale_id, method, amount) VALUES (?, ?, ?)", saleID, method.String(), amount).Error)
	}
}

func TestSummarizeDay(t *testing.T) {
	client := setupClosingTestDB(t)
	svc := buildClosingService(t, client)
	ctx := context.Background()

	day := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	insertSale(t, client, day.Add(10*time.Hour), 10000, map[enums.PaymentMethod]int64{
		enums.PaymentMethodCash: 10000,
	})
	insertSale(t, client, day.Add(15*time.Hour), 20000, map[enums.PaymentMethod]int64{
		enums.PaymentMethodCard: 20000,
	})
	// Outside the window: evening before and midnight of the next day.
	insertSale(t, client, day.Add(-time.Hour), 5000, map[enums.PaymentMethod]int64{
		enums.PaymentMethodCash: 5000,
	})
	insertSale(t, client, day.AddDate(0, 0, 1), 7000, nil)

	summary, err := svc.SummarizeDay(ctx, day.Add(13*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, int64(2), summary.Count)
	assert.Equal(t, int64(30000), summary.Total)
	assert.True(t, summary.Date.Equal(day))

	require.Len(t, summary.Breakdown, 2)
	assert.Equal(t, enums.PaymentMethodCard, summary.Breakdown[0].Method, "largest method first")
	assert.Equal(t, int64(20000), summary.Breakdown[0].Amount)
	assert.Equal(t, enums.PaymentMethodCash, summary.Breakdown[1].Method)
	assert.Equal(t, int64(10000), summary.Breakdown[1].Amount)
}

func TestSummarizeEmptyDay(t *testing.T) {
	client := setupClosingTestDB(t)
	svc := buildClosingService(t, client)

	summary, err := svc.SummarizeDay(context.Background(), time.Date(2025, 9, 15, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, summary.Count)
	assert.Zero(t, summary.Total)
	assert.Empty(t, summary.Breakdown)
}

func TestSessionLifecycle(t *testing.T) {
	client := setupClosingTestDB(t)
	svc := buildClosingService(t, client)
	ctx := context.Background()

	_, err := svc.CurrentSession(ctx)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	id, err := svc.OpenSession(ctx, 1, 50000)
	require.NoError(t, err)
	require.NotZero(t, id)

	current, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, current.ID)
	assert.Equal(t, int64(50000), current.OpeningFloat)
	assert.False(t, current.Closed)

	// Only one session may be open.
	_, err = svc.OpenSession(ctx, 1, 0)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	require.NoError(t, svc.CloseSession(ctx, id, 1, 480000))

	_, err = svc.CurrentSession(ctx)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	// Closing twice is a conflict; closing a missing session is not found.
	err = svc.CloseSession(ctx, id, 1, 480000)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())

	err = svc.CloseSession(ctx, 999, 1, 0)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestOpenSessionValidation(t *testing.T) {
	client := setupClosingTestDB(t)
	svc := buildClosingService(t, client)
	ctx := context.Background()

	_, err := svc.OpenSession(ctx, 0, 1000)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.OpenSession(ctx, 1, -1)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
