package users

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aurumpos/backend/pkg/config"
	"github.com/aurumpos/backend/pkg/db"
	"github.com/aurumpos/backend/pkg/enums"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *db.Client {
	t.Helper()

	cfg := config.DBConfig{Path: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Exec(context.Background(),
		`CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  username TEXT NOT NULL UNIQUE,
  credential TEXT NOT NULL,
  role TEXT NOT NULL,
  active BOOLEAN NOT NULL DEFAULT true
);`).Error)
	return client
}

func TestCreateAndFindUser(t *testing.T) {
	client := setupUsersTestDB(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{
		Username:   "ana",
		Credential: "$argon2id$stub",
		Role:       enums.RoleSeller,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	assert.True(t, created.Active, "new accounts start active")

	byName, err := repo.FindByUsername(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, enums.RoleSeller, byName.Role)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana", byID.Username)

	_, err = repo.FindByUsername(ctx, "ghost")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestCreateDuplicateUsername(t *testing.T) {
	client := setupUsersTestDB(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	_, err := repo.Create(ctx, CreateUserDTO{Username: "ana", Credential: "x", Role: enums.RoleSeller})
	require.NoError(t, err)

	_, err = repo.Create(ctx, CreateUserDTO{Username: "ana", Credential: "y", Role: enums.RoleManager})
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "users.username"))
}

func TestUpdateCredential(t *testing.T) {
	client := setupUsersTestDB(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	created, err := repo.Create(ctx, CreateUserDTO{Username: "luis", Credential: "oldpass", Role: enums.RoleManager})
	require.NoError(t, err)

	require.NoError(t, repo.UpdateCredential(ctx, created.ID, "$argon2id$new"))

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "$argon2id$new", reloaded.Credential)
}

func TestCountActiveByRole(t *testing.T) {
	client := setupUsersTestDB(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	count, err := repo.CountActiveByRole(ctx, enums.RoleManager.String())
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.Create(ctx, CreateUserDTO{Username: "ana", Credential: "x", Role: enums.RoleManager})
	require.NoError(t, err)
	_, err = repo.Create(ctx, CreateUserDTO{Username: "luis", Credential: "x", Role: enums.RoleSeller})
	require.NoError(t, err)

	require.NoError(t, client.Exec(ctx,
		"INSERT INTO users (username, credential, role, active) VALUES ('former', 'x', 'MANAGER', false)").Error)

	count, err = repo.CountActiveByRole(ctx, enums.RoleManager.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "inactive accounts are excluded")
}
