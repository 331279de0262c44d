package security_test

import (
	"testing"

	"github.com/aurumpos/backend/pkg/config"
	"github.com/aurumpos/backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCredentialClassifiesByPrefix(t *testing.T) {
	cfg := config.PasswordConfig{ArgonMemoryKB: 32768, ArgonTime: 1, ArgonParallelism: 1}
	hash, err := security.HashPassword("secret", cfg)
	require.NoError(t, err)

	assert.Equal(t, security.CredentialHashed, security.ParseCredential(hash).Kind())
	assert.Equal(t, security.CredentialLegacy, security.ParseCredential("secret").Kind())
	// Empty stored value is legacy, not a hash
	assert.Equal(t, security.CredentialLegacy, security.ParseCredential("").Kind())
}

func TestCredentialMatches(t *testing.T) {
	cfg := config.PasswordConfig{ArgonMemoryKB: 32768, ArgonTime: 1, ArgonParallelism: 1}
	hash, err := security.HashPassword("secret", cfg)
	require.NoError(t, err)

	hashed := security.ParseCredential(hash)
	ok, err := hashed.Matches("secret")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = hashed.Matches("wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	legacy := security.ParseCredential("plain-old-password")
	ok, err = legacy.Matches("plain-old-password")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = legacy.Matches("plain-old-passwore")
	require.NoError(t, err)
	assert.False(t, ok)
}
