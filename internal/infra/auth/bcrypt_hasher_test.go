package auth

import (
	"testing"

	"minishop/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHasherConfig(cost int) *config.Config {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{BcryptCost: cost}

	return cfg
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(4)) // minimum cost keeps the test fast

	hash, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "Password123!", hash)

	assert.True(t, hasher.Check("Password123!", hash))
	assert.False(t, hasher.Check("WrongPassword", hash))
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := NewBcryptHasher(newHasherConfig(4))

	first, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	second, err := hasher.Hash("Password123!")
	require.NoError(t, err)

	// bcrypt embeds a fresh salt per call; equality would mean the salt is broken.
	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Check("Password123!", first))
	assert.True(t, hasher.Check("Password123!", second))
}

func TestBcryptHasher_FallsBackToDefaultCost(t *testing.T) {
	hasher := NewBcryptHasher(&config.Config{})

	hash, err := hasher.Hash("Password123!")
	require.NoError(t, err)
	assert.True(t, hasher.Check("Password123!", hash))
}
