package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanLadeira/task-challenge/internal/auth"
)

func TestHashPassword_VerifiesOwnHash(t *testing.T) {
	hash, err := auth.HashPassword("StrongPass123")
	require.NoError(t, err)
	assert.NotEqual(t, "StrongPass123", hash, "digest must not be the plaintext")

	assert.True(t, auth.CheckPassword("StrongPass123", hash))
}

func TestCheckPassword_RejectsWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("correct-horse")
	require.NoError(t, err)

	assert.False(t, auth.CheckPassword("battery-staple", hash))
}

func TestHashPassword_SaltedDigestsDiffer(t *testing.T) {
	first, err := auth.HashPassword("same-password")
	require.NoError(t, err)
	second, err := auth.HashPassword("same-password")
	require.NoError(t, err)

	// Each digest embeds its own salt, so both validate but never collide.
	assert.NotEqual(t, first, second)
	assert.True(t, auth.CheckPassword("same-password", first))
	assert.True(t, auth.CheckPassword("same-password", second))
}
