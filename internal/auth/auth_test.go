package auth

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashing(t *testing.T) {
	t.Run("check accepts the original password", func(t *testing.T) {
		// Low cost keeps the test fast; verification is cost-agnostic
		hash, err := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
		require.NoError(t, err)

		assert.True(t, CheckPassword("hunter2hunter2", string(hash)))
		assert.False(t, CheckPassword("wrong-password", string(hash)))
	})
}

func TestTOTPSecretRoundTrip(t *testing.T) {
	const key = "unit-test-encryption-key"

	t.Run("encrypt then decrypt restores the secret", func(t *testing.T) {
		secret, err := GenerateTOTPSecret()
		require.NoError(t, err)
		require.NotEmpty(t, secret)

		encrypted, err := EncryptTOTPSecret(secret, key)
		require.NoError(t, err)
		assert.NotEqual(t, secret, encrypted)

		decrypted, err := DecryptTOTPSecret(sql.NullString{String: encrypted, Valid: true}, key)
		require.NoError(t, err)
		assert.True(t, decrypted.Valid)
		assert.Equal(t, secret, decrypted.String)
	})

	t.Run("null secret stays null", func(t *testing.T) {
		decrypted, err := DecryptTOTPSecret(sql.NullString{}, key)
		require.NoError(t, err)
		assert.False(t, decrypted.Valid)
	})

	t.Run("two encryptions of the same secret differ", func(t *testing.T) {
		a, err := EncryptTOTPSecret("JBSWY3DPEHPK3PXP", key)
		require.NoError(t, err)
		b, err := EncryptTOTPSecret("JBSWY3DPEHPK3PXP", key)
		require.NoError(t, err)

		// Random IVs mean identical plaintexts never share ciphertext
		assert.NotEqual(t, a, b)
	})

	t.Run("malformed ciphertext is rejected", func(t *testing.T) {
		_, err := DecryptTOTPSecret(sql.NullString{String: "abcd", Valid: true}, key)
		assert.Error(t, err)
	})
}
