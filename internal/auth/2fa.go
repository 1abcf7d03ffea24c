package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base32"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"

	"github.com/pquerna/otp/totp"
)

// TOTPSecretSize is the size of the TOTP secret in bytes
const TOTPSecretSize = 20

// GenerateTOTPSecret generates a new random TOTP secret, base32 encoded as
// authenticator apps expect.
func GenerateTOTPSecret() (string, error) {
	secret := make([]byte, TOTPSecretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", err
	}
	return base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(secret), nil
}

// GenerateTOTPQRCodeURL builds the otpauth:// URL encoded into the setup QR
func GenerateTOTPQRCodeURL(secret, accountName, issuer string) string {
	return fmt.Sprintf(
		"otpauth://totp/%s:%s?algorithm=SHA1&digits=6&issuer=%s&period=30&secret=%s",
		url.QueryEscape(issuer),
		url.QueryEscape(accountName),
		url.QueryEscape(issuer),
		secret,
	)
}

// ValidateTOTP checks if the provided TOTP code is valid for the secret
func ValidateTOTP(secret sql.NullString, code string) bool {
	return totp.Validate(code, secret.String)
}

func cipherBlock(encryptionKey string) (cipher.Block, error) {
	// Derive a fixed-size key from the configured passphrase
	hash := sha256.Sum256([]byte(encryptionKey))
	return aes.NewCipher(hash[:])
}

// EncryptTOTPSecret encrypts the TOTP secret before storing it. The random
// IV is prepended to the ciphertext and the whole blob hex encoded.
func EncryptTOTPSecret(secret, encryptionKey string) (string, error) {
	block, err := cipherBlock(encryptionKey)
	if err != nil {
		return "", err
	}

	padded := padSecret(secret, aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	iv := out[:aes.BlockSize]
	if _, err := rand.Read(iv); err != nil {
		return "", err
	}

	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)
	return hex.EncodeToString(out), nil
}

// DecryptTOTPSecret decrypts a stored TOTP secret
func DecryptTOTPSecret(encryptedSecret sql.NullString, encryptionKey string) (sql.NullString, error) {
	if !encryptedSecret.Valid {
		return sql.NullString{Valid: false}, nil
	}

	blob, err := hex.DecodeString(encryptedSecret.String)
	if err != nil {
		return sql.NullString{Valid: false}, err
	}
	if len(blob) < 2*aes.BlockSize || len(blob)%aes.BlockSize != 0 {
		return sql.NullString{Valid: false}, errors.New("malformed encrypted secret")
	}

	block, err := cipherBlock(encryptionKey)
	if err != nil {
		return sql.NullString{Valid: false}, err
	}

	iv, ciphertext := blob[:aes.BlockSize], blob[aes.BlockSize:]
	decrypted := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(decrypted, ciphertext)

	return sql.NullString{String: string(unpadSecret(decrypted)), Valid: true}, nil
}

func padSecret(secret string, blockSize int) []byte {
	padding := blockSize - (len(secret) % blockSize)
	padded := append([]byte(secret), make([]byte, padding)...)
	for i := len(secret); i < len(padded); i++ {
		padded[i] = byte(padding)
	}
	return padded
}

func unpadSecret(data []byte) []byte {
	if len(data) == 0 {
		return data
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > len(data) {
		return data
	}
	return data[:len(data)-padding]
}
