package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters for the secret-key envelope. The salt is a fixed
	// application constant: the envelope protects one secret per profile
	// and must decrypt the same way on every device the blob is copied to.
	pbkdf2Iterations = 100_000
	pbkdf2KeyLen     = 32
	nonceLen         = 12
)

var kdfSalt = []byte("tstocks-wallet-v1")

// deriveCipher builds the AES-256-GCM AEAD for a password.
func deriveCipher(password []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(password, kdfSalt, pbkdf2Iterations, pbkdf2KeyLen, sha256.New)
	defer clear(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return aead, nil
}

// EncryptSecret seals secret under a password-derived key and returns a
// self-contained base64 envelope of nonce followed by ciphertext. A fresh
// random nonce is generated per call.
// password must be []byte for security (caller should zero it after use)
func EncryptSecret(password, secret []byte) (string, error) {
	if len(password) == 0 {
		return "", fmt.Errorf("password cannot be empty")
	}
	if len(secret) == 0 {
		return "", fmt.Errorf("secret cannot be empty")
	}

	aead, err := deriveCipher(password)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	blob := aead.Seal(nonce, nonce, secret, nil)
	return base64.StdEncoding.EncodeToString(blob), nil
}
