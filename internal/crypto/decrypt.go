package crypto

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// ErrBadPassword is returned when an envelope cannot be opened with the
// supplied password. Callers must treat this as "wallet locked / wrong
// password", never as "no wallet stored" - the two states imply different
// recovery paths.
var ErrBadPassword = errors.New("invalid password")

// DecryptSecret opens an envelope produced by EncryptSecret. Any failure -
// corrupt base64, truncated blob, authentication-tag mismatch - fails
// closed with ErrBadPassword; partial plaintext is never returned.
// password must be []byte for security (caller should zero it after use)
func DecryptSecret(password []byte, blob string) ([]byte, error) {
	if len(password) == 0 {
		return nil, fmt.Errorf("password cannot be empty")
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, ErrBadPassword
	}
	if len(raw) <= nonceLen {
		return nil, ErrBadPassword
	}

	aead, err := deriveCipher(password)
	if err != nil {
		return nil, err
	}

	nonce, ciphertext := raw[:nonceLen], raw[nonceLen:]
	secret, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrBadPassword
	}
	return secret, nil
}
