// Package wallet owns the signing identity of the session: deriving and
// persisting the local keypair, encrypted export/restore, and the two
// signing paths (local key material vs. browser extension).
package wallet

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/skip2/go-qrcode"

	"github.com/tstocks/client-go/internal/crypto"
	"github.com/tstocks/client-go/internal/model"
	"github.com/tstocks/client-go/internal/store"
)

const (
	networkMainnet = "mainnet"
	randomSeedLen  = 64
)

// ErrNoStoredSecret means the store holds no wallet. It is deliberately
// distinct from crypto.ErrBadPassword: this one means "create or import a
// wallet", that one means "retry with the right password".
var ErrNoStoredSecret = errors.New("no wallet secret stored")

// Manager derives, persists and restores the local wallet identity.
type Manager struct {
	store  *store.Store
	logger *slog.Logger
}

// NewManager creates a Manager backed by the given secret store.
func NewManager(st *store.Store) *Manager {
	return &Manager{
		store:  st,
		logger: slog.Default().WithGroup("wallet"),
	}
}

// InitializeOrRestoreLocal is the local-wallet bootstrap: restore the stored
// identity if one exists, otherwise generate a fresh random 64-byte seed,
// derive from it and persist. Idempotent: repeated calls in a session return
// the same address.
func (m *Manager) InitializeOrRestoreLocal() (*model.WalletInfo, error) {
	if stored := m.store.Get(store.KeyKeypair); stored != "" {
		info, err := m.restoreFromStored(stored)
		if err == nil {
			return info, nil
		}
		// A corrupt stored value is unrecoverable; fall through and mint a
		// new identity rather than wedging the session.
		m.logger.Warn("stored keypair unreadable, generating new wallet", "err", err)
	}

	seed := make([]byte, randomSeedLen)
	if _, err := io.ReadFull(rand.Reader, seed); err != nil {
		return nil, fmt.Errorf("failed to generate seed: %w", err)
	}
	defer clear(seed)

	return m.deriveAndPersist(seed)
}

// Import replaces any stored identity with one derived from the supplied
// seed. Used for wallet recovery flows.
func (m *Manager) Import(seed []byte) (*model.WalletInfo, error) {
	if len(seed) == 0 {
		return nil, errors.New("seed cannot be empty")
	}
	return m.deriveAndPersist(seed)
}

// Release wipes the stored secret. The next bootstrap creates a new wallet.
func (m *Manager) Release() {
	m.store.Delete(store.KeyKeypair)
}

// ExportEncrypted returns the secret key sealed in a password-derived
// envelope, suitable for backup.
// password must be []byte for security (caller should zero it after use)
func (m *Manager) ExportEncrypted(password []byte) (string, error) {
	stored := m.store.Get(store.KeyKeypair)
	if stored == "" {
		return "", ErrNoStoredSecret
	}

	secret, err := base58.Decode(stored)
	if err != nil {
		return "", fmt.Errorf("stored keypair corrupt: %w", err)
	}
	defer clear(secret)

	blob, err := crypto.EncryptSecret(password, secret)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return blob, nil
}

// RestoreEncrypted opens an exported envelope and installs the recovered
// identity. A wrong password surfaces as crypto.ErrBadPassword.
// password must be []byte for security (caller should zero it after use)
func (m *Manager) RestoreEncrypted(password []byte, blob string) (*model.WalletInfo, error) {
	secret, err := crypto.DecryptSecret(password, blob)
	if err != nil {
		return nil, err
	}
	defer clear(secret)

	return m.deriveAndPersist(secret)
}

// ReceiveQR renders the receive address as a base64 PNG QR code.
func (m *Manager) ReceiveQR(address string) (string, error) {
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}

// ExtensionIdentity builds the identity for a browser-extension wallet.
// No key material is ever held or persisted for this mode.
func ExtensionIdentity(address string) *model.WalletInfo {
	return &model.WalletInfo{
		Address:   address,
		SecretKey: "",
		Mode:      model.SigningModeExtension,
		Network:   networkMainnet,
		Connected: true,
	}
}

// deriveAndPersist derives the keypair from seed and stores the full
// base58-encoded secret key. Re-deriving from the stored value yields the
// same keypair, so restore and import share one code path.
func (m *Manager) deriveAndPersist(seed []byte) (*model.WalletInfo, error) {
	pub, priv, err := crypto.DeriveKeypair(seed)
	if err != nil {
		return nil, fmt.Errorf("failed to derive keypair: %w", err)
	}

	encoded := base58.Encode(priv)
	if !m.store.Put(store.KeyKeypair, encoded) {
		return nil, errors.New("failed to persist wallet secret")
	}

	return localInfo(pub, encoded), nil
}

func (m *Manager) restoreFromStored(stored string) (*model.WalletInfo, error) {
	raw, err := base58.Decode(stored)
	if err != nil {
		return nil, fmt.Errorf("stored keypair corrupt: %w", err)
	}
	defer clear(raw)

	if len(raw) != 64 {
		return nil, fmt.Errorf("stored keypair has invalid length %d", len(raw))
	}

	// The first 32 bytes of a stored ed25519 key are its seed, so deriving
	// again reproduces the identical keypair.
	pub, _, err := crypto.DeriveKeypair(raw)
	if err != nil {
		return nil, err
	}
	return localInfo(pub, stored), nil
}

func localInfo(pub solana.PublicKey, encodedSecret string) *model.WalletInfo {
	return &model.WalletInfo{
		Address:   pub.String(),
		SecretKey: encodedSecret,
		Mode:      model.SigningModeLocal,
		Network:   networkMainnet,
		Connected: true,
	}
}
