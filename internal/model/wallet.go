package model

// SigningMode says who holds the private key for a connected wallet.
type SigningMode string

const (
	// SigningModeLocal means the key material lives in this process.
	SigningModeLocal SigningMode = "LOCAL"
	// SigningModeExtension means a browser extension wallet signs on our behalf;
	// this process never sees or stores the key.
	SigningModeExtension SigningMode = "EXTENSION"
)

// WalletInfo is the connected wallet identity.
// SecretKey is the base58-encoded 64-byte ed25519 key and is populated only
// when Mode is SigningModeLocal.
type WalletInfo struct {
	Address   string      `json:"address"`
	SecretKey string      `json:"-"`
	Mode      SigningMode `json:"mode"`
	Network   string      `json:"network"`
	Connected bool        `json:"connected"`
}

// IsLocal reports whether this identity signs with in-process key material.
func (w *WalletInfo) IsLocal() bool {
	return w.Mode == SigningModeLocal
}
