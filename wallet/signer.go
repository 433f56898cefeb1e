package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"

	"github.com/tstocks/client-go/internal/model"
)

// Broadcaster sends a fully signed transaction to the network.
type Broadcaster interface {
	Broadcast(ctx context.Context, tx *solana.Transaction) (string, error)
}

// Signer dispatches an unsigned transaction through exactly one signing
// path and returns the resulting transaction signature.
type Signer interface {
	Submit(ctx context.Context, tx *solana.Transaction) (string, error)
}

// LocalSigner signs with in-memory key material and broadcasts over the RPC
// connection.
type LocalSigner struct {
	key  solana.PrivateKey
	conn Broadcaster
}

// NewLocalSigner builds the local signing path from a base58-encoded
// 64-byte secret key.
func NewLocalSigner(encodedSecret string, conn Broadcaster) (*LocalSigner, error) {
	raw, err := base58.Decode(encodedSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid secret key encoding: %w", err)
	}
	if len(raw) != 64 {
		return nil, fmt.Errorf("invalid secret key length: expected 64 bytes")
	}
	return &LocalSigner{key: solana.PrivateKey(raw), conn: conn}, nil
}

// Submit signs the transaction and broadcasts it.
func (s *LocalSigner) Submit(ctx context.Context, tx *solana.Transaction) (string, error) {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if s.key.PublicKey().Equals(key) {
			return &s.key
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	return s.conn.Broadcast(ctx, tx)
}

// SendFunc is the opaque capability supplied by the browser wallet-adapter
// layer: it signs and broadcasts with key material this process never sees.
type SendFunc func(ctx context.Context, tx *solana.Transaction) (string, error)

// ExtensionSigner delegates signing and broadcast to an extension wallet.
type ExtensionSigner struct {
	send SendFunc
}

// NewExtensionSigner wraps an extension wallet's send callback.
func NewExtensionSigner(send SendFunc) *ExtensionSigner {
	return &ExtensionSigner{send: send}
}

// Submit delegates the transaction to the extension wallet.
func (s *ExtensionSigner) Submit(ctx context.Context, tx *solana.Transaction) (string, error) {
	if s.send == nil {
		return "", errors.New("extension wallet callback not set")
	}
	return s.send(ctx, tx)
}

// SignerFor selects the signing path from the identity's mode. The mode
// enum is the only discriminant; key material length is never inspected.
func SignerFor(w *model.WalletInfo, conn Broadcaster, ext *ExtensionSigner) (Signer, error) {
	if w == nil {
		return nil, errors.New("no wallet connected")
	}
	switch w.Mode {
	case model.SigningModeLocal:
		return NewLocalSigner(w.SecretKey, conn)
	case model.SigningModeExtension:
		if ext == nil {
			return nil, errors.New("extension wallet not attached")
		}
		return ext, nil
	default:
		return nil, fmt.Errorf("unknown signing mode %q", w.Mode)
	}
}
