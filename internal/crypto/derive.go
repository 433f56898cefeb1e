package crypto

import (
	"crypto/ed25519"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// seedSize is the ed25519 seed length the expansion always produces.
const seedSize = 32

// ExpandSeed adapts an arbitrary-length seed to exactly 32 bytes: shorter
// seeds are right-padded with zero bytes, longer seeds are truncated.
// This is a direct byte-buffer adaptation, not a hash; replacing it with a
// KDF would change every derived wallet address.
func ExpandSeed(seed []byte) []byte {
	out := make([]byte, seedSize)
	copy(out, seed)
	return out
}

// DeriveKeypair deterministically derives a signing keypair from seed.
// The same seed always yields the same keypair.
func DeriveKeypair(seed []byte) (solana.PublicKey, solana.PrivateKey, error) {
	if len(seed) == 0 {
		return solana.PublicKey{}, nil, errors.New("empty seed")
	}
	expanded := ExpandSeed(seed)
	defer clear(expanded)

	key := ed25519.NewKeyFromSeed(expanded)
	priv := solana.PrivateKey(key)
	return priv.PublicKey(), priv, nil
}
