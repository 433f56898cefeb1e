package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tstocks/client-go/internal/crypto"
	"github.com/tstocks/client-go/internal/model"
	"github.com/tstocks/client-go/internal/store"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(store.New(t.TempDir(), "stocks_"))
}

func TestBootstrapIsIdempotent(t *testing.T) {
	m := newTestManager(t)

	first, err := m.InitializeOrRestoreLocal()
	require.NoError(t, err)
	second, err := m.InitializeOrRestoreLocal()
	require.NoError(t, err)

	assert.Equal(t, first.Address, second.Address)
	assert.Equal(t, first.SecretKey, second.SecretKey)
	assert.Equal(t, model.SigningModeLocal, second.Mode)
}

func TestBootstrapGeneratesDistinctWalletsPerProfile(t *testing.T) {
	m1 := newTestManager(t)
	m2 := newTestManager(t)

	w1, err := m1.InitializeOrRestoreLocal()
	require.NoError(t, err)
	w2, err := m2.InitializeOrRestoreLocal()
	require.NoError(t, err)

	assert.NotEqual(t, w1.Address, w2.Address)
}

func TestImportIsDeterministic(t *testing.T) {
	m := newTestManager(t)

	info, err := m.Import([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, "5cVVVkGRaMmBb3wE5yqrNfeAo6B17tbyiyL69GzwZViB", info.Address)

	// Importing on a fresh profile yields the same identity.
	other := newTestManager(t)
	again, err := other.Import([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, info.Address, again.Address)
}

func TestImportOverwritesExistingWallet(t *testing.T) {
	m := newTestManager(t)

	generated, err := m.InitializeOrRestoreLocal()
	require.NoError(t, err)

	imported, err := m.Import([]byte("recovery seed"))
	require.NoError(t, err)
	assert.NotEqual(t, generated.Address, imported.Address)

	// The imported identity now survives bootstrap.
	restored, err := m.InitializeOrRestoreLocal()
	require.NoError(t, err)
	assert.Equal(t, imported.Address, restored.Address)
}

func TestImportRejectsEmptySeed(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Import(nil)
	assert.Error(t, err)
}

func TestReleaseDropsIdentity(t *testing.T) {
	m := newTestManager(t)

	first, err := m.InitializeOrRestoreLocal()
	require.NoError(t, err)

	m.Release()

	second, err := m.InitializeOrRestoreLocal()
	require.NoError(t, err)
	assert.NotEqual(t, first.Address, second.Address)
}

func TestExportRestoreRoundTrip(t *testing.T) {
	m := newTestManager(t)
	password := []byte("backup password")

	original, err := m.InitializeOrRestoreLocal()
	require.NoError(t, err)

	blob, err := m.ExportEncrypted(password)
	require.NoError(t, err)

	// Restore on a fresh profile recovers the same wallet.
	other := newTestManager(t)
	restored, err := other.RestoreEncrypted(password, blob)
	require.NoError(t, err)
	assert.Equal(t, original.Address, restored.Address)
}

func TestRestoreWrongPasswordIsDistinctFromNoWallet(t *testing.T) {
	m := newTestManager(t)

	// No wallet stored yet: export reports absence, not a password problem.
	_, err := m.ExportEncrypted([]byte("pw"))
	assert.ErrorIs(t, err, ErrNoStoredSecret)

	_, err = m.InitializeOrRestoreLocal()
	require.NoError(t, err)

	blob, err := m.ExportEncrypted([]byte("right"))
	require.NoError(t, err)

	_, err = m.RestoreEncrypted([]byte("wrong"), blob)
	assert.ErrorIs(t, err, crypto.ErrBadPassword)
	assert.NotErrorIs(t, err, ErrNoStoredSecret)
}

func TestExtensionIdentityHoldsNoKeyMaterial(t *testing.T) {
	info := ExtensionIdentity("9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin")

	assert.Equal(t, model.SigningModeExtension, info.Mode)
	assert.Empty(t, info.SecretKey)
	assert.True(t, info.Connected)
}

func TestReceiveQR(t *testing.T) {
	m := newTestManager(t)
	info, err := m.InitializeOrRestoreLocal()
	require.NoError(t, err)

	qr, err := m.ReceiveQR(info.Address)
	require.NoError(t, err)
	assert.NotEmpty(t, qr)
}
