package trade

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrders struct {
	payload string
	err     error

	lastMethod   string
	lastMint     string
	lastAddress  string
	lastAmount   string
	lastMargin   string
	lastNotional string
}

func (f *fakeOrders) SpotBuy(_ context.Context, mint, address, amount string) (string, error) {
	f.lastMethod, f.lastMint, f.lastAddress, f.lastAmount = "spotBuy", mint, address, amount
	return f.payload, f.err
}

func (f *fakeOrders) SpotSell(_ context.Context, mint, address, amount string) (string, error) {
	f.lastMethod, f.lastMint, f.lastAddress, f.lastAmount = "spotSell", mint, address, amount
	return f.payload, f.err
}

func (f *fakeOrders) MarginBuy(_ context.Context, mint, address, margin, amount string) (string, error) {
	f.lastMethod, f.lastMint, f.lastAddress = "marginBuy", mint, address
	f.lastMargin, f.lastNotional = margin, amount
	return f.payload, f.err
}

type fakeSigner struct {
	submitted *solana.Transaction
	txID      string
	err       error
}

func (f *fakeSigner) Submit(_ context.Context, tx *solana.Transaction) (string, error) {
	f.submitted = tx
	return f.txID, f.err
}

const (
	testMint    = "XsDoVfqeBukxuZHWhdvWHBhgEHjGNst4MLodqsJHzoB"
	testAddress = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
)

// encodedTransaction builds a minimal real transaction and returns it the way
// the order API would: serialized and base64 encoded, unsigned.
func encodedTransaction(t *testing.T) string {
	t.Helper()

	payer := solana.NewWallet()
	dest := solana.NewWallet()
	tx, err := solana.NewTransaction(
		[]solana.Instruction{
			system.NewTransferInstruction(1, payer.PublicKey(), dest.PublicKey()).Build(),
		},
		solana.Hash{},
		solana.TransactionPayer(payer.PublicKey()),
	)
	require.NoError(t, err)

	raw, err := tx.MarshalBinary()
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func TestSpotBuySubmitsTransaction(t *testing.T) {
	orders := &fakeOrders{payload: encodedTransaction(t)}
	signer := &fakeSigner{txID: "sig-1"}

	txID, err := NewSubmitter(orders).SpotBuy(context.Background(), testMint, testAddress, "25.50", 100_000_000, signer)
	require.NoError(t, err)
	assert.Equal(t, "sig-1", txID)

	assert.Equal(t, "spotBuy", orders.lastMethod)
	assert.Equal(t, testMint, orders.lastMint)
	assert.Equal(t, testAddress, orders.lastAddress)
	assert.Equal(t, "25500000", orders.lastAmount)
	require.NotNil(t, signer.submitted)
}

func TestSpotBuyClampsToBalance(t *testing.T) {
	orders := &fakeOrders{payload: encodedTransaction(t)}
	signer := &fakeSigner{txID: "sig-2"}

	// Wallet holds 100 USDC; a 150 USDC request goes out as 100.
	_, err := NewSubmitter(orders).SpotBuy(context.Background(), testMint, testAddress, "150.00", 100_000_000, signer)
	require.NoError(t, err)
	assert.Equal(t, "100000000", orders.lastAmount)
}

func TestSpotSellUsesStockUnits(t *testing.T) {
	orders := &fakeOrders{payload: encodedTransaction(t)}
	signer := &fakeSigner{txID: "sig-3"}

	_, err := NewSubmitter(orders).SpotSell(context.Background(), testMint, testAddress, "2.5", 1_000_000_000, signer)
	require.NoError(t, err)
	assert.Equal(t, "spotSell", orders.lastMethod)
	assert.Equal(t, "250000000", orders.lastAmount)
}

func TestMarginBuyClampsOnlyCollateral(t *testing.T) {
	orders := &fakeOrders{payload: encodedTransaction(t)}
	signer := &fakeSigner{txID: "sig-4"}

	// Collateral is clamped to the quote balance; the notional is not.
	_, err := NewSubmitter(orders).MarginBuy(context.Background(), testMint, testAddress, "80.00", "200.00", 50_000_000, signer)
	require.NoError(t, err)
	assert.Equal(t, "marginBuy", orders.lastMethod)
	assert.Equal(t, "50000000", orders.lastMargin)
	assert.Equal(t, "200000000", orders.lastNotional)
}

func TestAbsentPayloadStopsBeforeSigning(t *testing.T) {
	orders := &fakeOrders{payload: ""}
	signer := &fakeSigner{txID: "never"}

	_, err := NewSubmitter(orders).SpotBuy(context.Background(), testMint, testAddress, "10.00", 100_000_000, signer)
	assert.ErrorIs(t, err, ErrNoTransaction)
	assert.Nil(t, signer.submitted)
}

func TestInvalidAmountStopsBeforeOrderAPI(t *testing.T) {
	orders := &fakeOrders{payload: encodedTransaction(t)}
	signer := &fakeSigner{}

	s := NewSubmitter(orders)
	_, err := s.SpotBuy(context.Background(), testMint, testAddress, "ten dollars", 100_000_000, signer)
	assert.Error(t, err)
	assert.Empty(t, orders.lastMethod)

	_, err = s.MarginBuy(context.Background(), testMint, testAddress, "-5", "10.00", 100_000_000, signer)
	assert.Error(t, err)
	assert.Empty(t, orders.lastMethod)
	assert.Nil(t, signer.submitted)
}

func TestMalformedPayloadIsRejected(t *testing.T) {
	signer := &fakeSigner{}
	s := NewSubmitter(&fakeOrders{payload: "not base64!!"})

	_, err := s.SpotBuy(context.Background(), testMint, testAddress, "10.00", 100_000_000, signer)
	assert.Error(t, err)
	assert.Nil(t, signer.submitted)

	// Valid base64, garbage transaction bytes.
	s = NewSubmitter(&fakeOrders{payload: base64.StdEncoding.EncodeToString([]byte("garbage"))})
	_, err = s.SpotBuy(context.Background(), testMint, testAddress, "10.00", 100_000_000, signer)
	assert.Error(t, err)
	assert.Nil(t, signer.submitted)
}

func TestOrderAPIFailurePropagates(t *testing.T) {
	orders := &fakeOrders{err: context.DeadlineExceeded}
	signer := &fakeSigner{}

	_, err := NewSubmitter(orders).SpotSell(context.Background(), testMint, testAddress, "1", 100_000_000, signer)
	assert.Error(t, err)
	assert.Nil(t, signer.submitted)
}
