package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tstocks/client-go/internal/model"
)

func TestStoreSetAndClearWallet(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.Wallet())

	s.SetWallet(&model.WalletInfo{Address: "addr-1", Mode: model.SigningModeLocal, Connected: true})
	s.UpdateBalance(model.BalanceEntry{Asset: model.QuoteAsset, Balance: 10})
	s.ReplacePositions([]model.Position{{ID: "p1", Symbol: "TSLA"}})
	s.ReplaceHistory([]model.HistoryEntry{{ID: "h1"}}, 1)
	s.RecordOrder(model.OrderRecord{Symbol: "TSLA", Side: model.TradeSideSpotBuy})

	require.NotNil(t, s.Wallet())
	assert.Equal(t, "addr-1", s.Wallet().Address)

	s.ClearWallet()
	assert.Nil(t, s.Wallet())
	assert.Empty(t, s.Balances())
	assert.Empty(t, s.Positions())
	history, count := s.History()
	assert.Empty(t, history)
	assert.Zero(t, count)
	assert.Empty(t, s.Orders())
}

func TestStoreWalletReplacedNotMerged(t *testing.T) {
	s := NewStore()
	s.SetWallet(&model.WalletInfo{Address: "addr-1", SecretKey: "k1", Mode: model.SigningModeLocal})
	s.SetWallet(&model.WalletInfo{Address: "addr-2", Mode: model.SigningModeExtension})

	w := s.Wallet()
	require.NotNil(t, w)
	assert.Equal(t, "addr-2", w.Address)
	assert.Empty(t, w.SecretKey)
	assert.Equal(t, model.SigningModeExtension, w.Mode)
}

func TestStoreSnapshotUpsertsPerEntry(t *testing.T) {
	s := NewStore()
	s.ApplySnapshot(&model.Snapshot{
		Balances: []model.BalanceEntry{
			{Asset: model.QuoteAsset, Balance: 100, USDValue: 100, Units: 100_000_000},
			{Asset: "TSLA", Balance: 2, USDValue: 400, Units: 200_000_000},
		},
		Prices: []model.PriceEntry{{Symbol: "TSLA", Price: 200}},
	})

	// A later pass overwrites matching entries and leaves the rest alone.
	s.ApplySnapshot(&model.Snapshot{
		Balances: []model.BalanceEntry{{Asset: model.QuoteAsset, Balance: 80, USDValue: 80, Units: 80_000_000}},
		Prices:   []model.PriceEntry{{Symbol: "NVDA", Price: 120}},
	})

	quote, ok := s.Balance(model.QuoteAsset)
	require.True(t, ok)
	assert.Equal(t, uint64(80_000_000), quote.Units)

	tsla, ok := s.Balance("TSLA")
	require.True(t, ok)
	assert.Equal(t, float64(2), tsla.Balance)

	assert.Len(t, s.Balances(), 2)
	assert.InDelta(t, 200, s.StockPrice("TSLA"), 1e-9)
	assert.InDelta(t, 120, s.StockPrice("NVDA"), 1e-9)
	assert.Zero(t, s.StockPrice("AAPL"))

	// Nil snapshot (no wallet connected) is a no-op.
	s.ApplySnapshot(nil)
	assert.Len(t, s.Balances(), 2)
}

func TestStoreReplaceListsWholesale(t *testing.T) {
	s := NewStore()
	s.ReplacePositions([]model.Position{{ID: "p1"}, {ID: "p2"}})
	s.ReplacePositions([]model.Position{{ID: "p3"}})

	positions := s.Positions()
	require.Len(t, positions, 1)
	assert.Equal(t, "p3", positions[0].ID)

	s.ReplaceHistory([]model.HistoryEntry{{ID: "h1"}}, 40)
	history, count := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, 40, count)
}

func TestStoreOrdersAppend(t *testing.T) {
	s := NewStore()
	s.RecordOrder(model.OrderRecord{Symbol: "TSLA", Side: model.TradeSideSpotBuy, TxID: "a", Timestamp: time.Now()})
	s.RecordOrder(model.OrderRecord{Symbol: "NVDA", Side: model.TradeSideSpotSell, TxID: "b", Timestamp: time.Now()})

	orders := s.Orders()
	require.Len(t, orders, 2)
	assert.Equal(t, "a", orders[0].TxID)
	assert.Equal(t, "b", orders[1].TxID)
}

func TestStoreTotalPortfolioValue(t *testing.T) {
	s := NewStore()
	assert.Zero(t, s.TotalPortfolioValue())

	s.UpdateBalance(model.BalanceEntry{Asset: model.QuoteAsset, USDValue: 100})
	s.UpdateBalance(model.BalanceEntry{Asset: "TSLA", USDValue: 250.5})
	assert.InDelta(t, 350.5, s.TotalPortfolioValue(), 1e-9)
}

func TestStoreGettersReturnCopies(t *testing.T) {
	s := NewStore()
	s.UpdateBalance(model.BalanceEntry{Asset: model.QuoteAsset, Balance: 1})

	got := s.Balances()
	got[0].Balance = 999

	fresh, ok := s.Balance(model.QuoteAsset)
	require.True(t, ok)
	assert.Equal(t, float64(1), fresh.Balance)

	w := &model.WalletInfo{Address: "addr"}
	s.SetWallet(w)
	s.Wallet().Address = "mutated"
	assert.Equal(t, "addr", s.Wallet().Address)
}
