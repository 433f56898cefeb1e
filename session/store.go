// Package session holds the single mutable store behind the dashboard UI
// and the orchestration that keeps it reconciled with the chain and the
// platform APIs.
package session

import (
	"sync"

	"github.com/tstocks/client-go/internal/model"
)

// Store is the session state container. All mutation goes through its
// action methods; each applies a pure transform under the lock and no lock
// is ever held across I/O.
type Store struct {
	mu           sync.RWMutex
	wallet       *model.WalletInfo
	balances     []model.BalanceEntry
	prices       []model.PriceEntry
	positions    []model.Position
	history      []model.HistoryEntry
	historyCount int
	orders       []model.OrderRecord
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// SetWallet installs a freshly connected identity, replacing any previous
// one. Identities are never merged.
func (s *Store) SetWallet(w *model.WalletInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallet = w
}

// ClearWallet disconnects: wallet identity and per-wallet state are dropped.
func (s *Store) ClearWallet() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wallet = nil
	s.balances = nil
	s.positions = nil
	s.history = nil
	s.historyCount = 0
	s.orders = nil
}

// ApplySnapshot merges a reconciliation snapshot, last-write-wins per asset
// and per symbol. A late slow pass may land after a newer fast one; entries
// stay internally consistent either way.
func (s *Store) ApplySnapshot(snap *model.Snapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range snap.Balances {
		s.balances = upsertBalance(s.balances, b)
	}
	for _, p := range snap.Prices {
		s.prices = upsertPrice(s.prices, p)
	}
}

// UpdateBalance applies one balance entry.
func (s *Store) UpdateBalance(b model.BalanceEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances = upsertBalance(s.balances, b)
}

// UpdatePrice applies one price entry.
func (s *Store) UpdatePrice(p model.PriceEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices = upsertPrice(s.prices, p)
}

// ReplacePositions swaps the open-position list wholesale.
func (s *Store) ReplacePositions(positions []model.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions = append([]model.Position(nil), positions...)
}

// ReplaceHistory swaps the trade-history list wholesale.
func (s *Store) ReplaceHistory(history []model.HistoryEntry, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]model.HistoryEntry(nil), history...)
	s.historyCount = count
}

// RecordOrder appends a locally submitted order to the session view.
func (s *Store) RecordOrder(o model.OrderRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = append(s.orders, o)
}

// Wallet returns the connected identity, or nil.
func (s *Store) Wallet() *model.WalletInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wallet == nil {
		return nil
	}
	w := *s.wallet
	return &w
}

// Balances returns a copy of the balance list.
func (s *Store) Balances() []model.BalanceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.BalanceEntry(nil), s.balances...)
}

// Prices returns a copy of the live price list.
func (s *Store) Prices() []model.PriceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.PriceEntry(nil), s.prices...)
}

// Positions returns a copy of the open positions.
func (s *Store) Positions() []model.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Position(nil), s.positions...)
}

// History returns a copy of the trade history and its server-side count.
func (s *Store) History() ([]model.HistoryEntry, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.HistoryEntry(nil), s.history...), s.historyCount
}

// Orders returns a copy of the locally recorded submissions.
func (s *Store) Orders() []model.OrderRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.OrderRecord(nil), s.orders...)
}

// Balance looks up one asset's balance entry.
func (s *Store) Balance(asset string) (model.BalanceEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.balances {
		if b.Asset == asset {
			return b, true
		}
	}
	return model.BalanceEntry{}, false
}

// StockPrice returns the live price for a symbol, zero when unknown.
func (s *Store) StockPrice(symbol string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.prices {
		if p.Symbol == symbol {
			return p.Price
		}
	}
	return 0
}

// TotalPortfolioValue sums the USD value of all balances.
func (s *Store) TotalPortfolioValue() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, b := range s.balances {
		total += b.USDValue
	}
	return total
}

func upsertBalance(list []model.BalanceEntry, entry model.BalanceEntry) []model.BalanceEntry {
	for i := range list {
		if list[i].Asset == entry.Asset {
			list[i] = entry
			return list
		}
	}
	return append(list, entry)
}

func upsertPrice(list []model.PriceEntry, entry model.PriceEntry) []model.PriceEntry {
	for i := range list {
		if list[i].Symbol == entry.Symbol {
			list[i] = entry
			return list
		}
	}
	return append(list, entry)
}
