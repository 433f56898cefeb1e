package model

// Instrument is one tradable tokenized stock in the fixed registry.
type Instrument struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Mint     string `json:"mint"`
	Decimals int    `json:"decimals"`
}

// PriceEntry is the live market view of one instrument.
// Only the reconciliation path writes these; trade submission never does.
// Volume24h and MarketCap are not supplied by the current price feed and
// stay zero until a feed that carries them is wired in.
type PriceEntry struct {
	Symbol           string  `json:"symbol"`
	Price            float64 `json:"price"`
	Change24h        float64 `json:"change24h"`
	ChangePercent24h float64 `json:"changePercent24h"`
	Volume24h        float64 `json:"volume24h"`
	MarketCap        float64 `json:"marketCap"`
}

// BalanceEntry is one asset's balance in the wallet snapshot.
// Invariant: Balance >= Locked >= 0.
type BalanceEntry struct {
	Asset    string  `json:"asset"`
	Balance  float64 `json:"balance"`
	USDValue float64 `json:"usdValue"`
	Locked   float64 `json:"locked"`
	// Units is the raw on-chain integer amount the display Balance was
	// derived from; trade submission clamps against this, never the float.
	Units uint64 `json:"-"`
}

// Snapshot is the result of one balance/price reconciliation pass.
// Balances lists the quote asset first, then the fee asset, then the
// instruments. Prices holds an entry only for instruments whose feed
// responded.
type Snapshot struct {
	Balances []BalanceEntry `json:"balances"`
	Prices   []PriceEntry   `json:"prices"`
}
