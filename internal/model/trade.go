package model

import "time"

// TradeSide is what the user asked to do with an instrument.
type TradeSide string

const (
	TradeSideSpotBuy   TradeSide = "spotBuy"
	TradeSideSpotSell  TradeSide = "spotSell"
	TradeSideMarginBuy TradeSide = "marginBuy"
)

// TradeIntent is one user-initiated trade request, consumed exactly once.
// Amount is quote-denominated for buys and instrument-denominated for sells.
// MarginAmount is set for margin buys only.
type TradeIntent struct {
	Mint         string    `json:"mint"`
	Address      string    `json:"address"`
	Side         TradeSide `json:"side"`
	Amount       string    `json:"amount"`
	MarginAmount string    `json:"marginAmount,omitempty"`
}

// Position is one open position reported by the account API.
type Position struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	Side       string  `json:"side"`
	Size       float64 `json:"size"`
	EntryPrice float64 `json:"entryPrice"`
	MarkPrice  float64 `json:"markPrice"`
	Leverage   float64 `json:"leverage"`
	Margin     float64 `json:"margin"`
	PnL        float64 `json:"pnl"`
}

// HistoryEntry is one settled trade from the account API's history list.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Side      string    `json:"side"`
	Amount    float64   `json:"amount"`
	Price     float64   `json:"price"`
	TxID      string    `json:"txId"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderRecord is a locally recorded submission, kept for the session view.
type OrderRecord struct {
	Symbol    string    `json:"symbol"`
	Side      TradeSide `json:"side"`
	Amount    string    `json:"amount"`
	TxID      string    `json:"txId"`
	Timestamp time.Time `json:"timestamp"`
}
