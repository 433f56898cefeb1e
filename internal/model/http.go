package model

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ConnectResponse is returned by the wallet connect/import endpoints.
type ConnectResponse struct {
	Success bool   `json:"success"`
	Address string `json:"address"`
	Mode    string `json:"mode"`
}

// ImportRequest carries a user-supplied seed for wallet recovery.
type ImportRequest struct {
	Seed string `json:"seed"`
}

// ExtensionConnectRequest carries the address reported by a browser wallet.
type ExtensionConnectRequest struct {
	Address string `json:"address"`
}

// WalletResponse is the wallet overview returned by GET /wallet.
type WalletResponse struct {
	Address  string         `json:"address"`
	Mode     string         `json:"mode"`
	QR       string         `json:"qr,omitempty"`
	Balances []BalanceEntry `json:"balances"`
}

// ExportRequest / RestoreRequest carry the password for encrypted backup.
type ExportRequest struct {
	Password string `json:"password"`
}

// ExportResponse holds the encrypted secret-key envelope.
type ExportResponse struct {
	Blob string `json:"blob"`
}

// RestoreRequest restores a wallet from an encrypted envelope.
type RestoreRequest struct {
	Password string `json:"password"`
	Blob     string `json:"blob"`
}

// TradeRequest is the body for the trade submission endpoints.
// Amount is quote-denominated for buys, instrument-denominated for sells.
// Margin is used by the margin-buy endpoint only.
type TradeRequest struct {
	Mint   string `json:"mint"`
	Amount string `json:"amount"`
	Margin string `json:"margin,omitempty"`
}

// TradeResponse reports the broadcast result of a trade submission.
type TradeResponse struct {
	Success bool   `json:"success"`
	TxID    string `json:"txId,omitempty"`
}
