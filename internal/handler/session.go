package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/tstocks/client-go/internal/config"
	"github.com/tstocks/client-go/internal/crypto"
	"github.com/tstocks/client-go/internal/model"
	"github.com/tstocks/client-go/session"
	"github.com/tstocks/client-go/wallet"
)

// SessionHandler exposes the session core to the dashboard UI.
type SessionHandler struct {
	session *session.Session
}

// NewSessionHandler creates a handler over a session.
func NewSessionHandler(s *session.Session) *SessionHandler {
	return &SessionHandler{session: s}
}

// Connect handles POST /wallet/connect
// @Summary      Connect local wallet
// @Description  Restores the stored wallet, or generates and persists a new one
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ConnectResponse
// @Router       /wallet/connect [post]
func (h *SessionHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	info, err := h.session.ConnectLocal(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ConnectResponse{
		Success: true,
		Address: info.Address,
		Mode:    string(info.Mode),
	})
}

// ConnectExtension handles POST /wallet/connect/extension
// @Summary      Track an extension wallet
// @Description  Installs a browser-extension identity for balance and position tracking; the extension signs trades in the browser, not through this API
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExtensionConnectRequest  true  "Extension wallet address"
// @Success      200      {object}  model.ConnectResponse
// @Router       /wallet/connect/extension [post]
func (h *SessionHandler) ConnectExtension(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ExtensionConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Address == "" {
		writeError(w, http.StatusBadRequest, errors.New("address is required"))
		return
	}

	info := h.session.ConnectExtension(r.Context(), req.Address, nil)

	writeJSON(w, http.StatusOK, model.ConnectResponse{
		Success: true,
		Address: info.Address,
		Mode:    string(info.Mode),
	})
}

// Import handles POST /wallet/import
// @Summary      Import wallet from seed
// @Description  Overwrites the stored wallet with one derived from the supplied seed
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Seed"
// @Success      200      {object}  model.ConnectResponse
// @Router       /wallet/import [post]
func (h *SessionHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Seed == "" {
		writeError(w, http.StatusBadRequest, errors.New("seed is required"))
		return
	}

	info, err := h.session.ImportSeed(r.Context(), []byte(req.Seed))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ConnectResponse{
		Success: true,
		Address: info.Address,
		Mode:    string(info.Mode),
	})
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect wallet
// @Description  Drops the session identity; the stored secret is kept for the next connect
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  map[string]bool
// @Router       /wallet/disconnect [post]
func (h *SessionHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.session.Disconnect()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Wallet handles GET /wallet
// @Summary      Wallet overview
// @Description  Returns the connected address, its receive QR code and balances
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.WalletResponse
// @Router       /wallet [get]
func (h *SessionHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	info := h.session.Store().Wallet()
	if info == nil {
		writeError(w, http.StatusNotFound, errors.New("no wallet connected"))
		return
	}

	qr, err := h.session.ReceiveQR()
	if err != nil {
		qr = "" // overview still renders without the QR
	}

	writeJSON(w, http.StatusOK, model.WalletResponse{
		Address:  info.Address,
		Mode:     string(info.Mode),
		QR:       qr,
		Balances: h.session.Store().Balances(),
	})
}

// Export handles POST /wallet/export
// @Summary      Export encrypted wallet backup
// @Description  Seals the stored secret key in a password-derived envelope
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ExportRequest  true  "Backup password"
// @Success      200      {object}  model.ExportResponse
// @Router       /wallet/export [post]
func (h *SessionHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	password, err := resolvePassword(req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(password)

	blob, err := h.session.ExportEncrypted(password)
	if err != nil {
		if errors.Is(err, wallet.ErrNoStoredSecret) {
			writeError(w, http.StatusNotFound, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ExportResponse{Blob: blob})
}

// Restore handles POST /wallet/restore
// @Summary      Restore wallet from encrypted backup
// @Description  Opens an exported envelope and installs the recovered identity; a wrong password is rejected, never treated as an empty wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.RestoreRequest  true  "Password and envelope"
// @Success      200      {object}  model.ConnectResponse
// @Router       /wallet/restore [post]
func (h *SessionHandler) Restore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.RestoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	password, err := resolvePassword(req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	defer clear(password)

	info, err := h.session.RestoreEncrypted(r.Context(), password, req.Blob)
	if err != nil {
		if errors.Is(err, crypto.ErrBadPassword) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, model.ConnectResponse{
		Success: true,
		Address: info.Address,
		Mode:    string(info.Mode),
	})
}

// Prices handles GET /market/prices
// @Summary      Live instrument prices
// @Tags         market
// @Produce      json
// @Success      200  {array}  model.PriceEntry
// @Router       /market/prices [get]
func (h *SessionHandler) Prices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.session.Store().Prices())
}

// Positions handles GET /account/positions
// @Summary      Open positions
// @Tags         account
// @Produce      json
// @Success      200  {array}  model.Position
// @Router       /account/positions [get]
func (h *SessionHandler) Positions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, h.session.Store().Positions())
}

// History handles GET /account/history
// @Summary      Trade history
// @Tags         account
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /account/history [get]
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	history, count := h.session.Store().History()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": history,
		"count":   count,
	})
}

// SpotBuy handles POST /trade/spot/buy
// @Summary      Submit spot buy
// @Description  Amount is quote-denominated and clamped to the wallet's quote balance
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        request  body      model.TradeRequest  true  "Trade parameters"
// @Success      200      {object}  model.TradeResponse
// @Router       /trade/spot/buy [post]
func (h *SessionHandler) SpotBuy(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, model.TradeSideSpotBuy)
}

// SpotSell handles POST /trade/spot/sell
// @Summary      Submit spot sell
// @Description  Amount is instrument-denominated and clamped to the wallet's instrument balance
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        request  body      model.TradeRequest  true  "Trade parameters"
// @Success      200      {object}  model.TradeResponse
// @Router       /trade/spot/sell [post]
func (h *SessionHandler) SpotSell(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, model.TradeSideSpotSell)
}

// MarginBuy handles POST /trade/margin/buy
// @Summary      Submit margin buy
// @Description  Margin is the quote-denominated collateral, amount the notional
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        request  body      model.TradeRequest  true  "Trade parameters"
// @Success      200      {object}  model.TradeResponse
// @Router       /trade/margin/buy [post]
func (h *SessionHandler) MarginBuy(w http.ResponseWriter, r *http.Request) {
	h.trade(w, r, model.TradeSideMarginBuy)
}

// trade runs one submission and reports the sentinel result. A failed trade
// is a normal 200 with success=false: the UI shows a transient notification
// and the user decides whether to resubmit.
func (h *SessionHandler) trade(w http.ResponseWriter, r *http.Request, side model.TradeSide) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Mint == "" || req.Amount == "" {
		writeError(w, http.StatusBadRequest, errors.New("mint and amount are required"))
		return
	}

	var (
		txID string
		ok   bool
	)
	switch side {
	case model.TradeSideSpotBuy:
		txID, ok = h.session.SubmitSpotBuy(r.Context(), req.Mint, req.Amount)
	case model.TradeSideSpotSell:
		txID, ok = h.session.SubmitSpotSell(r.Context(), req.Mint, req.Amount)
	case model.TradeSideMarginBuy:
		if req.Margin == "" {
			writeError(w, http.StatusBadRequest, errors.New("margin is required"))
			return
		}
		txID, ok = h.session.SubmitMarginBuy(r.Context(), req.Mint, req.Margin, req.Amount)
	}

	writeJSON(w, http.StatusOK, model.TradeResponse{Success: ok, TxID: txID})
}

// resolvePassword prefers the request's password and falls back to the one
// prompted at startup (PROMPT_WALLET_PASSWORD).
func resolvePassword(fromRequest string) ([]byte, error) {
	if fromRequest != "" {
		return []byte(fromRequest), nil
	}
	password, err := config.GetWalletPasswordBytes()
	if err != nil {
		return nil, errors.New("password is required")
	}
	return password, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}
