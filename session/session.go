package session

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/tstocks/client-go/internal/client"
	"github.com/tstocks/client-go/internal/model"
	"github.com/tstocks/client-go/wallet"
)

// reconcileSource produces balance/price snapshots.
type reconcileSource interface {
	Reconcile(ctx context.Context, address string) (*model.Snapshot, error)
}

// accountSource returns positions and history for an address.
type accountSource interface {
	GetAccountInfo(ctx context.Context, address string) (*client.AccountInfo, error)
}

// tradeSource drives the trade submission protocol.
type tradeSource interface {
	SpotBuy(ctx context.Context, mint, address, quoteAmount string, availableQuoteUnits uint64, signer wallet.Signer) (string, error)
	SpotSell(ctx context.Context, mint, address, stockAmount string, availableStockUnits uint64, signer wallet.Signer) (string, error)
	MarginBuy(ctx context.Context, mint, address, marginAmount, notionalAmount string, availableQuoteUnits uint64, signer wallet.Signer) (string, error)
}

// Deps wires a Session to its collaborators.
type Deps struct {
	Store      *Store
	Wallets    *wallet.Manager
	Reconciler reconcileSource
	Accounts   accountSource
	Trades     tradeSource
	Conn       wallet.Broadcaster
	Interval   time.Duration
	Jitter     time.Duration
}

// Session is the orchestration layer: the only component that mutates the
// store, and the owner of the periodic refresh loop.
type Session struct {
	store      *Store
	wallets    *wallet.Manager
	reconciler reconcileSource
	accounts   accountSource
	trades     tradeSource
	conn       wallet.Broadcaster
	interval   time.Duration
	jitter     time.Duration
	logger     *slog.Logger

	mu  sync.Mutex
	ext *wallet.ExtensionSigner
}

// New creates a Session. Interval defaults to 30 seconds.
func New(deps Deps) *Session {
	interval := deps.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Session{
		store:      deps.Store,
		wallets:    deps.Wallets,
		reconciler: deps.Reconciler,
		accounts:   deps.Accounts,
		trades:     deps.Trades,
		conn:       deps.Conn,
		interval:   interval,
		jitter:     deps.Jitter,
		logger:     slog.Default().WithGroup("session"),
	}
}

// Store exposes the state container for read access.
func (s *Session) Store() *Store {
	return s.store
}

// ConnectLocal establishes (or restores) the local wallet identity and runs
// a first refresh. A refresh failure does not fail the connect; the next
// timer pass retries.
func (s *Session) ConnectLocal(ctx context.Context) (*model.WalletInfo, error) {
	info, err := s.wallets.InitializeOrRestoreLocal()
	if err != nil {
		return nil, err
	}
	s.setExtension(nil)
	s.store.SetWallet(info)
	s.refreshQuietly(ctx)
	return info, nil
}

// ConnectExtension installs a browser-extension identity. The send callback
// is the extension's opaque sign-and-broadcast capability.
func (s *Session) ConnectExtension(ctx context.Context, address string, send wallet.SendFunc) *model.WalletInfo {
	info := wallet.ExtensionIdentity(address)
	s.setExtension(wallet.NewExtensionSigner(send))
	s.store.SetWallet(info)
	s.refreshQuietly(ctx)
	return info
}

// ImportSeed replaces the stored wallet with one derived from seed.
func (s *Session) ImportSeed(ctx context.Context, seed []byte) (*model.WalletInfo, error) {
	info, err := s.wallets.Import(seed)
	if err != nil {
		return nil, err
	}
	s.setExtension(nil)
	s.store.SetWallet(info)
	s.refreshQuietly(ctx)
	return info, nil
}

// Disconnect drops the session identity and its per-wallet state. The
// stored secret stays put so a later connect restores the same wallet.
func (s *Session) Disconnect() {
	s.setExtension(nil)
	s.store.ClearWallet()
}

// Forget disconnects and wipes the stored secret.
func (s *Session) Forget() {
	s.wallets.Release()
	s.Disconnect()
}

// ExportEncrypted returns the encrypted backup envelope of the stored key.
func (s *Session) ExportEncrypted(password []byte) (string, error) {
	return s.wallets.ExportEncrypted(password)
}

// RestoreEncrypted installs a wallet from an encrypted backup envelope.
func (s *Session) RestoreEncrypted(ctx context.Context, password []byte, blob string) (*model.WalletInfo, error) {
	info, err := s.wallets.RestoreEncrypted(password, blob)
	if err != nil {
		return nil, err
	}
	s.setExtension(nil)
	s.store.SetWallet(info)
	s.refreshQuietly(ctx)
	return info, nil
}

// ReceiveQR renders the connected wallet's receive address as a QR code.
func (s *Session) ReceiveQR() (string, error) {
	w := s.store.Wallet()
	if w == nil {
		return "", nil
	}
	return s.wallets.ReceiveQR(w.Address)
}

// Refresh runs one reconciliation pass and an account refresh. Partial
// failures leave the previous state in place for the affected lists.
func (s *Session) Refresh(ctx context.Context) error {
	w := s.store.Wallet()
	if w == nil {
		return nil
	}

	snap, err := s.reconciler.Reconcile(ctx, w.Address)
	if err != nil {
		return err
	}
	s.store.ApplySnapshot(snap)

	if s.accounts != nil {
		info, err := s.accounts.GetAccountInfo(ctx, w.Address)
		if err != nil {
			s.logger.Debug("account refresh failed", "err", err)
		} else if info != nil {
			// Clear-then-repopulate: the API view replaces ours wholesale.
			s.store.ReplacePositions(info.Positions)
			s.store.ReplaceHistory(info.History, info.Count)
		}
	}
	return nil
}

// Run refreshes immediately and then on every interval tick (plus optional
// jitter) until ctx is cancelled. Cancellation stops the timer; an in-flight
// pass finishes and its result is simply the last applied.
func (s *Session) Run(ctx context.Context) {
	s.refreshQuietly(ctx)

	timer := time.NewTimer(s.nextInterval())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.refreshQuietly(ctx)
			timer.Reset(s.nextInterval())
		}
	}
}

// SubmitSpotBuy submits a spot buy and reports success as a sentinel pair.
// No error from the lower layers escapes to the caller.
func (s *Session) SubmitSpotBuy(ctx context.Context, mint, quoteAmount string) (string, bool) {
	w, signer, ok := s.signingContext()
	if !ok {
		return "", false
	}

	quoteUnits := s.balanceUnits(model.QuoteAsset)
	txID, err := s.trades.SpotBuy(ctx, mint, w.Address, quoteAmount, quoteUnits, signer)
	if err != nil {
		s.logger.Warn("spot buy failed", "mint", mint, "err", err)
		return "", false
	}

	s.recordOrder(mint, model.TradeSideSpotBuy, quoteAmount, txID)
	return txID, true
}

// SubmitSpotSell submits a spot sell; amount is instrument-denominated.
func (s *Session) SubmitSpotSell(ctx context.Context, mint, stockAmount string) (string, bool) {
	w, signer, ok := s.signingContext()
	if !ok {
		return "", false
	}

	var stockUnits uint64
	if inst, found := model.InstrumentByMint(mint); found {
		stockUnits = s.balanceUnits(inst.Symbol)
	}

	txID, err := s.trades.SpotSell(ctx, mint, w.Address, stockAmount, stockUnits, signer)
	if err != nil {
		s.logger.Warn("spot sell failed", "mint", mint, "err", err)
		return "", false
	}

	s.recordOrder(mint, model.TradeSideSpotSell, stockAmount, txID)
	return txID, true
}

// SubmitMarginBuy submits a leveraged buy backed by quote collateral.
func (s *Session) SubmitMarginBuy(ctx context.Context, mint, marginAmount, notionalAmount string) (string, bool) {
	w, signer, ok := s.signingContext()
	if !ok {
		return "", false
	}

	quoteUnits := s.balanceUnits(model.QuoteAsset)
	txID, err := s.trades.MarginBuy(ctx, mint, w.Address, marginAmount, notionalAmount, quoteUnits, signer)
	if err != nil {
		s.logger.Warn("margin buy failed", "mint", mint, "err", err)
		return "", false
	}

	s.recordOrder(mint, model.TradeSideMarginBuy, notionalAmount, txID)
	return txID, true
}

func (s *Session) signingContext() (*model.WalletInfo, wallet.Signer, bool) {
	w := s.store.Wallet()
	if w == nil {
		s.logger.Warn("trade rejected: no wallet connected")
		return nil, nil, false
	}

	s.mu.Lock()
	ext := s.ext
	s.mu.Unlock()

	signer, err := wallet.SignerFor(w, s.conn, ext)
	if err != nil {
		s.logger.Warn("trade rejected: no signing path", "err", err)
		return nil, nil, false
	}
	return w, signer, true
}

func (s *Session) balanceUnits(asset string) uint64 {
	entry, ok := s.store.Balance(asset)
	if !ok {
		return 0
	}
	return entry.Units
}

func (s *Session) recordOrder(mint string, side model.TradeSide, amount, txID string) {
	symbol := mint
	if inst, ok := model.InstrumentByMint(mint); ok {
		symbol = inst.Symbol
	}
	s.store.RecordOrder(model.OrderRecord{
		Symbol:    symbol,
		Side:      side,
		Amount:    amount,
		TxID:      txID,
		Timestamp: time.Now(),
	})
}

func (s *Session) refreshQuietly(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Debug("refresh failed", "err", err)
	}
}

func (s *Session) nextInterval() time.Duration {
	if s.jitter <= 0 {
		return s.interval
	}
	return s.interval + time.Duration(rand.Int63n(int64(s.jitter)))
}

func (s *Session) setExtension(ext *wallet.ExtensionSigner) {
	s.mu.Lock()
	s.ext = ext
	s.mu.Unlock()
}
