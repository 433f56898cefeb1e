package wallet

import (
	"context"
	"log/slog"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/tstocks/client-go/internal/client"
	"github.com/tstocks/client-go/internal/model"
)

// balanceSource is the slice of the chain connection reconciliation needs.
type balanceSource interface {
	NativeBalance(ctx context.Context, owner string) (uint64, error)
	TokenBalance(ctx context.Context, owner, mint string) (uint64, error)
}

// priceSource is the slice of the price feed reconciliation needs.
type priceSource interface {
	GetPrice(ctx context.Context, mint string) (*client.InstrumentPrice, error)
}

// Reconciler refreshes the wallet's balance and price snapshot from the
// chain and the off-chain feed.
type Reconciler struct {
	chain       balanceSource
	feed        priceSource
	instruments []model.Instrument
	logger      *slog.Logger
}

// NewReconciler creates a reconciler over the fixed instrument registry.
func NewReconciler(chain balanceSource, feed priceSource) *Reconciler {
	return &Reconciler{
		chain:       chain,
		feed:        feed,
		instruments: model.Instruments(),
		logger:      slog.Default().WithGroup("reconcile"),
	}
}

// instrumentResult pairs one instrument's price and balance, fetched
// together so the entry is mutually consistent at fetch time.
type instrumentResult struct {
	price Price
	units uint64
}

// Price is the feed result for one instrument; ok is false when the feed
// had no entry.
type Price struct {
	usd       float64
	change24h float64
	ok        bool
}

// Reconcile produces a fresh balance/price snapshot for the address. An
// empty address (no wallet connected yet) yields (nil, nil): a normal
// outcome, not an error. Individual lookup failures degrade to zero
// balances or omitted price entries; one bad instrument never corrupts the
// snapshot.
func (r *Reconciler) Reconcile(ctx context.Context, address string) (*model.Snapshot, error) {
	if address == "" {
		return nil, nil
	}

	var quoteUnits uint64
	var native instrumentResult
	results := make([]instrumentResult, len(r.instruments))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		units, err := r.chain.TokenBalance(gctx, address, model.QuoteMint)
		if err != nil {
			// No account and transient RPC failure look the same to the
			// view layer: zero until the next pass.
			r.logger.Debug("quote balance lookup failed", "err", err)
			units = 0
		}
		quoteUnits = units
		return nil
	})

	// The fee asset is held, not traded; it gets a balance entry valued via
	// the wrapped-SOL feed price but never a price-list entry.
	g.Go(func() error {
		native = r.fetchPair(gctx, model.NativeMint, model.NativeAsset, func(ctx context.Context) (uint64, error) {
			return r.chain.NativeBalance(ctx, address)
		})
		return nil
	})

	for i, inst := range r.instruments {
		g.Go(func() error {
			results[i] = r.fetchPair(gctx, inst.Mint, inst.Symbol, func(ctx context.Context) (uint64, error) {
				return r.chain.TokenBalance(ctx, address, inst.Mint)
			})
			return nil
		})
	}

	// Tasks never return errors; failures degrade per entry.
	g.Wait()

	snapshot := &model.Snapshot{
		Balances: make([]model.BalanceEntry, 0, len(r.instruments)+2),
		Prices:   make([]model.PriceEntry, 0, len(r.instruments)),
	}

	// Quote asset first, valued 1:1.
	quoteBalance := unitsToFloat(quoteUnits, model.QuoteDecimals)
	snapshot.Balances = append(snapshot.Balances, model.BalanceEntry{
		Asset:    model.QuoteAsset,
		Balance:  quoteBalance,
		USDValue: quoteBalance,
		Units:    quoteUnits,
	})

	nativeBalance := unitsToFloat(native.units, model.NativeDecimals)
	var nativeUSD float64
	if native.price.ok {
		nativeUSD = nativeBalance * native.price.usd
	}
	snapshot.Balances = append(snapshot.Balances, model.BalanceEntry{
		Asset:    model.NativeAsset,
		Balance:  nativeBalance,
		USDValue: nativeUSD,
		Units:    native.units,
	})

	for i, inst := range r.instruments {
		res := results[i]
		balance := unitsToFloat(res.units, inst.Decimals)

		var usdValue float64
		if res.price.ok {
			usdValue = balance * res.price.usd
			snapshot.Prices = append(snapshot.Prices, priceEntry(inst, res.price))
		}

		snapshot.Balances = append(snapshot.Balances, model.BalanceEntry{
			Asset:    inst.Symbol,
			Balance:  balance,
			USDValue: usdValue,
			Units:    res.units,
		})
	}

	return snapshot, nil
}

// fetchPair fetches one asset's price and balance as a concurrent pair: both
// legs are issued together and joined before the result is returned, so the
// entry is mutually consistent at fetch time.
func (r *Reconciler) fetchPair(ctx context.Context, mint, symbol string, balance func(context.Context) (uint64, error)) instrumentResult {
	var res instrumentResult

	priced := make(chan struct{})
	go func() {
		defer close(priced)
		price, err := r.feed.GetPrice(ctx, mint)
		if err != nil {
			r.logger.Debug("price lookup failed", "symbol", symbol, "err", err)
		} else if price != nil {
			res.price = Price{usd: price.USDPrice, change24h: price.PriceChange24h, ok: true}
		}
	}()

	units, err := balance(ctx)
	if err != nil {
		r.logger.Debug("balance lookup failed", "symbol", symbol, "err", err)
		units = 0
	}
	res.units = units

	<-priced
	return res
}

func priceEntry(inst model.Instrument, p Price) model.PriceEntry {
	entry := model.PriceEntry{
		Symbol:    inst.Symbol,
		Price:     p.usd,
		Change24h: p.change24h,
	}
	if prev := p.usd - p.change24h; prev != 0 {
		entry.ChangePercent24h = p.change24h / prev * 100
	}
	return entry
}

func unitsToFloat(units uint64, decimals int) float64 {
	return float64(units) / math.Pow10(decimals)
}
