// Package trade turns trade intents into signed, broadcast transactions via
// the external order-construction API. Every submission is single-shot:
// failures are reported, never retried here.
package trade

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/tstocks/client-go/internal/common"
	"github.com/tstocks/client-go/wallet"
)

// orderSource is the order-construction API surface the submitter needs.
type orderSource interface {
	SpotBuy(ctx context.Context, mint, address, amount string) (string, error)
	SpotSell(ctx context.Context, mint, address, amount string) (string, error)
	MarginBuy(ctx context.Context, mint, address, margin, amount string) (string, error)
}

// ErrNoTransaction means the order API declined to construct a transaction.
// Nothing was signed and nothing was broadcast.
var ErrNoTransaction = errors.New("order API returned no transaction")

// Submitter drives the submit protocol for all trade sides.
type Submitter struct {
	orders orderSource
	logger *slog.Logger
}

// NewSubmitter creates a Submitter over the order-construction API.
func NewSubmitter(orders orderSource) *Submitter {
	return &Submitter{
		orders: orders,
		logger: slog.Default().WithGroup("trade"),
	}
}

// SpotBuy submits a spot buy. quoteAmount is the quote-denominated decimal
// string; availableQuoteUnits is the wallet's known spendable quote balance,
// which the request is clamped to before it reaches the API.
func (s *Submitter) SpotBuy(ctx context.Context, mint, address, quoteAmount string, availableQuoteUnits uint64, signer wallet.Signer) (string, error) {
	units, err := common.QuoteToUnits(quoteAmount)
	if err != nil {
		return "", fmt.Errorf("invalid amount: %w", err)
	}
	units = s.clamp(units, availableQuoteUnits, "spotBuy")

	payload, err := s.orders.SpotBuy(ctx, mint, address, common.UnitsString(units))
	if err != nil {
		return "", err
	}
	return s.dispatch(ctx, payload, signer)
}

// SpotSell submits a spot sell. stockAmount is the instrument-denominated
// decimal string, clamped to the wallet's known instrument balance.
func (s *Submitter) SpotSell(ctx context.Context, mint, address, stockAmount string, availableStockUnits uint64, signer wallet.Signer) (string, error) {
	units, err := common.StockToUnits(stockAmount)
	if err != nil {
		return "", fmt.Errorf("invalid amount: %w", err)
	}
	units = s.clamp(units, availableStockUnits, "spotSell")

	payload, err := s.orders.SpotSell(ctx, mint, address, common.UnitsString(units))
	if err != nil {
		return "", err
	}
	return s.dispatch(ctx, payload, signer)
}

// MarginBuy submits a leveraged buy. marginAmount is the quote-denominated
// collateral (clamped to the quote balance), notionalAmount the position
// size the collateral backs.
func (s *Submitter) MarginBuy(ctx context.Context, mint, address, marginAmount, notionalAmount string, availableQuoteUnits uint64, signer wallet.Signer) (string, error) {
	marginUnits, err := common.QuoteToUnits(marginAmount)
	if err != nil {
		return "", fmt.Errorf("invalid margin: %w", err)
	}
	marginUnits = s.clamp(marginUnits, availableQuoteUnits, "marginBuy")

	notionalUnits, err := common.QuoteToUnits(notionalAmount)
	if err != nil {
		return "", fmt.Errorf("invalid amount: %w", err)
	}

	payload, err := s.orders.MarginBuy(ctx, mint, address, common.UnitsString(marginUnits), common.UnitsString(notionalUnits))
	if err != nil {
		return "", err
	}
	return s.dispatch(ctx, payload, signer)
}

// dispatch deserializes the API payload and hands it to the signing path.
// An absent payload stops the protocol before any signing happens.
func (s *Submitter) dispatch(ctx context.Context, payload string, signer wallet.Signer) (string, error) {
	if payload == "" {
		return "", ErrNoTransaction
	}

	tx, err := decodeTransaction(payload)
	if err != nil {
		return "", err
	}

	txID, err := signer.Submit(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("failed to submit transaction: %w", err)
	}
	return txID, nil
}

// clamp caps the requested units at the wallet's known balance. The reduced
// amount is submitted as-is (best-effort fill, preserved behavior).
func (s *Submitter) clamp(requested, available uint64, side string) uint64 {
	clamped := common.ClampUnits(requested, available)
	if clamped != requested {
		s.logger.Debug("amount clamped to balance",
			"side", side, "requested", requested, "available", available)
	}
	return clamped
}

func decodeTransaction(payload string) (*solana.Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode transaction payload: %w", err)
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize transaction: %w", err)
	}
	return tx, nil
}
