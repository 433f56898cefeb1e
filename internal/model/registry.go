package model

const (
	// QuoteAsset is the stablecoin every instrument is quoted in.
	QuoteAsset = "USDC"
	// QuoteMint is the USDC mint on Solana mainnet (does not work on devnet/testnet)
	QuoteMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	// QuoteDecimals is the on-chain scale of the quote asset.
	QuoteDecimals = 6
	// StockDecimals is the on-chain scale of every tokenized stock.
	StockDecimals = 8

	// NativeAsset is the chain's fee asset. It is held, never traded here.
	NativeAsset = "SOL"
	// NativeMint is the wrapped-SOL mint the price feed quotes SOL under.
	NativeMint = "So11111111111111111111111111111111111111112"
	// NativeDecimals is the lamport scale of the native asset.
	NativeDecimals = 9
)

// instruments is the fixed tradable-instrument registry. Mint addresses are
// the tokenized-stock SPL mints on mainnet.
var instruments = []Instrument{
	{Symbol: "TSLA", Name: "Tesla", Mint: "XsTSLAvzW29RhKJXnyJBbVU4CwdMykpRZHn66yBxzB5", Decimals: StockDecimals},
	{Symbol: "NVDA", Name: "NVIDIA", Mint: "XsNVDAqkFRQwfTeEsXUBDq2BhnLqUgWvCgMpMzR7bQe", Decimals: StockDecimals},
	{Symbol: "AAPL", Name: "Apple", Mint: "XsAAPLdKUjQzLcyqJgz3TjkYcCViVpVERrmhBpGmZ9t", Decimals: StockDecimals},
	{Symbol: "GOOG", Name: "Alphabet", Mint: "XsGOOGnqmLgJCkKLDnMs2zPqFsWD1TS9DFFyeCPmVEj", Decimals: StockDecimals},
	{Symbol: "AMZN", Name: "Amazon", Mint: "XsAMZNuRUavTkWbxPLpSDs4oHFNqdDfKXuKj4wKQkAv", Decimals: StockDecimals},
	{Symbol: "MSFT", Name: "Microsoft", Mint: "XsMSFTCkjWgGq9AeoZL2VsZKCXqMfGmNWAli6rg6cZt", Decimals: StockDecimals},
}

// Instruments returns the fixed tradable-instrument registry.
func Instruments() []Instrument {
	out := make([]Instrument, len(instruments))
	copy(out, instruments)
	return out
}

// InstrumentByMint looks up a registry entry by its mint address.
func InstrumentByMint(mint string) (Instrument, bool) {
	for _, inst := range instruments {
		if inst.Mint == mint {
			return inst, true
		}
	}
	return Instrument{}, false
}

// InstrumentBySymbol looks up a registry entry by its symbol.
func InstrumentBySymbol(symbol string) (Instrument, bool) {
	for _, inst := range instruments {
		if inst.Symbol == symbol {
			return inst, true
		}
	}
	return Instrument{}, false
}
