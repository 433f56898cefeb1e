package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// Config contains all configuration parameters for the application.
// Note: the wallet password is prompted at runtime and kept in memory -
// use GetWalletPasswordBytes().
type Config struct {
	Port                string `envconfig:"PORT" default:"8080"`
	SolanaRPCURL        string `envconfig:"SOLANA_RPC_URL" default:"https://api.mainnet-beta.solana.com"`
	OrderAPIBaseURL     string `envconfig:"ORDER_API_BASE_URL" default:"https://api.tstock.pro"`
	PriceAPIBaseURL     string `envconfig:"PRICE_API_BASE_URL" default:"https://lite-api.jup.ag/price/v2"`
	AccountAPIBaseURL   string `envconfig:"ACCOUNT_API_BASE_URL" default:"https://api.tstock.pro"`
	StorageDir          string `envconfig:"STORAGE_DIR" default:".tstocks"`
	StorageTag          string `envconfig:"STORAGE_TAG" default:"stocks_"`
	RefreshIntervalSecs int    `envconfig:"REFRESH_INTERVAL_SECONDS" default:"30"`
	RefreshJitterSecs   int    `envconfig:"REFRESH_JITTER_SECONDS" default:"0"`
	PromptPassword      bool   `envconfig:"PROMPT_WALLET_PASSWORD" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetSolanaRPCURL returns Solana RPC URL from configuration
func GetSolanaRPCURL() string {
	return Get().SolanaRPCURL
}

// GetOrderAPIBaseURL returns the order-construction API base URL
func GetOrderAPIBaseURL() string {
	return Get().OrderAPIBaseURL
}

// GetPriceAPIBaseURL returns the price feed API base URL
func GetPriceAPIBaseURL() string {
	return Get().PriceAPIBaseURL
}

// GetAccountAPIBaseURL returns the account/position-history API base URL
func GetAccountAPIBaseURL() string {
	return Get().AccountAPIBaseURL
}

// GetStorageDir returns the directory used for client-side key-value storage
func GetStorageDir() string {
	return Get().StorageDir
}

// GetStorageTag returns the namespace prefix applied to all storage keys
func GetStorageTag() string {
	return Get().StorageTag
}

// GetRefreshInterval returns the reconciliation interval
func GetRefreshInterval() time.Duration {
	return time.Duration(Get().RefreshIntervalSecs) * time.Second
}

// GetRefreshJitter returns the reconciliation jitter upper bound
func GetRefreshJitter() time.Duration {
	return time.Duration(Get().RefreshJitterSecs) * time.Second
}

var passwordBytes []byte

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, "Enter wallet password: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("password cannot be empty")
	}

	passwordBytes = make([]byte, len(raw))
	copy(passwordBytes, raw)
	clear(raw)
	return nil
}

// GetWalletPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetWalletPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, errors.New("password not set: call PromptForPassword at startup")
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}
