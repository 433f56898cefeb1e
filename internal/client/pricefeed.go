package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PriceFeedClient is a client for the off-chain instrument price API.
type PriceFeedClient struct {
	baseURL string
	client  *http.Client
}

// NewPriceFeedClient creates a new price feed client.
func NewPriceFeedClient(baseURL string) *PriceFeedClient {
	return &PriceFeedClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// InstrumentPrice is the feed's view of one instrument.
type InstrumentPrice struct {
	USDPrice       float64 `json:"usdPrice"`
	PriceChange24h float64 `json:"priceChange24h"`
	Decimals       int     `json:"decimals"`
}

// GetPrice gets the current USD price for a mint. An instrument the feed
// does not know yields (nil, nil): no price is an expected outcome, the
// caller simply omits the entry.
func (c *PriceFeedClient) GetPrice(ctx context.Context, mint string) (*InstrumentPrice, error) {
	reqURL := fmt.Sprintf("%s?ids=%s", c.baseURL, url.QueryEscape(mint))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build price request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get price: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get price: status %d", resp.StatusCode)
	}

	// Response is a map keyed by mint address.
	var priceResp map[string]InstrumentPrice
	if err := json.NewDecoder(resp.Body).Decode(&priceResp); err != nil {
		return nil, fmt.Errorf("failed to decode price: %w", err)
	}

	entry, ok := priceResp[mint]
	if !ok {
		return nil, nil
	}
	return &entry, nil
}
