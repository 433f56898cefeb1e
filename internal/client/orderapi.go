package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OrderAPIClient talks to the external order-construction API. The API is
// treated as untrusted and unreliable: a response without a transaction
// payload is a normal failure mode, not an error.
type OrderAPIClient struct {
	baseURL string
	client  *http.Client
}

// NewOrderAPIClient creates a new order-construction API client.
func NewOrderAPIClient(baseURL string) *OrderAPIClient {
	return &OrderAPIClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type orderRequest struct {
	Mint    string `json:"mint"`
	Address string `json:"address"`
	Amount  string `json:"amount"`
	Margin  string `json:"margin,omitempty"`
}

type orderResponse struct {
	Data string `json:"data"`
}

// SpotBuy requests an unsigned spot-buy transaction. amount is the
// quote-denominated integer-unit string.
func (c *OrderAPIClient) SpotBuy(ctx context.Context, mint, address, amount string) (string, error) {
	return c.post(ctx, "/spot/buy", orderRequest{Mint: mint, Address: address, Amount: amount})
}

// SpotSell requests an unsigned spot-sell transaction. amount is the
// instrument-denominated integer-unit string.
func (c *OrderAPIClient) SpotSell(ctx context.Context, mint, address, amount string) (string, error) {
	return c.post(ctx, "/spot/sell", orderRequest{Mint: mint, Address: address, Amount: amount})
}

// MarginBuy requests an unsigned margin-buy transaction. margin is the
// quote-denominated collateral, amount the notional.
func (c *OrderAPIClient) MarginBuy(ctx context.Context, mint, address, margin, amount string) (string, error) {
	return c.post(ctx, "/margin/buy", orderRequest{Mint: mint, Address: address, Amount: amount, Margin: margin})
}

// post returns the base64 transaction payload, or "" when the API declined
// to construct one.
func (c *OrderAPIClient) post(ctx context.Context, path string, body orderRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal order request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call order API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("order API returned status %d", resp.StatusCode)
	}

	var orderResp orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&orderResp); err != nil {
		return "", fmt.Errorf("failed to decode order response: %w", err)
	}

	return orderResp.Data, nil
}
