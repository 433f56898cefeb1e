package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tstocks/client-go/internal/model"
)

// AccountClient talks to the account/position-history API.
type AccountClient struct {
	baseURL string
	client  *http.Client
}

// NewAccountClient creates a new account API client.
func NewAccountClient(baseURL string) *AccountClient {
	return &AccountClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// AccountInfo is the wholesale account view: current open positions and the
// settled trade history. Consumers replace their lists with these, they do
// not merge.
type AccountInfo struct {
	Positions []model.Position     `json:"positions"`
	History   []model.HistoryEntry `json:"history"`
	Count     int                  `json:"count"`
}

// GetAccountInfo fetches positions and history for a wallet address.
func (c *AccountClient) GetAccountInfo(ctx context.Context, address string) (*AccountInfo, error) {
	reqURL := fmt.Sprintf("%s/account?address=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build account request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("account API returned status %d", resp.StatusCode)
	}

	var info AccountInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode account info: %w", err)
	}
	return &info, nil
}
