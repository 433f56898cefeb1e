package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFeedGetPrice(t *testing.T) {
	const mint = "XsDoVfqeBukxuZHWhdvWHBhgEHjGNst4MLodqsJHzoB"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, mint, r.URL.Query().Get("ids"))
		w.Write([]byte(`{"` + mint + `":{"usdPrice":201.5,"priceChange24h":-3.2,"decimals":8}}`))
	}))
	defer srv.Close()

	price, err := NewPriceFeedClient(srv.URL).GetPrice(context.Background(), mint)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.InDelta(t, 201.5, price.USDPrice, 1e-9)
	assert.InDelta(t, -3.2, price.PriceChange24h, 1e-9)
	assert.Equal(t, 8, price.Decimals)
}

func TestPriceFeedUnknownMintIsAbsence(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	price, err := NewPriceFeedClient(srv.URL).GetPrice(context.Background(), "unknown-mint")
	assert.NoError(t, err)
	assert.Nil(t, price)
}

func TestPriceFeedErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewPriceFeedClient(srv.URL).GetPrice(context.Background(), "m")
	assert.ErrorContains(t, err, "status 429")
}

func TestAccountInfoDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/account", r.URL.Path)
		assert.Equal(t, "addr-1", r.URL.Query().Get("address"))
		w.Write([]byte(`{
			"positions":[{"id":"p1","symbol":"TSLA","side":"long","size":2,"entryPrice":190,"markPrice":200,"leverage":3,"margin":126.6,"pnl":20}],
			"history":[{"id":"h1","symbol":"NVDA","side":"buy","amount":1.5,"price":120,"txId":"sig"}],
			"count":7
		}`))
	}))
	defer srv.Close()

	info, err := NewAccountClient(srv.URL).GetAccountInfo(context.Background(), "addr-1")
	require.NoError(t, err)
	require.NotNil(t, info)
	require.Len(t, info.Positions, 1)
	assert.Equal(t, "TSLA", info.Positions[0].Symbol)
	assert.InDelta(t, 20, info.Positions[0].PnL, 1e-9)
	require.Len(t, info.History, 1)
	assert.Equal(t, "sig", info.History[0].TxID)
	assert.Equal(t, 7, info.Count)
}
