package binance

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	t "github.com/watchara/quotebot/types"
)

const symbol = "BTCUSDT"

func newTestClient(baseURL string, dryRun bool) Client {
	return Client{
		baseURL:   baseURL,
		apiKey:    "test-key",
		secretKey: "test-secret",
		dryRun:    dryRun,
	}
}

func serve(tt *testing.T, routes map[string]any) *httptest.Server {
	tt.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		data, err := json.Marshal(body)
		require.NoError(tt, err)
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	}))
	tt.Cleanup(srv.Close)
	return srv
}

func TestSign(tt *testing.T) {
	// reference vector from the Binance API docs
	payload := "symbol=LTCBTC&side=BUY&type=LIMIT&timeInForce=GTC&quantity=1&price=0.1&recvWindow=5000&timestamp=1499827319559"
	secret := "NhqPtmdSJYdKjVHjA7PZj4Mge3R5YNiP1e3UZjInClVN65XAbvqqM6A7H5fATj0j"
	assert.Equal(tt,
		"c8db56825ae71d6d79447849e617115f4a920fa2acdcab2b053c4b2838bd6b71",
		Sign(payload, secret))
}

func TestGetOrderBook(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/depth": map[string]any{
			"bids": [][]string{{"29950.00", "1.5"}, {"29940.00", "2.0"}},
			"asks": [][]string{{"30050.00", "0.8"}, {"30060.00", "1.1"}},
		},
	})

	book, err := newTestClient(srv.URL, false).GetOrderBook(symbol, 5)
	require.NoError(tt, err)
	require.Len(tt, book.Bids, 2)
	require.Len(tt, book.Asks, 2)
	assert.Equal(tt, 29950.00, book.Bids[0].Price)
	assert.Equal(tt, 1.5, book.Bids[0].Qty)
	assert.Equal(tt, 30050.00, book.Asks[0].Price)
}

func TestGet24hTicker(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/ticker/24hr": map[string]any{
			"symbol":    symbol,
			"lastPrice": "30001.50",
			"closeTime": 1700000000000,
		},
	})

	ticker, err := newTestClient(srv.URL, false).Get24hTicker(symbol)
	require.NoError(tt, err)
	assert.Equal(tt, symbol, ticker.Symbol)
	assert.Equal(tt, 30001.50, ticker.LastPrice)
}

func TestGetBalance(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/account": map[string]any{
			"balances": []map[string]string{
				{"asset": "BTC", "free": "0.5", "locked": "0.1"},
				{"asset": "USDT", "free": "1000", "locked": "0"},
			},
		},
	})

	c := newTestClient(srv.URL, false)

	balance, err := c.GetBalance("btc")
	require.NoError(tt, err)
	assert.Equal(tt, "BTC", balance.Asset)
	assert.Equal(tt, 0.5, balance.Free)
	assert.Equal(tt, 0.1, balance.Locked)
	assert.Equal(tt, 0.6, balance.Total())
}

func TestGetBalanceAbsentAsset(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/account": map[string]any{
			"balances": []map[string]string{
				{"asset": "BTC", "free": "0.5", "locked": "0.1"},
			},
		},
	})

	balance, err := newTestClient(srv.URL, false).GetBalance("BNB")
	require.NoError(tt, err)
	assert.Equal(tt, "BNB", balance.Asset)
	assert.Zero(tt, balance.Free)
	assert.Zero(tt, balance.Locked)
}

func TestOpenLimitOrder(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/order": map[string]any{
			"orderId":      123456,
			"status":       "NEW",
			"price":        "29990.00",
			"transactTime": 1700000000000,
		},
	})

	order, err := newTestClient(srv.URL, false).OpenLimitOrder(t.Order{
		Symbol: symbol,
		Side:   t.OrderSideBuy,
		Qty:    0.004,
		Price:  29990.00,
	})
	require.NoError(tt, err)
	assert.Equal(tt, int64(123456), order.RefID)
	assert.Equal(tt, t.OrderStatusNew, order.Status)
	assert.Equal(tt, t.OrderTypeLimit, order.Type)
}

func TestOpenLimitOrderRejected(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/order": map[string]any{
			"code": -2010,
			"msg":  "Account has insufficient balance for requested action.",
		},
	})

	_, err := newTestClient(srv.URL, false).OpenLimitOrder(t.Order{
		Symbol: symbol,
		Side:   t.OrderSideBuy,
		Qty:    0.004,
		Price:  29990.00,
	})
	assert.True(tt, errors.Is(err, t.ErrOrderRejected))
}

func TestOpenLimitOrderDryRun(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/order/test": map[string]any{},
	})

	order, err := newTestClient(srv.URL, true).OpenLimitOrder(t.Order{
		Symbol: symbol,
		Side:   t.OrderSideSell,
		Qty:    0.004,
		Price:  30010.00,
	})
	require.NoError(tt, err)
	assert.Equal(tt, t.OrderStatusNew, order.Status)
	assert.Zero(tt, order.RefID)
}

func TestCancelAllOpenOrders(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/openOrders": []map[string]any{
			{"orderId": 1, "side": "BUY", "type": "LIMIT", "status": "NEW", "origQty": "0.004", "price": "29990.00"},
			{"orderId": 2, "side": "SELL", "type": "LIMIT", "status": "NEW", "origQty": "0.004", "price": "30010.00"},
		},
		"/order": map[string]any{"status": "CANCELED"},
	})

	ids, err := newTestClient(srv.URL, false).CancelAllOpenOrders(symbol)
	require.NoError(tt, err)
	assert.Equal(tt, []int64{1, 2}, ids)
}

func TestCancelAllOpenOrdersEmpty(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/openOrders": []map[string]any{},
	})

	ids, err := newTestClient(srv.URL, false).CancelAllOpenOrders(symbol)
	require.NoError(tt, err)
	assert.Empty(tt, ids)
}

func TestGetRecentOrders(tt *testing.T) {
	srv := serve(tt, map[string]any{
		"/allOrders": []map[string]any{
			{"orderId": 7, "side": "BUY", "type": "LIMIT", "status": "FILLED", "origQty": "0.004", "executedQty": "0.004", "price": "29990.00"},
			{"orderId": 8, "side": "SELL", "type": "LIMIT", "status": "PARTIALLY_FILLED", "origQty": "0.004", "executedQty": "0.001", "price": "30010.00"},
		},
	})

	orders, err := newTestClient(srv.URL, false).GetRecentOrders(symbol, 10)
	require.NoError(tt, err)
	require.Len(tt, orders, 2)
	assert.Equal(tt, 0.0, orders[0].RemainingQty())
	assert.InDelta(tt, 0.003, orders[1].RemainingQty(), 1e-9)
}
