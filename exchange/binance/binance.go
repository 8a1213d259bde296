package binance

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	h "github.com/watchara/quotebot/helper"
	t "github.com/watchara/quotebot/types"
)

// Client is a Binance Spot REST client. When dryRun is set, order placement
// goes to the validation-only /order/test endpoint and cancellations are
// answered locally, so a dry-run session never mutates exchange state.
type Client struct {
	baseURL   string
	apiKey    string
	secretKey string
	dryRun    bool
}

// NewSpotClient returns a Binance Spot client
func NewSpotClient(apiKey string, secretKey string, dryRun bool) Client {
	return Client{
		baseURL:   "https://api.binance.com/api/v3",
		apiKey:    apiKey,
		secretKey: secretKey,
		dryRun:    dryRun,
	}
}

// Sign signs a payload with a Binance API secret key
func Sign(payload string, secretKey string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func newHeader(apiKey string) http.Header {
	var header http.Header = make(map[string][]string)
	header.Set("X-MBX-APIKEY", apiKey)
	return header
}

// Build a base query string
func buildBaseQS(payload *strings.Builder, symbol string) {
	fmt.Fprintf(payload, "timestamp=%d&recvWindow=50000&symbol=%s", h.Now13(), symbol)
}

func parseOrder(symbol string, r gjson.Result) t.Order {
	return t.Order{
		RefID:      r.Get("orderId").Int(),
		Symbol:     symbol,
		Side:       r.Get("side").String(),
		Type:       r.Get("type").String(),
		Status:     r.Get("status").String(),
		Qty:        r.Get("origQty").Float(),
		FilledQty:  r.Get("executedQty").Float(),
		Price:      r.Get("price").Float(),
		OpenTime:   r.Get("time").Int(),
		UpdateTime: r.Get("updateTime").Int(),
	}
}

func apiError(r gjson.Result) error {
	if r.Get("code").Int() < 0 {
		return fmt.Errorf("%w: %s", t.ErrOrderRejected, r.Get("msg").String())
	}
	return nil
}

// Public APIs -----------------------------------------------------------------

// GetOrderBook returns an order book (market depth)
func (c Client) GetOrderBook(symbol string, limit int) (*t.OrderBook, error) {
	var url strings.Builder
	fmt.Fprintf(&url, "%s/depth?symbol=%s&limit=%d", c.baseURL, symbol, limit)
	data, err := h.Get(url.String())
	if err != nil {
		return nil, err
	}

	var bids, asks []t.ExOrder
	result := gjson.ParseBytes(data)
	for _, bid := range result.Get("bids").Array() {
		b := bid.Array()
		bids = append(bids, t.ExOrder{
			Price: b[0].Float(),
			Qty:   b[1].Float(),
		})
	}
	for _, ask := range result.Get("asks").Array() {
		a := ask.Array()
		asks = append(asks, t.ExOrder{
			Price: a[0].Float(),
			Qty:   a[1].Float(),
		})
	}
	return &t.OrderBook{
		Symbol: symbol,
		Bids:   bids,
		Asks:   asks,
	}, nil
}

// Get24hTicker returns the rolling 24h ticker of the symbol
func (c Client) Get24hTicker(symbol string) (*t.Ticker, error) {
	var url strings.Builder
	fmt.Fprintf(&url, "%s/ticker/24hr?symbol=%s", c.baseURL, symbol)
	data, err := h.Get(url.String())
	if err != nil {
		return nil, err
	}
	r := gjson.ParseBytes(data)
	return &t.Ticker{
		Symbol:    r.Get("symbol").String(),
		LastPrice: r.Get("lastPrice").Float(),
		Time:      r.Get("closeTime").Int(),
	}, nil
}

// Private APIs ----------------------------------------------------------------

// GetBalance returns the account balance of one asset. An asset that is
// missing from the account response yields a zero balance, not an error.
func (c Client) GetBalance(asset string) (*t.Balance, error) {
	var payload, url strings.Builder
	fmt.Fprintf(&payload, "timestamp=%d&recvWindow=50000", h.Now13())

	signature := Sign(payload.String(), c.secretKey)

	fmt.Fprintf(&url, "%s/account?%s&signature=%s", c.baseURL, payload.String(), signature)
	data, err := h.GetH(url.String(), newHeader(c.apiKey))
	if err != nil {
		return nil, err
	}

	r := gjson.ParseBytes(data)
	if err := apiError(r); err != nil {
		return nil, err
	}

	for _, b := range r.Get("balances").Array() {
		if strings.EqualFold(b.Get("asset").String(), asset) {
			return &t.Balance{
				Asset:  strings.ToUpper(asset),
				Free:   b.Get("free").Float(),
				Locked: b.Get("locked").Float(),
			}, nil
		}
	}
	return &t.Balance{Asset: strings.ToUpper(asset)}, nil
}

func (c Client) placeOrder(o t.Order) (*t.Order, error) {
	var payload, url strings.Builder
	buildBaseQS(&payload, o.Symbol)
	fmt.Fprintf(&payload, "&side=%s&type=%s&quantity=%f", o.Side, o.Type, o.Qty)
	if o.Type == t.OrderTypeLimit {
		fmt.Fprintf(&payload, "&timeInForce=GTC&price=%f", o.Price)
	}

	signature := Sign(payload.String(), c.secretKey)

	endpoint := "order"
	if c.dryRun {
		endpoint = "order/test"
	}
	fmt.Fprintf(&url, "%s/%s?%s&signature=%s", c.baseURL, endpoint, payload.String(), signature)
	data, err := h.Post(url.String(), newHeader(c.apiKey))
	if err != nil {
		return nil, err
	}

	r := gjson.ParseBytes(data)
	if err := apiError(r); err != nil {
		return nil, err
	}

	if c.dryRun {
		// /order/test answers with an empty body on success
		o.Status = t.OrderStatusNew
		o.OpenTime = h.Now13()
		return &o, nil
	}

	status := r.Get("status").String()
	if status != t.OrderStatusNew && status != t.OrderStatusPartiallyFilled && status != t.OrderStatusFilled {
		return nil, fmt.Errorf("%w: status=%s", t.ErrOrderRejected, status)
	}
	o.Status = status
	o.RefID = r.Get("orderId").Int()
	o.OpenTime = r.Get("transactTime").Int()
	price := r.Get("price").Float()
	if price > 0 && o.Price != price {
		o.Price = price
	}
	return &o, nil
}

// OpenLimitOrder sends a limit order to the exchange
func (c Client) OpenLimitOrder(o t.Order) (*t.Order, error) {
	o.Type = t.OrderTypeLimit
	return c.placeOrder(o)
}

// OpenMarketOrder sends a market order to the exchange
func (c Client) OpenMarketOrder(o t.Order) (*t.Order, error) {
	o.Type = t.OrderTypeMarket
	return c.placeOrder(o)
}

// GetOpenOrders returns the open orders of the symbol
func (c Client) GetOpenOrders(symbol string) ([]t.Order, error) {
	var payload, url strings.Builder
	buildBaseQS(&payload, symbol)

	signature := Sign(payload.String(), c.secretKey)

	fmt.Fprintf(&url, "%s/openOrders?%s&signature=%s", c.baseURL, payload.String(), signature)
	data, err := h.GetH(url.String(), newHeader(c.apiKey))
	if err != nil {
		return nil, err
	}

	r := gjson.ParseBytes(data)
	if err := apiError(r); err != nil {
		return nil, err
	}

	var orders []t.Order
	for _, o := range r.Array() {
		orders = append(orders, parseOrder(symbol, o))
	}
	return orders, nil
}

// GetRecentOrders returns the most recent orders of the symbol; active,
// canceled, or filled
func (c Client) GetRecentOrders(symbol string, limit int) ([]t.Order, error) {
	var payload, url strings.Builder
	buildBaseQS(&payload, symbol)
	if limit > 0 {
		fmt.Fprintf(&payload, "&limit=%d", limit)
	}

	signature := Sign(payload.String(), c.secretKey)

	fmt.Fprintf(&url, "%s/allOrders?%s&signature=%s", c.baseURL, payload.String(), signature)
	data, err := h.GetH(url.String(), newHeader(c.apiKey))
	if err != nil {
		return nil, err
	}

	r := gjson.ParseBytes(data)
	if err := apiError(r); err != nil {
		return nil, err
	}

	var orders []t.Order
	for _, o := range r.Array() {
		orders = append(orders, parseOrder(symbol, o))
	}
	return orders, nil
}

// CancelOrder cancels an order on the exchange
func (c Client) CancelOrder(o t.Order) (*t.Order, error) {
	if c.dryRun {
		o.Status = t.OrderStatusCanceled
		return &o, nil
	}

	var payload, url strings.Builder
	buildBaseQS(&payload, o.Symbol)
	fmt.Fprintf(&payload, "&orderId=%d", o.RefID)

	signature := Sign(payload.String(), c.secretKey)

	fmt.Fprintf(&url, "%s/order?%s&signature=%s", c.baseURL, payload.String(), signature)
	data, err := h.Delete(url.String(), newHeader(c.apiKey))
	if err != nil {
		return nil, err
	}

	r := gjson.ParseBytes(data)
	if err := apiError(r); err != nil {
		return nil, err
	}

	status := r.Get("status").String()
	if status != t.OrderStatusCanceled {
		return nil, fmt.Errorf("%w: cancel status=%s", t.ErrOrderRejected, status)
	}
	o.Status = status
	return &o, nil
}

// CancelAllOpenOrders cancels every open order of the symbol one by one and
// returns the ids it cancelled. No open orders is success with an empty set.
func (c Client) CancelAllOpenOrders(symbol string) ([]int64, error) {
	orders, err := c.GetOpenOrders(symbol)
	if err != nil {
		return nil, err
	}

	cancelled := []int64{}
	for _, o := range orders {
		if _, err := c.CancelOrder(o); err != nil {
			return cancelled, err
		}
		cancelled = append(cancelled, o.RefID)
	}
	return cancelled, nil
}
