package types

import (
	"errors"
	"strings"
)

const (
	OrderSideBuy  = "BUY"
	OrderSideSell = "SELL"

	OrderTypeLimit  = "LIMIT"
	OrderTypeMarket = "MARKET"

	OrderStatusNew             = "NEW"
	OrderStatusPartiallyFilled = "PARTIALLY_FILLED"
	OrderStatusFilled          = "FILLED"
	OrderStatusCanceled        = "CANCELED"
	OrderStatusRejected        = "REJECTED"

	StrategyFixedSpread   = "FIXED_SPREAD"
	StrategyPercentSpread = "PERCENT_SPREAD"
	StrategyPriceDiff     = "PRICE_DIFF"

	ReconcileCancel  = "cancel"
	ReconcileConvert = "convert"
)

// FeeRate is a flat taker-fee approximation used for profit estimation
const FeeRate = 0.001

var (
	ErrInvalidPair            = errors.New("invalid pair")
	ErrInvalidStrategy        = errors.New("invalid strategy")
	ErrInvalidPrice           = errors.New("invalid price")
	ErrInsufficientMarketData = errors.New("insufficient market data")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrOrderRejected          = errors.New("order rejected")
	ErrPartialReconciliation  = errors.New("partial reconciliation")
)

// Pair is a base/quote asset pair, e.g. {BTC USDT}
type Pair struct {
	Base  string
	Quote string
}

// Symbol returns the exchange symbol of the pair, e.g. "BTCUSDT"
func (p Pair) Symbol() string {
	return strings.ToUpper(p.Base) + strings.ToUpper(p.Quote)
}

// Ticker is a 24h rolling ticker of a symbol
type Ticker struct {
	Symbol    string
	LastPrice float64
	Time      int64
}

// ExOrder is a price level on the order book
type ExOrder struct {
	Price float64
	Qty   float64
}

// OrderBook holds bids (descending) and asks (ascending) of a symbol
type OrderBook struct {
	Symbol string
	Bids   []ExOrder
	Asks   []ExOrder
}

// Balance is an account balance of a single asset
type Balance struct {
	Asset  string
	Free   float64
	Locked float64
}

func (b Balance) Total() float64 {
	return b.Free + b.Locked
}

// Order is an exchange order, also persisted as a journal row
type Order struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	RefID      int64 `gorm:"index"`
	Symbol     string
	Side       string
	Type       string
	Status     string
	Qty        float64
	FilledQty  float64
	Price      float64
	OpenTime   int64
	UpdateTime int64
}

// RemainingQty returns the unfilled quantity of the order
func (o Order) RemainingQty() float64 {
	return o.Qty - o.FilledQty
}

// Quote is a tick-scoped paired buy/sell quote around the mid price
type Quote struct {
	Symbol      string
	MarketPrice float64
	RefPrice    float64
	BuyPrice    float64
	SellPrice   float64
	BuyQty      float64
	SellQty     float64
	SellingCost float64
	BuyingCost  float64
	Fees        float64
	Profit      float64
}
