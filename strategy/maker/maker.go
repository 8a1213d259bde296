// Package maker derives symmetric buy/sell quotes around a reference price.
//
// All three policies share the same skeleton: validate the market snapshot,
// pick a reference price, offset it by a half spread, size both legs with the
// same quantity, and estimate the fee-adjusted profit of the round trip. They
// differ only in where the spread and the quantity come from.
package maker

import (
	"fmt"

	h "github.com/watchara/quotebot/helper"
	t "github.com/watchara/quotebot/types"
)

// midPrice returns the rounded mid of the best bid and best ask
func midPrice(book *t.OrderBook, priceDigits int64) (float64, error) {
	if book == nil || len(book.Bids) == 0 || len(book.Asks) == 0 {
		return 0, fmt.Errorf("%w: empty order book side", t.ErrInsufficientMarketData)
	}
	bestBid := h.NormalizeDouble(book.Bids[0].Price, priceDigits)
	bestAsk := h.NormalizeDouble(book.Asks[0].Price, priceDigits)
	mid := h.NormalizeDouble((bestBid+bestAsk)/2, priceDigits)
	if mid <= 0 {
		return 0, fmt.Errorf("%w: mid=%f", t.ErrInvalidPrice, mid)
	}
	return mid, nil
}

// buildQuote assembles a quote and its profitability estimate. Prices and
// quantity must already be rounded; comparing unrounded values against
// exchange-side rounded fills is how paper profits appear.
func buildQuote(symbol string, mid, ref, buyPrice, sellPrice, qty float64) *t.Quote {
	sellingCost := sellPrice * qty
	buyingCost := buyPrice * qty
	fees := (sellingCost + buyingCost) * t.FeeRate
	return &t.Quote{
		Symbol:      symbol,
		MarketPrice: mid,
		RefPrice:    ref,
		BuyPrice:    buyPrice,
		SellPrice:   sellPrice,
		BuyQty:      qty,
		SellQty:     qty,
		SellingCost: sellingCost,
		BuyingCost:  buyingCost,
		Fees:        fees,
		Profit:      sellingCost - buyingCost - fees,
	}
}

// FixedSpread quotes mid ± a fixed quote-coin offset and sizes both legs from
// a fixed quote notional
type FixedSpread struct {
	spread      float64
	quoteSize   float64
	priceDigits int64
	qtyDigits   int64
}

func NewFixedSpread(spread, quoteSize float64, priceDigits, qtyDigits int64) *FixedSpread {
	return &FixedSpread{spread: spread, quoteSize: quoteSize, priceDigits: priceDigits, qtyDigits: qtyDigits}
}

func (s *FixedSpread) BuildQuote(book *t.OrderBook, ticker *t.Ticker, baseBal t.Balance, quoteBal t.Balance) (*t.Quote, error) {
	mid, err := midPrice(book, s.priceDigits)
	if err != nil {
		return nil, err
	}
	buyPrice := h.NormalizeDouble(mid-s.spread, s.priceDigits)
	sellPrice := h.NormalizeDouble(mid+s.spread, s.priceDigits)
	qty := h.NormalizeDouble(s.quoteSize/mid, s.qtyDigits)
	return buildQuote(book.Symbol, mid, refPrice(ticker), buyPrice, sellPrice, qty), nil
}

// PercentSpread quotes mid ± a percentage of the mid price and sizes both
// legs from a percentage of the quote-asset total balance
type PercentSpread struct {
	spreadPct     float64
	allocationPct float64
	priceDigits   int64
	qtyDigits     int64
}

func NewPercentSpread(spreadPct, allocationPct float64, priceDigits, qtyDigits int64) *PercentSpread {
	return &PercentSpread{spreadPct: spreadPct, allocationPct: allocationPct, priceDigits: priceDigits, qtyDigits: qtyDigits}
}

func (s *PercentSpread) BuildQuote(book *t.OrderBook, ticker *t.Ticker, baseBal t.Balance, quoteBal t.Balance) (*t.Quote, error) {
	mid, err := midPrice(book, s.priceDigits)
	if err != nil {
		return nil, err
	}
	halfSpread := mid * s.spreadPct / 100
	buyPrice := h.NormalizeDouble(mid-halfSpread, s.priceDigits)
	sellPrice := h.NormalizeDouble(mid+halfSpread, s.priceDigits)
	notional := quoteBal.Total() * s.allocationPct / 100
	qty := h.NormalizeDouble(notional/mid, s.qtyDigits)
	return buildQuote(book.Symbol, mid, refPrice(ticker), buyPrice, sellPrice, qty), nil
}

// PriceDiff quotes the 24h last trade price ± a fixed difference with a fixed
// base quantity
type PriceDiff struct {
	diff        float64
	baseQty     float64
	priceDigits int64
	qtyDigits   int64
}

func NewPriceDiff(diff, baseQty float64, priceDigits, qtyDigits int64) *PriceDiff {
	return &PriceDiff{diff: diff, baseQty: baseQty, priceDigits: priceDigits, qtyDigits: qtyDigits}
}

func (s *PriceDiff) BuildQuote(book *t.OrderBook, ticker *t.Ticker, baseBal t.Balance, quoteBal t.Balance) (*t.Quote, error) {
	mid, err := midPrice(book, s.priceDigits)
	if err != nil {
		return nil, err
	}
	if ticker == nil || ticker.LastPrice <= 0 {
		return nil, fmt.Errorf("%w: no 24h last price", t.ErrInvalidPrice)
	}
	ref := h.NormalizeDouble(ticker.LastPrice, s.priceDigits)
	buyPrice := h.NormalizeDouble(ref-s.diff, s.priceDigits)
	sellPrice := h.NormalizeDouble(ref+s.diff, s.priceDigits)
	qty := h.NormalizeDouble(s.baseQty, s.qtyDigits)
	return buildQuote(book.Symbol, mid, ref, buyPrice, sellPrice, qty), nil
}

func refPrice(ticker *t.Ticker) float64 {
	if ticker == nil {
		return 0
	}
	return ticker.LastPrice
}
