package robot

import (
	"sync"

	"github.com/rs/zerolog/log"

	t "github.com/watchara/quotebot/types"
)

// PlaceQuote submits the buy and sell legs of the quote concurrently and
// waits for both outcomes. Each leg runs a balance pre-check first; a failed
// pre-check skips that leg without touching the exchange, while the other leg
// proceeds independently. If either leg ends up not placed, every resting
// order is cancelled so no one-sided position is left quoting. The window
// between placement and that cancel is an accepted transient risk.
func (r *Robot) PlaceQuote(q *t.Quote, baseBal t.Balance, quoteBal t.Balance) bool {
	var buyOK, sellOK bool
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		buyOK = r.placeLeg(t.OrderSideBuy, q.BuyQty, q.BuyPrice,
			q.BuyPrice*q.BuyQty < quoteBal.Free, quoteBal.Asset)
	}()
	go func() {
		defer wg.Done()
		sellOK = r.placeLeg(t.OrderSideSell, q.SellQty, q.SellPrice,
			baseBal.Free > q.SellQty, baseBal.Asset)
	}()
	wg.Wait()

	if buyOK && sellOK {
		log.Info().Msg("buy and sell orders placed successfully")
		return true
	}

	log.Warn().Bool("buy", buyOK).Bool("sell", sellOK).
		Msg("buy and sell orders not placed successfully, cancelling open orders")
	if _, err := r.CancelAll(); err != nil {
		log.Error().Err(err).Msg("cancel-all after failed placement failed")
	}
	return false
}

func (r *Robot) placeLeg(side string, qty float64, price float64, hasBalance bool, asset string) bool {
	if !hasBalance {
		log.Error().Err(t.ErrInsufficientBalance).
			Str("side", side).
			Str("asset", asset).
			Msg("not enough balance to place the order, leg not submitted")
		return false
	}

	o := t.Order{
		Symbol: r.symbol,
		Side:   side,
		Type:   t.OrderTypeLimit,
		Status: t.OrderStatusNew,
		Qty:    qty,
		Price:  price,
	}
	exo, err := r.ex.OpenLimitOrder(o)
	if err != nil || exo == nil {
		log.Error().Err(err).
			Str("side", side).
			Float64("qty", qty).
			Float64("price", price).
			Msg("exchange rejected the limit order")
		return false
	}

	r.journal(*exo)
	log.Info().
		Str("side", side).
		Int64("refID", exo.RefID).
		Float64("qty", qty).
		Float64("price", price).
		Msg("limit order placed")
	return true
}
