package robot

import (
	"fmt"

	"github.com/rs/zerolog/log"

	h "github.com/watchara/quotebot/helper"
	t "github.com/watchara/quotebot/types"
)

// recentOrderLookback bounds the order-history scan when resolving the
// filled quantity of a just-cancelled order
const recentOrderLookback = 10

// CancelAll cancels every open order for the symbol and returns the ids it
// cancelled. A symbol with no open orders is success with an empty set.
func (r *Robot) CancelAll() ([]int64, error) {
	ids, err := r.ex.CancelAllOpenOrders(r.symbol)
	for _, id := range ids {
		r.journalStatus(id, t.OrderStatusCanceled)
	}
	if err != nil {
		return ids, err
	}
	if len(ids) == 0 {
		log.Debug().Str("symbol", r.symbol).Msg("no open orders to cancel")
	} else {
		log.Info().Str("symbol", r.symbol).Ints64("orderIds", ids).Msg("open orders cancelled")
	}
	return ids, nil
}

// ConvertAllLimitToMarket cancels each open order and re-submits its unfilled
// remainder as a market order on the same side. A cancellation that fails has
// raced with a fill and the order is treated as resolved. The call succeeds
// only if every order that still had a remaining quantity was converted; it
// never retries, the caller decides what to do with a partial result.
func (r *Robot) ConvertAllLimitToMarket() error {
	open, err := r.ex.GetOpenOrders(r.symbol)
	if err != nil {
		return err
	}
	if len(open) == 0 {
		log.Info().Str("symbol", r.symbol).Msg("no open orders to convert")
		return nil
	}

	failed := 0
	for _, o := range open {
		if _, err := r.ex.CancelOrder(o); err != nil {
			log.Warn().Err(err).Int64("refID", o.RefID).
				Msg("cannot cancel order, probably it has been filled, skipping")
			continue
		}
		r.journalStatus(o.RefID, t.OrderStatusCanceled)

		recent, err := r.ex.GetRecentOrders(r.symbol, recentOrderLookback)
		if err != nil {
			log.Error().Err(err).Int64("refID", o.RefID).Msg("cannot load recent orders")
			failed++
			continue
		}

		var filled *t.Order
		for i := range recent {
			if recent[i].RefID == o.RefID {
				filled = &recent[i]
				break
			}
		}
		if filled == nil {
			log.Warn().Int64("refID", o.RefID).Int("lookback", recentOrderLookback).
				Msg("order not found within the recent order lookback")
			failed++
			continue
		}

		remaining := h.NormalizeDouble(filled.RemainingQty(), r.cfg.QtyDigits)
		if remaining <= 0 {
			log.Info().Int64("refID", o.RefID).Msg("order already fully filled, nothing to convert")
			continue
		}

		mo := t.Order{
			Symbol: r.symbol,
			Side:   filled.Side,
			Type:   t.OrderTypeMarket,
			Status: t.OrderStatusNew,
			Qty:    remaining,
		}
		exo, err := r.ex.OpenMarketOrder(mo)
		if err != nil || exo == nil {
			log.Error().Err(err).Int64("refID", o.RefID).Float64("qty", remaining).
				Msg("cannot convert remaining quantity to a market order")
			failed++
			continue
		}
		r.journal(*exo)
		log.Info().Int64("refID", o.RefID).Str("side", mo.Side).Float64("qty", remaining).
			Msg("limit order converted to market order")
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d orders not converted", t.ErrPartialReconciliation, failed, len(open))
	}
	return nil
}
