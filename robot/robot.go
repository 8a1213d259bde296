// Package robot drives the quoting strategy: on every tick it clears resting
// orders, snapshots the market, asks the policy for a quote, gates it on
// expected profit, and places the paired limit orders.
package robot

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/watchara/quotebot/config"
	"github.com/watchara/quotebot/exchange"
	h "github.com/watchara/quotebot/helper"
	"github.com/watchara/quotebot/rdb"
	"github.com/watchara/quotebot/strategy"
	t "github.com/watchara/quotebot/types"
)

const orderBookDepth = 5

type Robot struct {
	ex     exchange.Repository
	st     strategy.Policy
	db     *rdb.DB
	cfg    *config.Config
	symbol string
}

func New(ex exchange.Repository, st strategy.Policy, db *rdb.DB, cfg *config.Config) *Robot {
	return &Robot{ex: ex, st: st, db: db, cfg: cfg}
}

// Run executes the tick loop until the configured tick limit is reached.
// The only fatal startup condition is a pair that does not resolve to a
// symbol; any error inside a tick is logged, answered with a best-effort
// reconciliation, and the loop moves on.
func (r *Robot) Run() error {
	symbol, err := exchange.ResolveSymbol(r.cfg.BaseAsset, r.cfg.QuoteAsset)
	if err != nil {
		log.Error().Err(err).Msg("cannot resolve trading symbol, exiting")
		return err
	}
	r.symbol = symbol

	log.Info().
		Str("symbol", symbol).
		Str("strategy", r.cfg.Strategy).
		Int64("tickIntervalSec", r.cfg.TickIntervalSec).
		Int64("maxTicks", r.cfg.MaxTicks).
		Float64("profitMin", r.cfg.ProfitMin).
		Bool("dryRun", r.cfg.DryRun).
		Msg("starting quoting robot")

	if r.db != nil {
		if leftovers := r.db.GetOpenOrders(symbol); len(leftovers) > 0 {
			log.Warn().Int("count", len(leftovers)).
				Msg("journal has orders still marked open from a previous run, first reconciliation will clear them")
		}
	}

	interval := time.Duration(r.cfg.TickIntervalSec) * time.Second

	for tick := int64(1); ; tick++ {
		if r.cfg.MaxTicks > 0 && tick > r.cfg.MaxTicks {
			log.Info().Int64("maxTicks", r.cfg.MaxTicks).Msg("tick stop limit reached, exiting")
			if _, err := r.CancelAll(); err != nil {
				log.Error().Err(err).Msg("final cancel-all failed")
			}
			log.Info().Msg("stopped")
			return nil
		}

		if err := r.runTick(tick); err != nil {
			log.Error().Err(err).Int64("tick", tick).Msg("tick failed, reconciling open orders")
			r.recoverTick()
		}

		time.Sleep(interval)
	}
}

func (r *Robot) runTick(tick int64) error {
	log.Info().Int64("tick", tick).Msg("start of new tick")

	if _, err := r.CancelAll(); err != nil {
		return err
	}

	book, err := r.ex.GetOrderBook(r.symbol, orderBookDepth)
	if err != nil {
		return err
	}
	ticker, err := r.ex.Get24hTicker(r.symbol)
	if err != nil {
		return err
	}
	baseBal, err := r.ex.GetBalance(r.cfg.BaseAsset)
	if err != nil {
		return err
	}
	quoteBal, err := r.ex.GetBalance(r.cfg.QuoteAsset)
	if err != nil {
		return err
	}

	q, err := r.st.BuildQuote(book, ticker, *baseBal, *quoteBal)
	if err != nil {
		return err
	}

	log.Info().
		Float64("buyPrice", q.BuyPrice).
		Float64("marketPrice", q.MarketPrice).
		Float64("sellPrice", q.SellPrice).
		Float64("refPrice", q.RefPrice).
		Float64("qty", q.BuyQty).
		Msg("order params")
	log.Info().
		Float64("sellingCost", q.SellingCost).
		Float64("buyingCost", q.BuyingCost).
		Float64("fees", q.Fees).
		Float64("profit", q.Profit).
		Str("quote", r.cfg.QuoteAsset).
		Msg("profitability")

	if q.Profit <= r.cfg.ProfitMin {
		log.Warn().
			Float64("profit", q.Profit).
			Float64("profitMin", r.cfg.ProfitMin).
			Msg("not enough profit to place the orders, skipping")
		return nil
	}

	r.PlaceQuote(q, *baseBal, *quoteBal)
	return nil
}

// recoverTick answers a failed tick with a best-effort reconciliation so no
// one-sided quote is left resting until the next iteration
func (r *Robot) recoverTick() {
	if r.cfg.ReconcileMode == t.ReconcileConvert {
		if err := r.ConvertAllLimitToMarket(); err != nil {
			log.Error().Err(err).Msg("limit-to-market conversion failed")
		}
		return
	}
	if _, err := r.CancelAll(); err != nil {
		log.Error().Err(err).Msg("cancel-all failed")
	}
}

func (r *Robot) journal(o t.Order) {
	if r.db == nil {
		return
	}
	if err := r.db.RecordOrder(o); err != nil {
		log.Error().Err(err).Int64("refID", o.RefID).Msg("cannot journal order")
	}
}

func (r *Robot) journalStatus(refID int64, status string) {
	if r.db == nil || refID == 0 {
		return
	}
	if err := r.db.MarkOrderStatus(r.symbol, refID, status, h.Now13()); err != nil {
		log.Error().Err(err).Int64("refID", refID).Msg("cannot update journal order")
	}
}
