package strategy

import (
	"fmt"

	"github.com/watchara/quotebot/config"
	"github.com/watchara/quotebot/strategy/maker"
	t "github.com/watchara/quotebot/types"
)

// Policy builds a paired buy/sell quote from fresh market data and balances
type Policy interface {
	BuildQuote(book *t.OrderBook, ticker *t.Ticker, baseBal t.Balance, quoteBal t.Balance) (*t.Quote, error)
}

// New returns the quoting policy selected by the config
func New(c *config.Config) (Policy, error) {
	switch c.Strategy {
	case t.StrategyFixedSpread:
		return maker.NewFixedSpread(c.Spread, c.QuoteSize, c.PriceDigits, c.QtyDigits), nil
	case t.StrategyPercentSpread:
		return maker.NewPercentSpread(c.SpreadPct, c.AllocationPct, c.PriceDigits, c.QtyDigits), nil
	case t.StrategyPriceDiff:
		return maker.NewPriceDiff(c.PriceDiff, c.BaseQty, c.PriceDigits, c.QtyDigits), nil
	}
	return nil, fmt.Errorf("%w: %q", t.ErrInvalidStrategy, c.Strategy)
}
