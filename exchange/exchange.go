package exchange

import (
	"fmt"
	"strings"

	t "github.com/watchara/quotebot/types"
)

// Repository is the exchange capability surface the bot consumes
type Repository interface {
	GetOrderBook(symbol string, limit int) (*t.OrderBook, error)
	Get24hTicker(symbol string) (*t.Ticker, error)
	GetBalance(asset string) (*t.Balance, error)
	OpenLimitOrder(o t.Order) (*t.Order, error)
	OpenMarketOrder(o t.Order) (*t.Order, error)
	GetOpenOrders(symbol string) ([]t.Order, error)
	GetRecentOrders(symbol string, limit int) ([]t.Order, error)
	CancelOrder(o t.Order) (*t.Order, error)
	CancelAllOpenOrders(symbol string) ([]int64, error)
}

// ResolveSymbol builds the exchange symbol of a pair, e.g. ("btc","usdt") to
// "BTCUSDT". Both assets must be non-blank.
func ResolveSymbol(base string, quote string) (string, error) {
	if strings.TrimSpace(base) == "" || strings.TrimSpace(quote) == "" {
		return "", fmt.Errorf("%w: base=%q quote=%q", t.ErrInvalidPair, base, quote)
	}
	return t.Pair{Base: base, Quote: quote}.Symbol(), nil
}
