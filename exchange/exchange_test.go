package exchange

import (
	"errors"
	"testing"

	t "github.com/watchara/quotebot/types"
)

func TestResolveSymbol(tt *testing.T) {
	symbol, err := ResolveSymbol("btc", "usdt")
	if err != nil || symbol != "BTCUSDT" {
		tt.Fail()
	}

	symbol, err = ResolveSymbol("BNB", "BUSD")
	if err != nil || symbol != "BNBBUSD" {
		tt.Fail()
	}
}

func TestResolveSymbolBlank(tt *testing.T) {
	if _, err := ResolveSymbol("", "USDT"); !errors.Is(err, t.ErrInvalidPair) {
		tt.Fail()
	}
	if _, err := ResolveSymbol("BTC", "  "); !errors.Is(err, t.ErrInvalidPair) {
		tt.Fail()
	}
}
