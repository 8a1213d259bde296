package rdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	t "github.com/watchara/quotebot/types"
)

func TestOrderJournal(tt *testing.T) {
	db, err := Connect(":memory:")
	require.NoError(tt, err)

	require.NoError(tt, db.RecordOrder(t.Order{
		RefID:  101,
		Symbol: "BTCUSDT",
		Side:   t.OrderSideBuy,
		Type:   t.OrderTypeLimit,
		Status: t.OrderStatusNew,
		Qty:    0.004,
		Price:  29990.00,
	}))
	require.NoError(tt, db.RecordOrder(t.Order{
		RefID:  102,
		Symbol: "BTCUSDT",
		Side:   t.OrderSideSell,
		Type:   t.OrderTypeLimit,
		Status: t.OrderStatusNew,
		Qty:    0.004,
		Price:  30010.00,
	}))

	open := db.GetOpenOrders("BTCUSDT")
	require.Len(tt, open, 2)

	require.NoError(tt, db.MarkOrderStatus("BTCUSDT", 101, t.OrderStatusCanceled, 1700000000000))

	open = db.GetOpenOrders("BTCUSDT")
	require.Len(tt, open, 1)
	assert.Equal(tt, int64(102), open[0].RefID)

	assert.Empty(tt, db.GetOpenOrders("ETHUSDT"))
}
