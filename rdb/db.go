package rdb

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/watchara/quotebot/types"
)

// DB journals the orders this bot has placed, cancelled, or converted. It
// records only the bot's own commands, never exchange-side fills.
type DB struct {
	db *gorm.DB
}

// Connect opens the SQLite database and migrates the orders table
func Connect(dbName string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&types.Order{}); err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

// RecordOrder performs SQL insert on the table orders
func (d *DB) RecordOrder(order types.Order) error {
	return d.db.Create(&order).Error
}

// MarkOrderStatus updates the journal status of the order with the exchange id
func (d *DB) MarkOrderStatus(symbol string, refID int64, status string, updateTime int64) error {
	return d.db.Model(&types.Order{}).
		Where("symbol = ? AND ref_id = ?", symbol, refID).
		Updates(map[string]interface{}{"status": status, "update_time": updateTime}).Error
}

// GetOpenOrders returns journal rows still marked open for the symbol
func (d *DB) GetOpenOrders(symbol string) []types.Order {
	var orders []types.Order
	d.db.Where("symbol = ? AND status IN ?", symbol,
		[]string{types.OrderStatusNew, types.OrderStatusPartiallyFilled}).Find(&orders)
	return orders
}
