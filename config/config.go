package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	t "github.com/watchara/quotebot/types"
)

// Config holds the runtime parameters of one bot instance. It is loaded once
// at startup and never mutated afterwards.
type Config struct {
	ApiKey    string
	SecretKey string
	DbName    string `validate:"required"`

	BaseAsset  string `validate:"required,alphanum"`
	QuoteAsset string `validate:"required,alphanum"`
	Strategy   string

	// FIXED_SPREAD: half spread in the quote coin, order size as a quote notional
	Spread    float64 `validate:"gte=0"`
	QuoteSize float64 `validate:"gte=0"`

	// PERCENT_SPREAD: half spread as % of the mid price, size as % of the quote balance
	SpreadPct     float64 `validate:"gte=0,lte=100"`
	AllocationPct float64 `validate:"gte=0,lte=100"`

	// PRICE_DIFF: offset from the 24h last trade price, fixed base quantity
	PriceDiff float64 `validate:"gte=0"`
	BaseQty   float64 `validate:"gte=0"`

	TickIntervalSec int64   `validate:"gt=0"`
	MaxTicks        int64   `validate:"gte=0"`
	ProfitMin       float64 `validate:"gte=0"`
	PriceDigits     int64   `validate:"gte=0"`
	QtyDigits       int64   `validate:"gte=0"`
	ReconcileMode   string  `validate:"oneof=cancel convert"`
	DryRun          bool
	Debug           bool
}

// Pair returns the configured trading pair
func (c *Config) Pair() t.Pair {
	return t.Pair{Base: c.BaseAsset, Quote: c.QuoteAsset}
}

var strategies = map[string]bool{
	t.StrategyFixedSpread:   true,
	t.StrategyPercentSpread: true,
	t.StrategyPriceDiff:     true,
}

// Load reads a YAML config file, overlays API credentials from the
// environment, and validates the result. Unknown strategy names and blank
// assets fail here, before anything touches the exchange.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	c := Config{
		ApiKey:          v.GetString("apiKey"),
		SecretKey:       v.GetString("secretKey"),
		DbName:          v.GetString("dbName"),
		BaseAsset:       v.GetString("baseAsset"),
		QuoteAsset:      v.GetString("quoteAsset"),
		Strategy:        strings.ToUpper(v.GetString("strategy")),
		Spread:          v.GetFloat64("spread"),
		QuoteSize:       v.GetFloat64("quoteSize"),
		SpreadPct:       v.GetFloat64("spreadPct"),
		AllocationPct:   v.GetFloat64("allocationPct"),
		PriceDiff:       v.GetFloat64("priceDiff"),
		BaseQty:         v.GetFloat64("baseQty"),
		TickIntervalSec: v.GetInt64("tickIntervalSec"),
		MaxTicks:        v.GetInt64("maxTicks"),
		ProfitMin:       v.GetFloat64("profitMin"),
		PriceDigits:     v.GetInt64("priceDigits"),
		QtyDigits:       v.GetInt64("qtyDigits"),
		ReconcileMode:   v.GetString("reconcileMode"),
		DryRun:          v.GetBool("dryRun"),
		Debug:           v.GetBool("debug"),
	}

	if key := os.Getenv("BINANCE_API_KEY"); key != "" {
		c.ApiKey = key
	}
	if secret := os.Getenv("BINANCE_SECRET_KEY"); secret != "" {
		c.SecretKey = secret
	}
	if c.ReconcileMode == "" {
		c.ReconcileMode = t.ReconcileCancel
	}

	if strings.TrimSpace(c.BaseAsset) == "" || strings.TrimSpace(c.QuoteAsset) == "" {
		return nil, fmt.Errorf("%w: base=%q quote=%q", t.ErrInvalidPair, c.BaseAsset, c.QuoteAsset)
	}
	if !strategies[c.Strategy] {
		return nil, fmt.Errorf("%w: %q", t.ErrInvalidStrategy, c.Strategy)
	}
	if err := validator.New().Struct(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
