package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	t "github.com/watchara/quotebot/types"
)

func writeConfig(tt *testing.T, content string) string {
	tt.Helper()
	file := filepath.Join(tt.TempDir(), "config.yml")
	require.NoError(tt, os.WriteFile(file, []byte(content), 0o644))
	return file
}

const validYAML = `
apiKey: k
secretKey: s
dbName: quotebot.db
baseAsset: BTC
quoteAsset: USDT
strategy: FIXED_SPREAD
spread: 10
quoteSize: 120
tickIntervalSec: 5
maxTicks: 100
profitMin: 0.1
priceDigits: 2
qtyDigits: 6
dryRun: true
`

func TestLoad(tt *testing.T) {
	c, err := Load(writeConfig(tt, validYAML))
	require.NoError(tt, err)

	assert.Equal(tt, "BTC", c.BaseAsset)
	assert.Equal(tt, t.StrategyFixedSpread, c.Strategy)
	assert.Equal(tt, 10.0, c.Spread)
	assert.Equal(tt, int64(5), c.TickIntervalSec)
	assert.Equal(tt, t.ReconcileCancel, c.ReconcileMode)
	assert.True(tt, c.DryRun)
	assert.Equal(tt, "BTCUSDT", c.Pair().Symbol())
}

func TestLoadUnknownStrategy(tt *testing.T) {
	yml := `
dbName: quotebot.db
baseAsset: BTC
quoteAsset: USDT
strategy: GRID
tickIntervalSec: 5
`
	_, err := Load(writeConfig(tt, yml))
	assert.True(tt, errors.Is(err, t.ErrInvalidStrategy))
}

func TestLoadBlankAsset(tt *testing.T) {
	yml := `
dbName: quotebot.db
baseAsset: ""
quoteAsset: USDT
strategy: FIXED_SPREAD
tickIntervalSec: 5
`
	_, err := Load(writeConfig(tt, yml))
	assert.True(tt, errors.Is(err, t.ErrInvalidPair))
}

func TestLoadZeroInterval(tt *testing.T) {
	yml := `
dbName: quotebot.db
baseAsset: BTC
quoteAsset: USDT
strategy: FIXED_SPREAD
`
	_, err := Load(writeConfig(tt, yml))
	assert.Error(tt, err)
}

func TestLoadEnvOverlay(tt *testing.T) {
	tt.Setenv("BINANCE_API_KEY", "env-key")
	tt.Setenv("BINANCE_SECRET_KEY", "env-secret")

	c, err := Load(writeConfig(tt, validYAML))
	require.NoError(tt, err)
	assert.Equal(tt, "env-key", c.ApiKey)
	assert.Equal(tt, "env-secret", c.SecretKey)
}
