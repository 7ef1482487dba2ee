package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	h, m, err := cfg.SummaryClock()
	require.NoError(t, err)
	assert.Equal(t, 17, h)
	assert.Equal(t, 30, m)
	assert.Equal(t, 2*time.Hour, cfg.ExpiryWarning())

	s, ok := cfg.SymbolByName("BankNifty")
	require.True(t, ok)
	assert.Equal(t, "^NSEBANK", s.Ticker)
	_, ok = cfg.SymbolByName("Dow")
	assert.False(t, ok)
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"no symbols":      func(c *Config) { c.Symbols = nil },
		"empty ticker":    func(c *Config) { c.Symbols = []Symbol{{Name: "x"}} },
		"zero cap":        func(c *Config) { c.Trading.MaxDailyTrades = 0 },
		"zero interval":   func(c *Config) { c.Trading.MonitoringInterval = 0 },
		"bad summary":     func(c *Config) { c.Trading.SummaryAt = "25:99" },
		"tp order":        func(c *Config) { c.Trading.TakeProfit2Offset = 10 },
		"zero step":       func(c *Config) { c.Trading.StrikeStep = 0 },
		"negative stop":   func(c *Config) { c.Trading.StopLossOffset = -1 },
		"garbage summary": func(c *Config) { c.Trading.SummaryAt = "evening" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestApplyEnv(t *testing.T) {
	v := viper.New()
	v.Set("BOT_TOKEN", "123:abc")
	v.Set("CHAT_ID", "-100200")
	v.Set("MAX_DAILY_TRADES", 4)
	v.Set("TRADE_INTERVAL", "120")
	v.Set("MONITOR_INTERVAL", "30s")
	v.Set("PRE_EXPIRY_WARNING_HOURS", 1.5)
	v.Set("SUMMARY_TIME", "16:45")
	v.Set("MARKET_PROVIDER", "simulated")

	cfg := Default()
	cfg.applyEnv(v)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(-100200), cfg.Telegram.ChatID)
	assert.Equal(t, 4, cfg.Trading.MaxDailyTrades)
	assert.Equal(t, 120*time.Second, cfg.Trading.GenerationInterval)
	assert.Equal(t, 30*time.Second, cfg.Trading.MonitoringInterval)
	assert.Equal(t, 90*time.Minute, cfg.ExpiryWarning())
	assert.Equal(t, "16:45", cfg.Trading.SummaryAt)
	assert.Equal(t, "simulated", cfg.Market.Provider)
}

func TestApplyEnvBadDurationIgnored(t *testing.T) {
	v := viper.New()
	v.Set("TRADE_INTERVAL", "soon")

	cfg := Default()
	cfg.applyEnv(v)
	assert.Equal(t, 300*time.Second, cfg.Trading.GenerationInterval)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
symbols:
  - name: Nifty50
    ticker: "^NSEI"
trading:
  max_daily_trades: 2
  generation_interval: 10s
  summary_at: "09:05"
`), 0o600))

	cfg := Default()
	require.NoError(t, cfg.loadFile(path))
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Symbols, 1)
	assert.Equal(t, 2, cfg.Trading.MaxDailyTrades)
	assert.Equal(t, 10*time.Second, cfg.Trading.GenerationInterval)
	// не заданное в файле остаётся дефолтным
	assert.Equal(t, 60*time.Second, cfg.Trading.MonitoringInterval)
	assert.Equal(t, 100.0, cfg.Trading.StrikeStep)
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.loadFile(filepath.Join(t.TempDir(), "nope.yaml")))
}
