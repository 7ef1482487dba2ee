package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDir         = "configs/"
	defaultConfigFile = "values_local.yaml"
)

// Symbol: индекс под наблюдением: имя группы и тикер провайдера.
type Symbol struct {
	Name   string `yaml:"name"`
	Ticker string `yaml:"ticker"`
}

// Config ...
type Config struct {
	Telegram struct {
		Token  string `yaml:"token"`
		ChatID int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	DB      string `yaml:"db_dsn"`
	Service struct {
		HealthAddr string `yaml:"health_addr"`
	} `yaml:"service"`
	Tracing struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"tracing"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`

	Market struct {
		// yahoo: цены с chart API, simulated: страйк ± случайный шум
		Provider   string        `yaml:"provider"`
		BaseURL    string        `yaml:"base_url"`
		Lookback   string        `yaml:"lookback"`
		Interval   string        `yaml:"interval"`
		RatePerSec float64       `yaml:"rate_per_sec"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"market"`

	Symbols []Symbol `yaml:"symbols"`

	Trading struct {
		Strategy           string        `yaml:"strategy"`
		MaxDailyTrades     int           `yaml:"max_daily_trades"`
		GenerationInterval time.Duration `yaml:"generation_interval"`
		MonitoringInterval time.Duration `yaml:"monitoring_interval"`
		SummaryInterval    time.Duration `yaml:"summary_interval"`
		ExpiryWarningHours float64       `yaml:"expiry_warning_hours"`
		SummaryAt          string        `yaml:"summary_at"` // HH:MM, локальное время
		StrikeStep         float64       `yaml:"strike_step"`
		StopLossOffset     float64       `yaml:"stop_loss_offset"`
		TakeProfit1Offset  float64       `yaml:"take_profit1_offset"`
		TakeProfit2Offset  float64       `yaml:"take_profit2_offset"`
		EntryTolerance     float64       `yaml:"entry_tolerance"`
	} `yaml:"trading"`

	Charts struct {
		Dir string `yaml:"dir"`
	} `yaml:"charts"`
}

// Default: значения по умолчанию (пять индексов NSE/BSE, лимит 10 в день).
func Default() *Config {
	cfg := &Config{}
	cfg.Service.HealthAddr = ":8080"
	cfg.Tracing.Port = 6831
	cfg.Log.Level = "info"

	cfg.Market.Provider = "yahoo"
	cfg.Market.BaseURL = "https://query1.finance.yahoo.com"
	cfg.Market.Lookback = "7d"
	cfg.Market.Interval = "5m"
	cfg.Market.RatePerSec = 2
	cfg.Market.Timeout = 10 * time.Second

	cfg.Symbols = []Symbol{
		{Name: "Nifty50", Ticker: "^NSEI"},
		{Name: "BankNifty", Ticker: "^NSEBANK"},
		{Name: "Sensex", Ticker: "^BSESN"},
		{Name: "Finnifty", Ticker: "^NSEFINNIFTY"},
		{Name: "MidcapNifty", Ticker: "^NSEMDCP"},
	}

	cfg.Trading.Strategy = "bar_direction"
	cfg.Trading.MaxDailyTrades = 10
	cfg.Trading.GenerationInterval = 300 * time.Second
	cfg.Trading.MonitoringInterval = 60 * time.Second
	cfg.Trading.SummaryInterval = 60 * time.Second
	cfg.Trading.ExpiryWarningHours = 2
	cfg.Trading.SummaryAt = "17:30"
	cfg.Trading.StrikeStep = 100
	cfg.Trading.StopLossOffset = 20
	cfg.Trading.TakeProfit1Offset = 50
	cfg.Trading.TakeProfit2Offset = 100
	cfg.Trading.EntryTolerance = 0.1

	cfg.Charts.Dir = "charts"
	return cfg
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = defaultConfigFile
	}
	if err := cfg.loadFile(configDir + configFileName); err != nil {
		return nil, err
	}

	cfg.applyEnv(newEnv())

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile декодирует yaml поверх дефолтов; файла может и не быть.
func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "open config file")
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return errors.Wrapf(err, "decode config file %s", path)
	}
	return nil
}

func newEnv() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

// applyEnv: env сильнее файла.
func (c *Config) applyEnv(v *viper.Viper) {
	if s := firstSet(v, "TELEGRAM_TOKEN", "BOT_TOKEN"); s != "" {
		c.Telegram.Token = s
	}
	if s := firstSet(v, "CHAT_ID", "TELEGRAM_CHAT_ID"); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			c.Telegram.ChatID = id
		}
	}
	if v.IsSet("DATABASE_DSN") {
		c.DB = v.GetString("DATABASE_DSN")
	}
	if v.IsSet("HEALTH_ADDR") {
		c.Service.HealthAddr = v.GetString("HEALTH_ADDR")
	}
	if v.IsSet("JAEGER_HOST") {
		c.Tracing.Host = v.GetString("JAEGER_HOST")
	}
	if v.IsSet("JAEGER_PORT") {
		c.Tracing.Port = v.GetInt("JAEGER_PORT")
	}
	if v.IsSet("LOG_LEVEL") {
		c.Log.Level = v.GetString("LOG_LEVEL")
	}
	if v.IsSet("LOG_FILE") {
		c.Log.File = v.GetString("LOG_FILE")
	}
	if v.IsSet("MARKET_PROVIDER") {
		c.Market.Provider = v.GetString("MARKET_PROVIDER")
	}
	if v.IsSet("MAX_DAILY_TRADES") {
		c.Trading.MaxDailyTrades = v.GetInt("MAX_DAILY_TRADES")
	}
	if d, ok := durationEnv(v, "TRADE_INTERVAL"); ok {
		c.Trading.GenerationInterval = d
	}
	if d, ok := durationEnv(v, "MONITOR_INTERVAL"); ok {
		c.Trading.MonitoringInterval = d
	}
	if v.IsSet("PRE_EXPIRY_WARNING_HOURS") {
		c.Trading.ExpiryWarningHours = v.GetFloat64("PRE_EXPIRY_WARNING_HOURS")
	}
	if v.IsSet("SUMMARY_TIME") {
		c.Trading.SummaryAt = v.GetString("SUMMARY_TIME")
	}
	if v.IsSet("CHARTS_DIR") {
		c.Charts.Dir = v.GetString("CHARTS_DIR")
	}
}

func firstSet(v *viper.Viper, keys ...string) string {
	for _, k := range keys {
		if s := v.GetString(k); s != "" {
			return s
		}
	}
	return ""
}

// durationEnv принимает "300s" и голые секунды "300".
func durationEnv(v *viper.Viper, key string) (time.Duration, bool) {
	if !v.IsSet(key) {
		return 0, false
	}
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second, true
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return d, true
}

func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("config: symbols table is empty")
	}
	for _, s := range c.Symbols {
		if s.Name == "" || s.Ticker == "" {
			return fmt.Errorf("config: symbol with empty name or ticker: %+v", s)
		}
	}
	if c.Trading.MaxDailyTrades <= 0 {
		return fmt.Errorf("config: max_daily_trades must be > 0")
	}
	if c.Trading.GenerationInterval <= 0 || c.Trading.MonitoringInterval <= 0 || c.Trading.SummaryInterval <= 0 {
		return fmt.Errorf("config: intervals must be > 0")
	}
	if _, _, err := c.SummaryClock(); err != nil {
		return err
	}
	t := c.Trading
	if t.StopLossOffset <= 0 || t.TakeProfit1Offset <= 0 || t.TakeProfit2Offset <= t.TakeProfit1Offset {
		return fmt.Errorf("config: offsets must satisfy 0 < sl, 0 < tp1 < tp2")
	}
	if t.StrikeStep <= 0 {
		return fmt.Errorf("config: strike_step must be > 0")
	}
	return nil
}

// SummaryClock разбирает summary_at в (час, минута).
func (c *Config) SummaryClock() (int, int, error) {
	ts, err := time.Parse("15:04", strings.TrimSpace(c.Trading.SummaryAt))
	if err != nil {
		return 0, 0, errors.Wrapf(err, "config: bad summary_at %q", c.Trading.SummaryAt)
	}
	return ts.Hour(), ts.Minute(), nil
}

// ExpiryWarning: окно предупреждения как duration.
func (c *Config) ExpiryWarning() time.Duration {
	return time.Duration(c.Trading.ExpiryWarningHours * float64(time.Hour))
}

// SymbolByName ищет группу по имени.
func (c *Config) SymbolByName(name string) (Symbol, bool) {
	for _, s := range c.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return Symbol{}, false
}
