package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"DominanceSentinel/internal/calculator"
	"DominanceSentinel/internal/collector"
	"DominanceSentinel/internal/model"
	"DominanceSentinel/internal/series"
	"DominanceSentinel/internal/strategy"
)

// PairConfig names a pair of CoinGecko asset ids.
type PairConfig struct {
	Name   string `yaml:"name"`
	AssetA string `yaml:"asset_a"`
	AssetB string `yaml:"asset_b"`
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL    string `yaml:"base_url"`
		APIKey     string `yaml:"api_key"`
		VsCurrency string `yaml:"vs_currency"`
		Days       int    `yaml:"days"`
	} `yaml:"data_source"`
	Pairs    []PairConfig `yaml:"pairs"`
	Analysis struct {
		AlignPolicy string `yaml:"align_policy"`
		RSIWindow   int    `yaml:"rsi_window"`
		MACDFast    int    `yaml:"macd_fast"`
		MACDSlow    int    `yaml:"macd_slow"`
		MACDSignal  int    `yaml:"macd_signal"`
		MAShort     int    `yaml:"ma_short"`
		MALong      int    `yaml:"ma_long"`
	} `yaml:"analysis"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Cache struct {
		RedisAddr     string        `yaml:"redis_addr"`
		RedisPassword string        `yaml:"redis_password"`
		RedisDB       int           `yaml:"redis_db"`
		TTL           time.Duration `yaml:"ttl"`
	} `yaml:"cache"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment variable overrides.
// A missing file or .env is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("COINGECKO_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Cache.RedisAddr = v
	}
	if v := os.Getenv("METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("ALIGN_POLICY"); v != "" {
		cfg.Analysis.AlignPolicy = v
	}

	// Defaults
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = collector.DefaultCoinGeckoURL
	}
	if cfg.DataSource.VsCurrency == "" {
		cfg.DataSource.VsCurrency = "usd"
	}
	if cfg.DataSource.Days == 0 {
		cfg.DataSource.Days = 90
	}
	if len(cfg.Pairs) == 0 {
		cfg.Pairs = []PairConfig{{Name: "BTC/ETH", AssetA: "bitcoin", AssetB: "ethereum"}}
	}
	if cfg.Analysis.AlignPolicy == "" {
		cfg.Analysis.AlignPolicy = string(series.AlignByIndex)
	}
	def := calculator.DefaultParams()
	if cfg.Analysis.RSIWindow == 0 {
		cfg.Analysis.RSIWindow = def.RSIWindow
	}
	if cfg.Analysis.MACDFast == 0 {
		cfg.Analysis.MACDFast = def.MACDFast
	}
	if cfg.Analysis.MACDSlow == 0 {
		cfg.Analysis.MACDSlow = def.MACDSlow
	}
	if cfg.Analysis.MACDSignal == 0 {
		cfg.Analysis.MACDSignal = def.MACDSignal
	}
	if cfg.Analysis.MAShort == 0 {
		cfg.Analysis.MAShort = def.MAShort
	}
	if cfg.Analysis.MALong == 0 {
		cfg.Analysis.MALong = def.MALong
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 5 0 * * *"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = collector.DefaultCacheTTL
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/dominance.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if len(c.Pairs) == 0 {
		return fmt.Errorf("at least one pair is required")
	}
	for i, p := range c.Pairs {
		if p.AssetA == "" || p.AssetB == "" {
			return fmt.Errorf("pairs[%d]: asset_a and asset_b are required", i)
		}
		if strings.EqualFold(p.AssetA, p.AssetB) {
			return fmt.Errorf("pairs[%d]: asset_a and asset_b must differ", i)
		}
	}
	if c.DataSource.Days <= 0 {
		return fmt.Errorf("data_source.days must be positive")
	}
	if _, err := series.ParseAlignPolicy(c.Analysis.AlignPolicy); err != nil {
		return fmt.Errorf("analysis.align_policy: %w", err)
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	return nil
}

// Params returns the configured indicator windows.
func (c *Config) Params() calculator.Params {
	return calculator.Params{
		RSIWindow:  c.Analysis.RSIWindow,
		MACDFast:   c.Analysis.MACDFast,
		MACDSlow:   c.Analysis.MACDSlow,
		MACDSignal: c.Analysis.MACDSignal,
		MAShort:    c.Analysis.MAShort,
		MALong:     c.Analysis.MALong,
	}
}

// Options returns the pipeline options. Call Validate first.
func (c *Config) Options() strategy.Options {
	policy, _ := series.ParseAlignPolicy(c.Analysis.AlignPolicy)
	return strategy.Options{Align: policy, Params: c.Params()}
}

// ModelPairs converts the configured pairs. Pairs without a name are labelled A/B.
func (c *Config) ModelPairs() []model.Pair {
	pairs := make([]model.Pair, len(c.Pairs))
	for i, p := range c.Pairs {
		name := p.Name
		if name == "" {
			name = p.AssetA + "/" + p.AssetB
		}
		pairs[i] = model.Pair{Name: name, AssetA: p.AssetA, AssetB: p.AssetB}
	}
	return pairs
}
