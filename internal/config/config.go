package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"MarketVision/internal/calculator"
	"MarketVision/internal/dashboard"
	"MarketVision/internal/feed"
	"MarketVision/internal/model"
	"MarketVision/internal/simulator"
)

// DefaultPath is used when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Market struct {
		Symbol      string  `yaml:"symbol"`
		OffsetHours int     `yaml:"utc_offset_hours"`
		SeedPrice   float64 `yaml:"seed_price"`
		WalkStep    float64 `yaml:"walk_step"`
		BandPct     float64 `yaml:"band_pct"`
	} `yaml:"market"`
	Feed struct {
		NewsProbability float64 `yaml:"news_probability"`
		PostProbability float64 `yaml:"post_probability"`
		NewsLimit       int     `yaml:"news_limit"`
		PostLimit       int     `yaml:"post_limit"`
		SkipSeed        bool    `yaml:"skip_seed"`
	} `yaml:"feed"`
	Portfolio model.Portfolio `yaml:"portfolio"`
	Scenario  model.Scenario  `yaml:"scenario"`
	Tax       model.TaxRules  `yaml:"tax"`
	Schedule  struct {
		TickCron  string `yaml:"tick_cron"`
		FetchCron string `yaml:"fetch_cron"`
	} `yaml:"schedule"`
	DataSource struct {
		Enabled      bool          `yaml:"enabled"`
		FetchTimeout time.Duration `yaml:"fetch_timeout"`
		Alpaca       struct {
			APIKey    string `yaml:"api_key"`
			APISecret string `yaml:"api_secret"`
			DataURL   string `yaml:"data_url"`
		} `yaml:"alpaca"`
		NewsAPIKey string   `yaml:"news_api_key"`
		RSSFeeds   []string `yaml:"rss_feeds"`
	} `yaml:"data_source"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		ListenAddr string `yaml:"listen_addr"`
	} `yaml:"http"`
	Log struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"log"`
	Proxy      string `yaml:"proxy"`
	RandomSeed uint64 `yaml:"random_seed"` // 0 = time based
}

// Default returns the configuration used when no file or env override is present.
func Default() *Config {
	cfg := &Config{}

	price := simulator.DefaultConfig()
	cfg.Market.Symbol = price.Symbol
	cfg.Market.OffsetHours = price.OffsetHours
	cfg.Market.SeedPrice = price.SeedPrice
	cfg.Market.WalkStep = price.WalkStep
	cfg.Market.BandPct = price.BandPct

	fc := feed.DefaultConfig()
	cfg.Feed.NewsProbability = fc.NewsProbability
	cfg.Feed.PostProbability = fc.PostProbability
	cfg.Feed.NewsLimit = 20
	cfg.Feed.PostLimit = 10

	cfg.Tax = calculator.DefaultTaxRules()
	cfg.Schedule.TickCron = "@every 1m"
	cfg.Schedule.FetchCron = "@every 1m"
	cfg.DataSource.FetchTimeout = 12 * time.Second
	cfg.HTTP.ListenAddr = ":8080"
	cfg.Log.MaxSizeMB = 10
	cfg.Log.MaxBackups = 3
	return cfg
}

// LoadDotEnv loads .env files into the environment, best effort. Variables
// already set are not overridden.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var errs []error
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("load %s: %w", f, err))
		}
	}
	return errors.Join(errs...)
}

// Load reads config from a YAML file on top of the defaults, then applies
// environment variable overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	envString("SYMBOL", &c.Market.Symbol)
	envString("TICK_CRON", &c.Schedule.TickCron)
	envString("FETCH_CRON", &c.Schedule.FetchCron)
	envString("ALPACA_API_KEY", &c.DataSource.Alpaca.APIKey)
	envString("ALPACA_API_SECRET", &c.DataSource.Alpaca.APISecret)
	envString("NEWS_API_KEY", &c.DataSource.NewsAPIKey)
	envString("HTTPS_PROXY", &c.Proxy)
	envString("SQLITE_PATH", &c.Database.SQLitePath)
	envString("LISTEN_ADDR", &c.HTTP.ListenAddr)
	envString("LOG_FILE", &c.Log.File)
	envString("TELEGRAM_BOT_TOKEN", &c.Telegram.BotToken)
	envString("TELEGRAM_CHAT_ID", &c.Telegram.ChatID)

	if v := os.Getenv("UTC_OFFSET_HOURS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse UTC_OFFSET_HOURS: %w", err)
		}
		c.Market.OffsetHours = n
	}
	if v := os.Getenv("SEED_PRICE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse SEED_PRICE: %w", err)
		}
		c.Market.SeedPrice = f
	}
	if v := os.Getenv("RANDOM_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse RANDOM_SEED: %w", err)
		}
		c.RandomSeed = n
	}
	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.Market.Symbol == "" {
		return fmt.Errorf("market.symbol is required")
	}
	if c.Market.OffsetHours < -23 || c.Market.OffsetHours > 23 {
		return fmt.Errorf("market.utc_offset_hours must be within [-23, 23], got %d", c.Market.OffsetHours)
	}
	for name, v := range c.numbers() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", name, v)
		}
	}
	if c.Market.SeedPrice <= 0 {
		return fmt.Errorf("market.seed_price must be positive")
	}
	if c.Market.WalkStep < 0 {
		return fmt.Errorf("market.walk_step must not be negative")
	}
	if c.Market.BandPct <= 0 || c.Market.BandPct >= 100 {
		return fmt.Errorf("market.band_pct must be within (0, 100), got %g", c.Market.BandPct)
	}
	if !isProbability(c.Feed.NewsProbability) || !isProbability(c.Feed.PostProbability) {
		return fmt.Errorf("feed probabilities must be within [0, 1]")
	}
	if c.Feed.NewsLimit <= 0 || c.Feed.PostLimit <= 0 {
		return fmt.Errorf("feed limits must be positive")
	}
	if c.Tax.Rate < 0 || c.Tax.Deduction < 0 {
		return fmt.Errorf("tax rate and deduction must not be negative")
	}
	if c.Schedule.TickCron == "" {
		return fmt.Errorf("schedule.tick_cron is required")
	}
	if c.DataSource.FetchTimeout <= 0 {
		return fmt.Errorf("data_source.fetch_timeout must be positive")
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// numbers lists every float field by its YAML path.
func (c *Config) numbers() map[string]float64 {
	return map[string]float64{
		"market.seed_price":             c.Market.SeedPrice,
		"market.walk_step":              c.Market.WalkStep,
		"market.band_pct":               c.Market.BandPct,
		"feed.news_probability":         c.Feed.NewsProbability,
		"feed.post_probability":         c.Feed.PostProbability,
		"portfolio.shares":              c.Portfolio.Shares,
		"portfolio.avg_cost":            c.Portfolio.AvgCost,
		"portfolio.fx_rate":             c.Portfolio.FxRate,
		"scenario.musk_risk_pct":        c.Scenario.MuskRiskPct,
		"scenario.policy_impact_pct":    c.Scenario.PolicyImpactPct,
		"scenario.robotaxi_premium_pct": c.Scenario.RobotaxiPremiumPct,
		"tax.deduction":                 c.Tax.Deduction,
		"tax.rate":                      c.Tax.Rate,
	}
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}

// TelegramEnabled reports whether chat alerts are configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// DashboardOptions maps the config onto dashboard.Options.
func (c *Config) DashboardOptions() dashboard.Options {
	opts := dashboard.DefaultOptions()
	opts.Price = simulator.Config{
		Symbol:      c.Market.Symbol,
		SeedPrice:   c.Market.SeedPrice,
		OffsetHours: c.Market.OffsetHours,
		WalkStep:    c.Market.WalkStep,
		BandPct:     c.Market.BandPct,
	}
	opts.Feed = feed.Config{
		NewsProbability: c.Feed.NewsProbability,
		PostProbability: c.Feed.PostProbability,
	}
	opts.NewsLimit = c.Feed.NewsLimit
	opts.PostLimit = c.Feed.PostLimit
	opts.Portfolio = c.Portfolio
	opts.Scenario = c.Scenario
	opts.Tax = c.Tax
	opts.SeedFeeds = !c.Feed.SkipSeed
	return opts
}
