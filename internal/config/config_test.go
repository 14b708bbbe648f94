package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Market.Symbol != "TSLA" || cfg.Market.OffsetHours != 13 || cfg.Market.SeedPrice != 467 {
		t.Errorf("unexpected market defaults %+v", cfg.Market)
	}
	if cfg.Feed.NewsLimit != 20 || cfg.Feed.PostLimit != 10 {
		t.Errorf("unexpected feed limits %d/%d", cfg.Feed.NewsLimit, cfg.Feed.PostLimit)
	}
	if cfg.Tax.Deduction != 2_500_000 || cfg.Tax.Rate != 0.22 {
		t.Errorf("unexpected tax %+v", cfg.Tax)
	}
	if cfg.DataSource.FetchTimeout != 12*time.Second {
		t.Errorf("expected 12s timeout, got %v", cfg.DataSource.FetchTimeout)
	}
	if cfg.Database.SQLitePath != "" {
		t.Errorf("expected sqlite disabled, got %q", cfg.Database.SQLitePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `
market:
  symbol: NVDA
  utc_offset_hours: 0
portfolio:
  shares: 10
  avg_cost: 400
  fx_rate: 1300
scenario:
  policy_impact_pct: 10
data_source:
  fetch_timeout: 3s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Market.Symbol != "NVDA" || cfg.Market.OffsetHours != 0 {
		t.Errorf("unexpected market %+v", cfg.Market)
	}
	if cfg.Market.SeedPrice != 467 {
		t.Errorf("expected unset seed price to keep default, got %v", cfg.Market.SeedPrice)
	}
	if cfg.Portfolio.Shares != 10 || cfg.Portfolio.FxRate != 1300 {
		t.Errorf("unexpected portfolio %+v", cfg.Portfolio)
	}
	if cfg.DataSource.FetchTimeout != 3*time.Second {
		t.Errorf("expected 3s, got %v", cfg.DataSource.FetchTimeout)
	}

	opts := cfg.DashboardOptions()
	if opts.Price.Symbol != "NVDA" || opts.Scenario.PolicyImpactPct != 10 || !opts.SeedFeeds {
		t.Errorf("unexpected dashboard options %+v", opts)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SYMBOL", "AAPL")
	t.Setenv("UTC_OFFSET_HOURS", "-5")
	t.Setenv("SEED_PRICE", "200.5")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("SQLITE_PATH", "data/test.db")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Market.Symbol != "AAPL" || cfg.Market.OffsetHours != -5 || cfg.Market.SeedPrice != 200.5 {
		t.Errorf("unexpected market %+v", cfg.Market)
	}
	if cfg.RandomSeed != 42 || cfg.Database.SQLitePath != "data/test.db" {
		t.Errorf("unexpected seed %d / path %q", cfg.RandomSeed, cfg.Database.SQLitePath)
	}
}

func TestLoad_BadInput(t *testing.T) {
	if _, err := Load(writeFile(t, "bad.yaml", "market: [")); err == nil {
		t.Error("expected parse error")
	}

	t.Setenv("SEED_PRICE", "abc")
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected env parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"seed price", func(c *Config) { c.Market.SeedPrice = 0 }},
		{"band low", func(c *Config) { c.Market.BandPct = 0 }},
		{"band high", func(c *Config) { c.Market.BandPct = 100 }},
		{"offset", func(c *Config) { c.Market.OffsetHours = 24 }},
		{"news probability", func(c *Config) { c.Feed.NewsProbability = 1.5 }},
		{"post probability", func(c *Config) { c.Feed.PostProbability = -0.1 }},
		{"news limit", func(c *Config) { c.Feed.NewsLimit = 0 }},
		{"tax rate", func(c *Config) { c.Tax.Rate = -0.1 }},
		{"deduction", func(c *Config) { c.Tax.Deduction = -1 }},
		{"telegram half set", func(c *Config) { c.Telegram.BotToken = "token" }},
		{"nan seed price", func(c *Config) { c.Market.SeedPrice = math.NaN() }},
		{"inf walk step", func(c *Config) { c.Market.WalkStep = math.Inf(1) }},
		{"nan shares", func(c *Config) { c.Portfolio.Shares = math.NaN() }},
		{"inf fx rate", func(c *Config) { c.Portfolio.FxRate = math.Inf(1) }},
		{"nan scenario", func(c *Config) { c.Scenario.PolicyImpactPct = math.NaN() }},
		{"nan tax rate", func(c *Config) { c.Tax.Rate = math.NaN() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoad_NonFiniteRejected(t *testing.T) {
	cfg, err := Load(writeFile(t, "nan.yaml", "portfolio:\n  shares: .nan\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for shares=NaN")
	}

	t.Setenv("SEED_PRICE", "NaN")
	cfg, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for SEED_PRICE=NaN")
	}
}

func TestLoad_ShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "config.yaml"))
	if err != nil {
		t.Fatalf("load shipped config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("shipped config should validate: %v", err)
	}
	def := Default()
	if cfg.Schedule.TickCron != def.Schedule.TickCron || cfg.Schedule.FetchCron != def.Schedule.FetchCron {
		t.Errorf("expected cadence %q/%q, got %q/%q",
			def.Schedule.TickCron, def.Schedule.FetchCron, cfg.Schedule.TickCron, cfg.Schedule.FetchCron)
	}
}

func TestLoadDotEnv(t *testing.T) {
	t.Setenv("MV_DOTENV_PROBE", "")
	os.Unsetenv("MV_DOTENV_PROBE")
	path := writeFile(t, ".env", "MV_DOTENV_PROBE=from-file\n")

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("MV_DOTENV_PROBE"); got != "from-file" {
		t.Errorf("expected from-file, got %q", got)
	}
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}
}
