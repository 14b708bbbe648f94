package main

import (
	"context"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MarketVision/internal/collector"
	"MarketVision/internal/config"
	"MarketVision/internal/dashboard"
	"MarketVision/internal/httpapi"
	"MarketVision/internal/logger"
	"MarketVision/internal/notifier"
	"MarketVision/internal/recorder"
	"MarketVision/internal/scheduler"
	"MarketVision/internal/version"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := config.LoadDotEnv(); err != nil {
		log.Printf("[WARN] load .env: %v", err)
	}

	// Load config
	cfgPath := config.DefaultPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	closer, err := logger.Setup(cfg.Log.File, cfg.Log.MaxSizeMB, cfg.Log.MaxBackups)
	if err != nil {
		log.Printf("[WARN] log file disabled, using stdout only: %v", err)
	}
	if closer != nil {
		defer closer.Close()
	}
	log.Printf("[INFO] MarketVision %s starting...", version.String())

	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	dash := dashboard.New(cfg.DashboardOptions(), rng, time.Now())
	log.Printf("[INFO] tracking %s from %.2f (utc offset %+d, seed %d)",
		cfg.Market.Symbol, cfg.Market.SeedPrice, cfg.Market.OffsetHours, seed)

	col := buildCollector(cfg)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var n notifier.Notifier = notifier.NoopNotifier{}
	if cfg.TelegramEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
		go tn.StartPolling(ctx, notifier.NewCommandHandler(dash))
		log.Println("[INFO] Telegram polling started")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, dash, col, n, rec)
	fetchCron := cfg.Schedule.FetchCron
	if col == nil {
		fetchCron = ""
	}
	if err := sched.RegisterAll(cfg.Schedule.TickCron, fetchCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.RunTickNow()
	if col != nil {
		go sched.RunFetchNow()
	}
	sched.Start()

	api := httpapi.NewServer(dash, version.Version)
	apiDone := make(chan struct{})
	go func() {
		defer close(apiDone)
		if err := api.ListenAndServe(ctx, cfg.HTTP.ListenAddr); err != nil {
			log.Printf("[ERROR] http api: %v", err)
		}
	}()

	log.Println("[INFO] MarketVision is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	sched.Stop()
	<-apiDone
	log.Println("[INFO] MarketVision stopped")
}

// buildCollector assembles the external source chains. It returns nil when
// external data is disabled, leaving the dashboard fully simulated.
func buildCollector(cfg *config.Config) *collector.Collector {
	if !cfg.DataSource.Enabled {
		log.Println("[INFO] data source: simulation only")
		return nil
	}
	timeout := cfg.DataSource.FetchTimeout

	var proxies []string
	if cfg.Proxy != "" {
		proxies = []string{cfg.Proxy, ""}
	}

	prices := collector.PriceChain{collector.NewYahooSource(cfg.Proxy, timeout)}
	if cfg.DataSource.Alpaca.APIKey != "" && cfg.DataSource.Alpaca.APISecret != "" {
		prices = append(prices, collector.NewAlpacaSource(
			cfg.DataSource.Alpaca.APIKey, cfg.DataSource.Alpaca.APISecret, cfg.DataSource.Alpaca.DataURL))
	}

	feeds := collector.DefaultFeeds
	if len(cfg.DataSource.RSSFeeds) > 0 {
		feeds = make([]collector.Feed, 0, len(cfg.DataSource.RSSFeeds))
		for _, u := range cfg.DataSource.RSSFeeds {
			feeds = append(feeds, collector.Feed{URL: u})
		}
	}
	var news collector.NewsChain
	if cfg.DataSource.NewsAPIKey != "" {
		news = append(news, collector.NewNewsAPISource(cfg.DataSource.NewsAPIKey, cfg.Proxy, timeout))
	}
	news = append(news, collector.NewRSSSource(feeds, proxies, timeout))

	log.Printf("[INFO] data source: %d price source(s), %d news source(s)", len(prices), len(news))
	return collector.NewCollector(prices, news, cfg.Market.Symbol, timeout)
}
