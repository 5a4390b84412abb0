package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"StockCompass/internal/api"
	"StockCompass/internal/backtest"
	"StockCompass/internal/config"
	"StockCompass/internal/quote"
	"StockCompass/internal/scheduler"
	"StockCompass/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] StockCompass starting...")

	// Load config
	cfgPath := "configs/config.yaml"
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

	// Init fetcher
	var fetcher quote.Fetcher
	switch cfg.DataSource.Provider {
	case "binance":
		fetcher = quote.NewBinanceFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	case "mock":
		fetcher = &quote.MockFetcher{Price: 100}
	default:
		yf := quote.NewYahooFetcher(cfg.Proxy)
		if cfg.DataSource.BaseURL != "" {
			yf.BaseURL = cfg.DataSource.BaseURL
		}
		fetcher = yf
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init quote service
	quotes := quote.NewService(fetcher, cfg.History.Days)

	// Init simulator
	seed := cfg.Backtest.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sim := backtest.NewSimulator(cfg.Backtest.Slippage, seed)

	// Init store
	var st store.Store
	if cfg.Database.SQLitePath != "" {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite store failed, using noop: %v", err)
			st = store.NewNoopStore()
		} else {
			st = ss
			defer ss.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, quotes, st)
	if err := sched.Register(cfg.Schedule.SnapshotCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start API server
	server := api.NewServer(quotes, sim, st)
	go func() {
		if err := server.Start(cfg.Server.ListenAddr); err != nil {
			log.Fatalf("[FATAL] api server: %v", err)
		}
	}()

	// Optional: snapshot immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing snapshot task now")
		go sched.RunSnapshotNow()
	}

	log.Println("[INFO] StockCompass is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] api shutdown: %v", err)
	}
	log.Println("[INFO] StockCompass stopped")
}
