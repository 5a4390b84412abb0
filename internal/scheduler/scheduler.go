package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"StockCompass/internal/quote"
	"StockCompass/internal/store"
)

// Scheduler records periodic indicator snapshots for every watched symbol,
// so the dashboard can chart how signals evolved between visits.
type Scheduler struct {
	Cron   *cron.Cron
	Quotes *quote.Service
	Store  store.Store
	Ctx    context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, quotes *quote.Service, st store.Store) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Quotes: quotes,
		Store:  st,
		Ctx:    ctx,
	}
}

// Register registers the snapshot task with the given cron spec.
func (s *Scheduler) Register(snapshotCron string) error {
	if _, err := s.Cron.AddFunc(snapshotCron, s.snapshotTask); err != nil {
		return fmt.Errorf("register snapshot task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunSnapshotNow executes the snapshot task immediately (for manual trigger
// / RUN_ON_START).
func (s *Scheduler) RunSnapshotNow() {
	s.snapshotTask()
}

func (s *Scheduler) snapshotTask() {
	log.Println("[INFO] running snapshot task")
	symbols, err := s.Store.WatchedSymbols()
	if err != nil {
		log.Printf("[ERROR] load watched symbols: %v", err)
		return
	}
	if len(symbols) == 0 {
		log.Println("[INFO] no watched symbols, nothing to snapshot")
		return
	}

	for _, symbol := range symbols {
		// Cooperative cancellation between independent symbols; a single
		// computation is never interrupted mid-algorithm.
		select {
		case <-s.Ctx.Done():
			log.Println("[INFO] snapshot task cancelled")
			return
		default:
		}

		features, err := s.Quotes.Features(symbol)
		if err != nil {
			log.Printf("[WARN] snapshot %s: %v", symbol, err)
			continue
		}
		if err := s.Store.RecordSnapshot(symbol, features); err != nil {
			log.Printf("[ERROR] record snapshot %s: %v", symbol, err)
		}
	}
	log.Printf("[INFO] snapshot task finished for %d symbols", len(symbols))
}
