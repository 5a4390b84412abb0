package quote

import (
	"fmt"
	"log"

	"StockCompass/internal/feature"
	"StockCompass/internal/model"
)

// Service orchestrates quote retrieval and feature computation for the API
// handlers and the snapshot scheduler.
type Service struct {
	Fetcher     Fetcher
	HistoryDays int
}

// NewService creates a new Service fetching historyDays of daily bars per
// symbol.
func NewService(fetcher Fetcher, historyDays int) *Service {
	return &Service{Fetcher: fetcher, HistoryDays: historyDays}
}

// History fetches the daily price series for a symbol.
func (s *Service) History(symbol string) ([]model.PriceBar, error) {
	bars, err := s.Fetcher.FetchDailyBars(symbol, s.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	return bars, nil
}

// Features fetches history plus the latest quote and computes the indicator
// snapshot. When the live quote is unavailable the last close stands in.
func (s *Service) Features(symbol string) (*model.TechnicalFeatures, error) {
	bars, err := s.History(symbol)
	if err != nil {
		return nil, err
	}
	live, err := s.Fetcher.FetchCurrentPrice(symbol)
	if err != nil {
		log.Printf("[WARN] fetch current price for %s failed: %v, using last close", symbol, err)
		return feature.ComputeFeatures(bars)
	}
	return feature.ComputeFeaturesLive(bars, live)
}
