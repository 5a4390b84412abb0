package store

import "StockCompass/internal/model"

// SimulationRun captures one backtest or forecast invocation for later
// review from the dashboard's history view.
type SimulationRun struct {
	Symbol            string
	Mode              string // "historical" or "forecast"
	HorizonYears      float64
	Seed              int64
	Slippage          float64
	FinalValue        float64
	TotalContribution float64
	Points            int
}

// Store persists user watchlists and computed artifacts.
type Store interface {
	AddWatch(user, symbol string) error
	RemoveWatch(user, symbol string) error
	Watchlist(user string) ([]string, error)
	WatchedSymbols() ([]string, error)
	RecordSnapshot(symbol string, f *model.TechnicalFeatures) error
	RecordSimulation(run *SimulationRun) error
	Close() error
}
