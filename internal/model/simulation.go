package model

import "time"

// SimulationPoint is one weekly observation of the simulated portfolio.
// ReferencePrice is the underlying price the period was valued at, rendered
// by the charting layer on a secondary scale.
type SimulationPoint struct {
	Date                   time.Time `json:"date"`
	PortfolioValue         float64   `json:"portfolio_value"`
	CumulativeContribution float64   `json:"cumulative_contribution"`
	ReferencePrice         float64   `json:"reference_price"`
}

// SimulationResult is the ordered equity curve produced by one simulation
// run. It is freshly allocated per run and never mutated afterwards.
type SimulationResult []SimulationPoint
