package backtest

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"StockCompass/internal/model"
)

// ErrInsufficientHistory is returned when the price series cannot yield a
// single period-over-period return.
var ErrInsufficientHistory = errors.New("insufficient price history")

// DefaultSlippage is the fixed execution-cost premium applied to every
// simulated purchase: effective buy price = close * (1 + slippage).
const DefaultSlippage = 0.002

// Simulator runs compounding-contribution backtests against historical
// prices and bootstrap-resampled forward paths. Cash and holdings are
// accounted in decimals; emitted points are rounded to 2 decimals.
//
// Each run re-seeds its own random source, so calls are independent and
// reproducible: the same series, plan, and seed produce identical results.
type Simulator struct {
	slippage float64
	seed     int64
}

// NewSimulator creates a Simulator with the given slippage rate and
// bootstrap seed.
func NewSimulator(slippage float64, seed int64) *Simulator {
	if slippage < 0 {
		slippage = 0
	}
	return &Simulator{slippage: slippage, seed: seed}
}

// WithSeed returns a copy of the simulator using a different bootstrap seed.
func (s *Simulator) WithSeed(seed int64) *Simulator {
	return &Simulator{slippage: s.slippage, seed: seed}
}

// Slippage returns the configured slippage rate.
func (s *Simulator) Slippage() float64 { return s.slippage }

// Seed returns the bootstrap seed the simulator runs with.
func (s *Simulator) Seed() int64 { return s.seed }

// RunHistoricalBacktest replays the plan against actual prices, walking the
// series at weekly granularity. Due contributions buy fractional shares at
// the period close plus slippage; portfolio value is holdings times the
// period close.
func (s *Simulator) RunHistoricalBacktest(series []model.PriceBar, plan model.InvestmentPlan) (model.SimulationResult, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bars, got %d", ErrInsufficientHistory, len(series))
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}
	return s.walk(resampleWeekly(series), plan), nil
}

// RunForecastSimulation projects the plan onto a synthetic future path built
// by bootstrap resampling of historical weekly returns. Sampling observed
// returns with replacement preserves the empirical distribution, including
// tail events, which matters for long-horizon compounding.
func (s *Simulator) RunForecastSimulation(series []model.PriceBar, plan model.InvestmentPlan, horizonYears float64) (model.SimulationResult, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 bars, got %d", ErrInsufficientHistory, len(series))
	}
	if err := ValidatePlan(plan); err != nil {
		return nil, err
	}
	if horizonYears <= 0 {
		return nil, fmt.Errorf("%w: horizon must be positive", ErrInvalidPlan)
	}

	// Resample returns at weekly granularity; fall back to the raw series
	// when the whole history collapses into one week.
	base := resampleWeekly(series)
	if len(base) < 2 {
		base = series
	}
	returns := periodReturns(base)
	if len(returns) == 0 {
		return nil, fmt.Errorf("%w: no usable returns in series", ErrInsufficientHistory)
	}

	rng := rand.New(rand.NewSource(s.seed))
	last := series[len(series)-1]
	price := last.Close
	date := last.Date
	steps := int(math.Round(horizonYears * 52))

	path := make([]model.PriceBar, 0, steps)
	for i := 0; i < steps; i++ {
		price *= 1 + returns[rng.Intn(len(returns))]
		date = date.AddDate(0, 0, 7)
		path = append(path, model.PriceBar{Date: date, Open: price, High: price, Low: price, Close: price})
	}
	return s.walk(path, plan), nil
}

// walk applies the plan's lump sum and periodic contributions to an
// already-weekly price path and records one point per period.
func (s *Simulator) walk(weekly []model.PriceBar, plan model.InvestmentPlan) model.SimulationResult {
	holdings := decimal.Zero
	contributed := decimal.Zero
	slip := decimal.NewFromFloat(1 + s.slippage)
	lumpDue := plan.InitialLumpSum > 0

	periodsInStage := make([]int, len(plan.Stages))
	lastContribMonth := make([]string, len(plan.Stages))

	result := make(model.SimulationResult, 0, len(weekly))
	for _, bar := range weekly {
		price := decimal.NewFromFloat(bar.Close)
		buyPrice := price.Mul(slip)

		// The lump sum lands on the first simulated period.
		if lumpDue && buyPrice.IsPositive() {
			amount := decimal.NewFromFloat(plan.InitialLumpSum)
			holdings = holdings.Add(amount.Div(buyPrice))
			contributed = contributed.Add(amount)
			lumpDue = false
		}

		if idx := activeStage(plan.Stages, bar.Date); idx >= 0 {
			st := plan.Stages[idx]
			due := false
			switch st.Frequency {
			case model.FrequencyWeekly:
				due = true
			case model.FrequencyBiweekly:
				due = periodsInStage[idx]%2 == 0
			case model.FrequencyMonthly:
				month := bar.Date.Format("2006-01")
				due = month != lastContribMonth[idx]
				if due {
					lastContribMonth[idx] = month
				}
			}
			periodsInStage[idx]++

			if due && st.Contribution > 0 && buyPrice.IsPositive() {
				amount := decimal.NewFromFloat(st.Contribution)
				holdings = holdings.Add(amount.Div(buyPrice))
				contributed = contributed.Add(amount)
			}
		}

		result = append(result, model.SimulationPoint{
			Date:                   bar.Date,
			PortfolioValue:         toFloat2(holdings.Mul(price)),
			CumulativeContribution: toFloat2(contributed),
			ReferencePrice:         toFloat2(price),
		})
	}
	return result
}

// activeStage returns the index of the stage whose window contains the date,
// or -1. Stages are validated as ordered and non-overlapping, so at most one
// matches.
func activeStage(stages []model.PlanStage, date time.Time) int {
	for i, st := range stages {
		if !date.Before(st.Start) && !date.After(st.End) {
			return i
		}
	}
	return -1
}

func toFloat2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
