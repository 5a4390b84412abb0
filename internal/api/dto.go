package api

import (
	"fmt"
	"time"

	"StockCompass/internal/model"
)

const dateLayout = "2006-01-02"

type planStageRequest struct {
	StartDate            string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate              string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	PeriodicContribution float64 `json:"periodic_contribution" validate:"gte=0"`
	Frequency            string  `json:"frequency" validate:"required,oneof=weekly biweekly monthly"`
}

type backtestRequest struct {
	Symbol         string             `json:"symbol" validate:"required"`
	InitialLumpSum float64            `json:"initial_lump_sum" validate:"gte=0"`
	Stages         []planStageRequest `json:"stages" validate:"required,min=1,dive"`
}

type forecastRequest struct {
	backtestRequest
	HorizonYears float64 `json:"horizon_years" validate:"gt=0,lte=30"`
	Seed         *int64  `json:"seed"` // optional, for reproducible runs
}

type watchRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}

// plan converts the request into the engine's plan model. Date parsing can
// still fail after tag validation for impossible calendar dates.
func (r *backtestRequest) plan() (model.InvestmentPlan, error) {
	plan := model.InvestmentPlan{
		InitialLumpSum: r.InitialLumpSum,
		Stages:         make([]model.PlanStage, 0, len(r.Stages)),
	}
	for i, st := range r.Stages {
		start, err := time.Parse(dateLayout, st.StartDate)
		if err != nil {
			return plan, fmt.Errorf("stage %d start_date: %w", i, err)
		}
		end, err := time.Parse(dateLayout, st.EndDate)
		if err != nil {
			return plan, fmt.Errorf("stage %d end_date: %w", i, err)
		}
		plan.Stages = append(plan.Stages, model.PlanStage{
			Start:        start,
			End:          end,
			Contribution: st.PeriodicContribution,
			Frequency:    model.ContributionFrequency(st.Frequency),
		})
	}
	return plan, nil
}
