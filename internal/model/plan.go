package model

import "time"

// ContributionFrequency controls how often a plan stage deposits. At the
// simulator's weekly resolution, a contribution lands on the first period of
// each interval: weekly on every period, biweekly on every second period of
// the stage, monthly on the first period of each new calendar month.
type ContributionFrequency string

const (
	FrequencyWeekly   ContributionFrequency = "weekly"
	FrequencyBiweekly ContributionFrequency = "biweekly"
	FrequencyMonthly  ContributionFrequency = "monthly"
)

// PlanStage is one contiguous contribution window of an investment plan.
type PlanStage struct {
	Start        time.Time             `json:"start_date"`
	End          time.Time             `json:"end_date"`
	Contribution float64               `json:"periodic_contribution"`
	Frequency    ContributionFrequency `json:"frequency"`
}

// InvestmentPlan is an optional initial lump sum plus an ordered sequence of
// non-overlapping stages sorted by start date.
type InvestmentPlan struct {
	InitialLumpSum float64     `json:"initial_lump_sum"`
	Stages         []PlanStage `json:"stages"`
}
