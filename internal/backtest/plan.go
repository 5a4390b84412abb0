package backtest

import (
	"errors"
	"fmt"

	"StockCompass/internal/model"
)

// ErrInvalidPlan is returned for malformed investment plans. It is a
// user-correctable validation error and is never retried.
var ErrInvalidPlan = errors.New("invalid investment plan")

// ValidatePlan checks that stages exist, are ordered and non-overlapping,
// and that no amount is negative.
func ValidatePlan(plan model.InvestmentPlan) error {
	if len(plan.Stages) == 0 {
		return fmt.Errorf("%w: no stages", ErrInvalidPlan)
	}
	if plan.InitialLumpSum < 0 {
		return fmt.Errorf("%w: negative initial lump sum", ErrInvalidPlan)
	}
	for i, st := range plan.Stages {
		if st.Contribution < 0 {
			return fmt.Errorf("%w: stage %d has negative contribution", ErrInvalidPlan, i)
		}
		if st.End.Before(st.Start) {
			return fmt.Errorf("%w: stage %d ends before it starts", ErrInvalidPlan, i)
		}
		switch st.Frequency {
		case model.FrequencyWeekly, model.FrequencyBiweekly, model.FrequencyMonthly:
		default:
			return fmt.Errorf("%w: stage %d has unknown frequency %q", ErrInvalidPlan, i, st.Frequency)
		}
		if i > 0 {
			prev := plan.Stages[i-1]
			if st.Start.Before(prev.Start) {
				return fmt.Errorf("%w: stages not ordered by start date", ErrInvalidPlan)
			}
			if st.Start.Before(prev.End) {
				return fmt.Errorf("%w: stages %d and %d overlap", ErrInvalidPlan, i-1, i)
			}
		}
	}
	return nil
}
