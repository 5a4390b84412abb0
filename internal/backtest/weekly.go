package backtest

import "StockCompass/internal/model"

// resampleWeekly reduces a bar series to weekly granularity by keeping the
// last bar of each ISO week. A series that is already weekly passes through
// unchanged.
func resampleWeekly(series []model.PriceBar) []model.PriceBar {
	weekly := make([]model.PriceBar, 0, len(series)/5+1)
	for i, bar := range series {
		if i+1 < len(series) {
			y1, w1 := bar.Date.ISOWeek()
			y2, w2 := series[i+1].Date.ISOWeek()
			if y1 == y2 && w1 == w2 {
				continue
			}
		}
		weekly = append(weekly, bar)
	}
	return weekly
}

// periodReturns derives period-over-period fractional returns from closes.
// Bars with a non-positive previous close are skipped.
func periodReturns(series []model.PriceBar) []float64 {
	returns := make([]float64, 0, len(series))
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		if prev <= 0 {
			continue
		}
		returns = append(returns, series[i].Close/prev-1)
	}
	return returns
}
