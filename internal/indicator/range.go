package indicator

import (
	"errors"
	"math"

	"StockCompass/internal/model"
)

// SupportResistance scans the most recent `lookback` bars (or all bars if
// fewer) and returns the lowest low as support and the highest high as
// resistance.
func SupportResistance(bars []model.PriceBar, lookback int) (support, resistance float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	if lookback <= 0 {
		return 0, 0, errors.New("lookback must be positive")
	}
	start := len(bars) - lookback
	if start < 0 {
		start = 0
	}
	support = math.Inf(1)
	resistance = math.Inf(-1)
	for i := start; i < len(bars); i++ {
		if bars[i].Low < support {
			support = bars[i].Low
		}
		if bars[i].High > resistance {
			resistance = bars[i].High
		}
	}
	return support, resistance, nil
}
