package feature

import (
	"errors"
	"math"

	"StockCompass/internal/indicator"
	"StockCompass/internal/model"
)

// ErrEmptyInput is returned when no price data is supplied.
var ErrEmptyInput = errors.New("empty price series")

const (
	rsiPeriod  = 14
	srLookback = 20

	// Breakouts require a 2% move past the level, edge-triggered: the
	// previous close must still have been on the other side.
	breakoutThreshold = 0.02

	rsiOverbought = 70.0
	rsiOversold   = 30.0
)

// ComputeFeatures computes the indicator snapshot for the most recent bar,
// using the last close as the current price.
func ComputeFeatures(series []model.PriceBar) (*model.TechnicalFeatures, error) {
	if len(series) == 0 {
		return nil, ErrEmptyInput
	}
	closes := model.Closes(series)
	current := closes[len(closes)-1]
	prevClose := current
	if len(closes) >= 2 {
		prevClose = closes[len(closes)-2]
	}
	return compute(series, closes, current, prevClose), nil
}

// ComputeFeaturesLive computes the snapshot against a live quote that may be
// fresher than the last closed bar. The last close acts as the previous
// close for breakout edge detection.
func ComputeFeaturesLive(series []model.PriceBar, livePrice float64) (*model.TechnicalFeatures, error) {
	if len(series) == 0 {
		return nil, ErrEmptyInput
	}
	closes := model.Closes(series)
	return compute(series, closes, livePrice, closes[len(closes)-1]), nil
}

func compute(series []model.PriceBar, closes []float64, current, prevClose float64) *model.TechnicalFeatures {
	f := &model.TechnicalFeatures{CurrentPrice: round2(current)}

	ma5, ma5OK := smaOrZero(closes, 5)
	ma20, ma20OK := smaOrZero(closes, 20)
	ma60, ma60OK := smaOrZero(closes, 60)
	f.MA5, f.MA20, f.MA60 = round2(ma5), round2(ma20), round2(ma60)

	rsi, err := indicator.RSI(closes, rsiPeriod)
	if err != nil {
		rsi = 50.0
	}
	f.RSI = round2(rsi)

	macd, signal, histogram, err := indicator.MACD(closes)
	if err == nil {
		f.MACD = round2(macd)
		f.MACDSignal = round2(signal)
		f.MACDHistogram = round2(histogram)
	}

	support, resistance, err := indicator.SupportResistance(series, srLookback)
	if err == nil {
		f.Support = round2(support)
		f.Resistance = round2(resistance)
	}

	f.TrendPattern = classifyTrend(ma5, ma20, ma60, ma5OK && ma20OK && ma60OK)
	f.RSILevel = classifyRSI(rsi)
	f.MACDCross = classifyMACDCross(macd, signal, histogram)
	f.PriceVsSR = classifyBreakout(current, prevClose, support, resistance)
	return f
}

// smaOrZero degrades to an explicit unavailable flag instead of an error;
// the snapshot keeps 0 for unavailable windows.
func smaOrZero(closes []float64, period int) (float64, bool) {
	ma, err := indicator.SMA(closes, period)
	if err != nil {
		return 0, false
	}
	return ma, true
}

func classifyTrend(ma5, ma20, ma60 float64, ok bool) model.TrendPattern {
	switch {
	case !ok:
		return model.TrendConsolidating
	case ma5 > ma20 && ma20 > ma60:
		return model.TrendBullish
	case ma5 < ma20 && ma20 < ma60:
		return model.TrendBearish
	default:
		return model.TrendConsolidating
	}
}

func classifyRSI(rsi float64) model.RSILevel {
	switch {
	case rsi >= rsiOverbought:
		return model.RSIOverbought
	case rsi <= rsiOversold:
		return model.RSIOversold
	default:
		return model.RSINeutral
	}
}

func classifyMACDCross(macd, signal, histogram float64) model.MACDCross {
	switch {
	case macd > signal && histogram > 0:
		return model.MACDGoldenCross
	case macd < signal && histogram < 0:
		return model.MACDDeathCross
	default:
		return model.MACDChoppy
	}
}

func classifyBreakout(price, prevClose, support, resistance float64) model.SRPosition {
	if resistance > 0 && price > resistance*(1+breakoutThreshold) && prevClose < resistance {
		return model.SRBrokeResistance
	}
	if support > 0 && price < support*(1-breakoutThreshold) && prevClose > support {
		return model.SRBrokeSupport
	}
	return model.SRBetween
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
