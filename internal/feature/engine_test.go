package feature

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"StockCompass/internal/model"
)

func barsFromCloses(closes []float64) []model.PriceBar {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func flatBars(n int, price float64) []model.PriceBar {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return barsFromCloses(closes)
}

func TestComputeFeatures_EmptySeries(t *testing.T) {
	if _, err := ComputeFeatures(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := ComputeFeaturesLive(nil, 100); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestComputeFeatures_FlatSeries(t *testing.T) {
	f, err := ComputeFeatures(flatBars(70, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.MA5 != 100 || f.MA20 != 100 || f.MA60 != 100 {
		t.Errorf("expected all MAs 100, got %v/%v/%v", f.MA5, f.MA20, f.MA60)
	}
	// No price change means zero average loss, which pins RSI at 100.
	if f.RSI != 100 {
		t.Errorf("expected RSI 100 for flat series, got %v", f.RSI)
	}
	if f.TrendPattern != model.TrendConsolidating {
		t.Errorf("expected consolidating, got %s", f.TrendPattern)
	}
	if f.Support != 100 || f.Resistance != 100 {
		t.Errorf("expected support=resistance=100, got %v/%v", f.Support, f.Resistance)
	}
	if f.PriceVsSR != model.SRBetween {
		t.Errorf("expected between, got %s", f.PriceVsSR)
	}
	if f.MACD != 0 || f.MACDSignal != 0 || f.MACDHistogram != 0 {
		t.Errorf("expected zero MACD bundle, got %v/%v/%v", f.MACD, f.MACDSignal, f.MACDHistogram)
	}
	if f.MACDCross != model.MACDChoppy {
		t.Errorf("expected choppy, got %s", f.MACDCross)
	}
	if f.CurrentPrice != 100 {
		t.Errorf("expected current price 100, got %v", f.CurrentPrice)
	}
}

func TestComputeFeatures_ShortSeriesDegrades(t *testing.T) {
	f, err := ComputeFeatures(flatBars(10, 100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.MA20 != 0 || f.MA60 != 0 {
		t.Errorf("expected MA20/MA60 to degrade to 0, got %v/%v", f.MA20, f.MA60)
	}
	if f.RSI != 50 {
		t.Errorf("expected neutral RSI 50 below 15 bars, got %v", f.RSI)
	}
	if f.RSILevel != model.RSINeutral {
		t.Errorf("expected neutral level, got %s", f.RSILevel)
	}
	if f.TrendPattern != model.TrendConsolidating {
		t.Errorf("expected consolidating without full MA windows, got %s", f.TrendPattern)
	}
}

func TestTrendClassification(t *testing.T) {
	rising := make([]float64, 70)
	falling := make([]float64, 70)
	for i := range rising {
		rising[i] = float64(i + 1)
		falling[i] = float64(len(falling) - i)
	}

	f, err := ComputeFeatures(barsFromCloses(rising))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.TrendPattern != model.TrendBullish {
		t.Errorf("expected bullish-aligned for rising series, got %s", f.TrendPattern)
	}

	f, err = ComputeFeatures(barsFromCloses(falling))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.TrendPattern != model.TrendBearish {
		t.Errorf("expected bearish-aligned for falling series, got %s", f.TrendPattern)
	}
}

func TestMovingAveragesWithinCloseRange(t *testing.T) {
	closes := make([]float64, 80)
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range closes {
		closes[i] = 100 + 15*math.Sin(float64(i)*0.3)
		if closes[i] < lo {
			lo = closes[i]
		}
		if closes[i] > hi {
			hi = closes[i]
		}
	}
	f, err := ComputeFeatures(barsFromCloses(closes))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for name, ma := range map[string]float64{"ma5": f.MA5, "ma20": f.MA20, "ma60": f.MA60} {
		if ma < lo-0.01 || ma > hi+0.01 {
			t.Errorf("%s=%v outside close range [%v, %v]", name, ma, lo, hi)
		}
	}
}

func TestMACDCrossClassification(t *testing.T) {
	growth := make([]float64, 60)
	for i := range growth {
		growth[i] = 100 * math.Pow(1.02, float64(i))
	}

	// Momentum rollover: a long rise followed by a sustained fall. The MACD
	// line turns down faster than its signal EMA, so it ends below the signal
	// with a negative histogram. A constant-rate decline would not do: there
	// MACD is negative but converging to its asymptote from below, which
	// keeps it above the lagging signal line.
	rollover := make([]float64, 60)
	for i := range rollover {
		if i < 40 {
			rollover[i] = 100 + 2*float64(i)
		} else {
			rollover[i] = 178 - 5*float64(i-39)
		}
	}

	f, err := ComputeFeatures(barsFromCloses(growth))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.MACDCross != model.MACDGoldenCross {
		t.Errorf("expected golden-cross for accelerating growth, got %s", f.MACDCross)
	}

	f, err = ComputeFeatures(barsFromCloses(rollover))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.MACDCross != model.MACDDeathCross {
		t.Errorf("expected death-cross after momentum rollover, got %s", f.MACDCross)
	}
	if f.MACDHistogram >= 0 {
		t.Errorf("expected negative histogram after momentum rollover, got %v", f.MACDHistogram)
	}
}

func TestBreakoutClassification(t *testing.T) {
	bars := flatBars(30, 100)
	bars[25].High = 110 // resistance inside the 20-bar window

	// Both conditions hold: above threshold and previous close below level.
	f, err := ComputeFeaturesLive(bars, 113)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.PriceVsSR != model.SRBrokeResistance {
		t.Errorf("expected broke-resistance, got %s", f.PriceVsSR)
	}

	// Threshold not met: 111 < 110*1.02.
	f, _ = ComputeFeaturesLive(bars, 111)
	if f.PriceVsSR != model.SRBetween {
		t.Errorf("expected between without threshold, got %s", f.PriceVsSR)
	}

	// Edge condition not met: previous close already at the level.
	atLevel := flatBars(30, 100)
	atLevel[29].Open = 110
	atLevel[29].High = 110
	atLevel[29].Close = 110
	f, _ = ComputeFeaturesLive(atLevel, 115)
	if f.PriceVsSR != model.SRBetween {
		t.Errorf("expected between without edge trigger, got %s", f.PriceVsSR)
	}
}

func TestSupportBreakClassification(t *testing.T) {
	bars := flatBars(30, 100)
	bars[25].Low = 90 // support inside the 20-bar window

	f, err := ComputeFeaturesLive(bars, 88)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.PriceVsSR != model.SRBrokeSupport {
		t.Errorf("expected broke-support, got %s", f.PriceVsSR)
	}

	// 89 is below support but within the 2% threshold.
	f, _ = ComputeFeaturesLive(bars, 89)
	if f.PriceVsSR != model.SRBetween {
		t.Errorf("expected between within threshold, got %s", f.PriceVsSR)
	}
}

func TestJSONProjection_CurrentPrice(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	closes[len(closes)-1] = 101.25
	series := barsFromCloses(closes)

	f, err := ComputeFeatures(series)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := json.Marshal(f.Narrative())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded model.NarrativeInput
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Indicators.CurrentPrice != series[len(series)-1].Close {
		t.Errorf("current_price %v does not match last close %v",
			decoded.Indicators.CurrentPrice, series[len(series)-1].Close)
	}
	if decoded.TrendPattern != f.TrendPattern || decoded.PriceVsSR != f.PriceVsSR {
		t.Error("categorical signals lost in projection round-trip")
	}
}
