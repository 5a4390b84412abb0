package indicator

import (
	"math"
	"testing"

	"StockCompass/internal/model"
)

func TestSMA(t *testing.T) {
	got, err := SMA([]float64{1, 2, 3, 4, 5}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %v", got)
	}

	// Only the trailing window counts.
	got, err = SMA([]float64{100, 1, 2, 3}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("expected 2, got %v", got)
	}

	if _, err := SMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := SMA([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}

func TestEMA(t *testing.T) {
	// Seed = SMA(1,2,3) = 2, k = 0.5: ema -> 3 -> 4.
	got, err := EMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-4) > 1e-12 {
		t.Errorf("expected 4, got %v", got)
	}

	if _, err := EMA([]float64{1, 2}, 3); err == nil {
		t.Error("expected error for short input")
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	got, err := RSI([]float64{1, 2, 3}, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 50.0 {
		t.Errorf("expected neutral 50 for short input, got %v", got)
	}
}

func TestRSI_ZeroLoss(t *testing.T) {
	prices := make([]float64, 20)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	got, err := RSI(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 100.0 {
		t.Errorf("expected 100 when average loss is zero, got %v", got)
	}
}

func TestRSI_WilderSmoothing(t *testing.T) {
	// period 2 over changes +1,+1,-1,+1:
	// init avgGain=1 avgLoss=0; then 0.5/0.5; then 0.75/0.25 -> rs=3 -> 75.
	got, err := RSI([]float64{1, 2, 3, 2, 3}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-75) > 1e-9 {
		t.Errorf("expected 75, got %v", got)
	}
}

func TestRSI_Bounds(t *testing.T) {
	prices := make([]float64, 100)
	for i := range prices {
		prices[i] = 100 + 10*math.Sin(float64(i)*0.7)
	}
	got, err := RSI(prices, 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < 0 || got > 100 {
		t.Errorf("RSI out of [0,100]: %v", got)
	}
}

func TestMACD_InsufficientData(t *testing.T) {
	prices := make([]float64, 25)
	for i := range prices {
		prices[i] = 100
	}
	if _, _, _, err := MACD(prices); err == nil {
		t.Error("expected error below 26 prices")
	}
}

func TestMACD_FlatSeries(t *testing.T) {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 100
	}
	macd, signal, histogram, err := MACD(prices)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if macd != 0 || signal != 0 || histogram != 0 {
		t.Errorf("expected all zero for flat series, got %v/%v/%v", macd, signal, histogram)
	}
}

func TestSupportResistance(t *testing.T) {
	bars := make([]model.PriceBar, 30)
	for i := range bars {
		bars[i] = model.PriceBar{Open: 100, High: 101, Low: 99, Close: 100}
	}
	// Extremes inside the 20-bar window.
	bars[25].High = 115
	bars[22].Low = 85
	// Extremes outside the window must be ignored.
	bars[2].High = 200
	bars[3].Low = 10

	support, resistance, err := SupportResistance(bars, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if support != 85 {
		t.Errorf("expected support 85, got %v", support)
	}
	if resistance != 115 {
		t.Errorf("expected resistance 115, got %v", resistance)
	}

	if _, _, err := SupportResistance(nil, 20); err == nil {
		t.Error("expected error for empty bars")
	}
}
