package model

// TrendPattern classifies the alignment of the short/mid/long moving averages.
type TrendPattern string

const (
	TrendBullish       TrendPattern = "bullish-aligned"
	TrendBearish       TrendPattern = "bearish-aligned"
	TrendConsolidating TrendPattern = "consolidating"
)

// RSILevel classifies the RSI reading.
type RSILevel string

const (
	RSIOverbought RSILevel = "overbought"
	RSIOversold   RSILevel = "oversold"
	RSINeutral    RSILevel = "neutral"
)

// MACDCross classifies the MACD line relative to its signal line.
type MACDCross string

const (
	MACDGoldenCross MACDCross = "golden-cross"
	MACDDeathCross  MACDCross = "death-cross"
	MACDChoppy      MACDCross = "choppy"
)

// SRPosition classifies the current price against support and resistance.
type SRPosition string

const (
	SRBrokeResistance SRPosition = "broke-resistance"
	SRBrokeSupport    SRPosition = "broke-support"
	SRBetween         SRPosition = "between"
)

// TechnicalFeatures is the indicator snapshot computed for the most recent
// bar. All numeric values are rounded to 2 decimals. MA and MACD fields
// degrade to 0 when the series is shorter than their lookback windows; the
// engine treats those as unavailable internally, 0 only appears at this
// output boundary.
type TechnicalFeatures struct {
	TrendPattern  TrendPattern `json:"trend_pattern"`
	RSI           float64      `json:"rsi"`
	RSILevel      RSILevel     `json:"rsi_level"`
	MACD          float64      `json:"macd"`
	MACDSignal    float64      `json:"macd_signal"`
	MACDHistogram float64      `json:"macd_histogram"`
	MACDCross     MACDCross    `json:"macd_cross"`
	MA5           float64      `json:"ma5"`
	MA20          float64      `json:"ma20"`
	MA60          float64      `json:"ma60"`
	Support       float64      `json:"support"`
	Resistance    float64      `json:"resistance"`
	PriceVsSR     SRPosition   `json:"price_vs_sr"`
	CurrentPrice  float64      `json:"current_price"`
}

// NarrativeInput is the projection consumed by the narrative-generation
// collaborator: the categorical signals up front, plus the full numeric
// bundle for context.
type NarrativeInput struct {
	TrendPattern TrendPattern      `json:"trend_pattern"`
	RSILevel     RSILevel          `json:"rsi_level"`
	MACDCross    MACDCross         `json:"macd_signal"`
	PriceVsSR    SRPosition        `json:"price_vs_support_resistance"`
	Indicators   TechnicalFeatures `json:"indicators"`
}

// Narrative builds the narrative-generation projection from a snapshot.
func (f *TechnicalFeatures) Narrative() NarrativeInput {
	return NarrativeInput{
		TrendPattern: f.TrendPattern,
		RSILevel:     f.RSILevel,
		MACDCross:    f.MACDCross,
		PriceVsSR:    f.PriceVsSR,
		Indicators:   *f,
	}
}
