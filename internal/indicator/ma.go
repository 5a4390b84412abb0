package indicator

import "errors"

// SMA computes the simple moving average of the last `period` prices.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// EMASeries computes the exponential moving average series, seeded with the
// SMA over the first `period` prices. Indices below period-1 are zero and
// must not be read.
func EMASeries(prices []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(prices) < period {
		return nil, errors.New("not enough data for EMA calculation")
	}
	out := make([]float64, len(prices))
	seed := 0.0
	for _, p := range prices[:period] {
		seed += p
	}
	out[period-1] = seed / float64(period)

	k := 2.0 / float64(period+1)
	for i := period; i < len(prices); i++ {
		out[i] = (prices[i]-out[i-1])*k + out[i-1]
	}
	return out, nil
}

// EMA returns the exponential moving average at the most recent price.
func EMA(prices []float64, period int) (float64, error) {
	series, err := EMASeries(prices, period)
	if err != nil {
		return 0, err
	}
	return series[len(series)-1], nil
}
