package indicator

// MACD periods follow the classic 12/26/9 convention.
const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
)

// MACD computes the MACD line (EMA12 - EMA26), its 9-period EMA signal line,
// and the histogram for the most recent price. Requires at least 26 prices.
// While the MACD series is still shorter than the signal period, the signal
// line falls back to the mean of the available MACD values.
func MACD(prices []float64) (macd, signal, histogram float64, err error) {
	fast, err := EMASeries(prices, macdFastPeriod)
	if err != nil {
		return 0, 0, 0, err
	}
	slow, err := EMASeries(prices, macdSlowPeriod)
	if err != nil {
		return 0, 0, 0, err
	}

	// MACD line exists from the first index where the slow EMA is defined.
	line := make([]float64, 0, len(prices)-macdSlowPeriod+1)
	for i := macdSlowPeriod - 1; i < len(prices); i++ {
		line = append(line, fast[i]-slow[i])
	}
	macd = line[len(line)-1]

	if len(line) >= macdSignalPeriod {
		signal, err = EMA(line, macdSignalPeriod)
		if err != nil {
			return 0, 0, 0, err
		}
	} else {
		signal, _ = SMA(line, len(line))
	}
	return macd, signal, macd - signal, nil
}
