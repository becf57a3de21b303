package calculator

// EMASeries computes the exponential moving average with alpha = 2/(span+1), seeded by the
// first value and without bias adjustment.
func EMASeries(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 || span <= 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = out[i-1] + alpha*(values[i]-out[i-1])
	}
	return out
}

// MACDResult holds the MACD line, its signal line and the histogram.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACDSeries returns MACD = EMA(fast) - EMA(slow), Signal = EMA(MACD, signal) and
// Histogram = MACD - Signal at every index.
func MACDSeries(values []float64, fast, slow, signal int) *MACDResult {
	fastEMA := EMASeries(values, fast)
	slowEMA := EMASeries(values, slow)

	line := make([]float64, len(values))
	for i := range values {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	sig := EMASeries(line, signal)

	hist := make([]float64, len(values))
	for i := range values {
		hist[i] = line[i] - sig[i]
	}
	return &MACDResult{MACD: line, Signal: sig, Histogram: hist}
}
