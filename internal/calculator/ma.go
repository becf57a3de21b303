package calculator

import (
	"errors"

	"DominanceSentinel/internal/model"
)

// CalculateSMA computes the simple moving average of the last `period` values.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	return mean(values[len(values)-period:]), nil
}

// SMASeries returns the trailing simple moving average at every index.
// Values before index period-1 are undefined.
func SMASeries(values []float64, period int) []model.NullFloat {
	out := make([]model.NullFloat, len(values))
	if period <= 0 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		v, err := CalculateSMA(values[:i+1], period)
		if err != nil {
			continue
		}
		out[i] = model.Some(v)
	}
	return out
}

// RollingMean is a trailing mean over at most `window` values with a minimum period of one:
// the window grows until it is full, then slides.
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window <= 0 {
		return out
	}
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		out[i] = mean(values[start : i+1])
	}
	return out
}

// mean averages the deviations from the first value and adds them back, so a window of
// identical values returns that value exactly.
func mean(values []float64) float64 {
	base := values[0]
	dev := 0.0
	for _, v := range values {
		dev += v - base
	}
	return base + dev/float64(len(values))
}
