package calculator

import (
	"errors"
	"math"

	"DominanceSentinel/internal/model"
)

// DefaultRangeLookback is the number of daily points used for the dominance range.
const DefaultRangeLookback = 30

// DominanceRange scans the most recent `lookback` points and returns the high and low dominance.
func DominanceRange(s model.DominanceSeries, lookback int) (high, low float64, err error) {
	if len(s) == 0 {
		return 0, 0, errors.New("no dominance points provided")
	}
	if lookback <= 0 {
		return 0, 0, errors.New("lookback must be positive")
	}
	start := len(s) - lookback
	if start < 0 {
		start = 0
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, p := range s[start:] {
		if p.Dominance > high {
			high = p.Dominance
		}
		if p.Dominance < low {
			low = p.Dominance
		}
	}
	return high, low, nil
}

// RangePosition returns where current sits within [low, high] (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
