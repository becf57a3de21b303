package model

import "time"

// NullFloat is a float64 that may be undefined, e.g. a moving average before its window fills.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// Some returns a defined NullFloat.
func Some(v float64) NullFloat { return NullFloat{Float64: v, Valid: true} }

// IndicatorPoint holds all indicator values computed for one timestamp.
type IndicatorPoint struct {
	Time       time.Time
	Dominance  float64
	RSI        NullFloat
	MACD       NullFloat
	MACDSignal NullFloat
	MACDHist   NullFloat
	MAShort    NullFloat
	MALong     NullFloat
}

// IndicatorSet is aligned index-for-index with the dominance series it was computed from.
type IndicatorSet struct {
	Points []IndicatorPoint
}

// Len returns the number of points.
func (s *IndicatorSet) Len() int { return len(s.Points) }

// Latest returns the most recent point, or ErrInsufficientHistory when the set is empty.
func (s *IndicatorSet) Latest() (IndicatorPoint, error) {
	if s == nil || len(s.Points) == 0 {
		return IndicatorPoint{}, ErrInsufficientHistory
	}
	return s.Points[len(s.Points)-1], nil
}
