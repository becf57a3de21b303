package model

import "time"

// CrossoverState compares the short and long moving averages at one timestamp.
type CrossoverState string

const (
	ShortBelowLong        CrossoverState = "SHORT_BELOW_LONG"
	ShortAboveOrEqualLong CrossoverState = "SHORT_ABOVE_OR_EQUAL_LONG"
)

// CrossoverPoint is the crossover state at one timestamp.
type CrossoverPoint struct {
	Time  time.Time
	State CrossoverState
}

// RSISignal classifies the latest RSI value.
type RSISignal string

const (
	RSIOverbought RSISignal = "OVERBOUGHT"
	RSIOversold   RSISignal = "OVERSOLD"
	RSINeutral    RSISignal = "NEUTRAL"
)

// MACDSignal classifies the latest MACD histogram value.
type MACDSignal string

const (
	MACDBullish MACDSignal = "BULLISH"
	MACDBearish MACDSignal = "BEARISH"
	MACDNeutral MACDSignal = "NEUTRAL"
)

// TrendSignal classifies the latest moving-average crossover state.
type TrendSignal string

const (
	TrendStrengthening TrendSignal = "STRENGTHENING"
	TrendWeakening     TrendSignal = "WEAKENING"
)

// Classification is the qualitative reading of the most recent indicator values.
type Classification struct {
	Time      time.Time
	Dominance float64
	RSI       float64
	MACDHist  float64
	MAShort   float64
	MALong    float64
	Crossover CrossoverState

	RSISignal   RSISignal
	MACDSignal  MACDSignal
	TrendSignal TrendSignal
}

// Report is the ordered list of human-readable statements produced for one analysis.
type Report []string

// Analysis bundles every output of one pipeline run.
type Analysis struct {
	Pair           Pair
	Series         DominanceSeries
	Indicators     *IndicatorSet
	Crossovers     []CrossoverPoint
	Classification Classification
	Report         Report
}
