package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DominanceSentinel/internal/calculator"
	"DominanceSentinel/internal/model"
)

var (
	day0   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	btcEth = model.Pair{Name: "BTC/ETH", AssetA: "bitcoin", AssetB: "ethereum"}
)

// pricesForDominance builds a price pair whose dominance equals the given values:
// A = d, B = 100 - d, so 100*A/(A+B) = d.
func pricesForDominance(dom []float64) (a, b []model.PricePoint) {
	a = make([]model.PricePoint, len(dom))
	b = make([]model.PricePoint, len(dom))
	for i, d := range dom {
		ts := day0.AddDate(0, 0, i)
		a[i] = model.PricePoint{Time: ts, Value: d}
		b[i] = model.PricePoint{Time: ts, Value: 100 - d}
	}
	return a, b
}

func linear(n int, from, to float64) []float64 {
	vals := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range vals {
		vals[i] = from + step*float64(i)
	}
	return vals
}

func constant(n int, v float64) []float64 {
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = v
	}
	return vals
}

func setOf(points ...model.IndicatorPoint) *model.IndicatorSet {
	return &model.IndicatorSet{Points: points}
}

func TestEvaluate_RisingSeriesIsBullish(t *testing.T) {
	a, b := pricesForDominance(linear(40, 50, 60))

	an, err := Evaluate(btcEth, a, b, DefaultOptions())
	require.NoError(t, err)

	require.Len(t, an.Series, 40)
	require.Equal(t, 40, an.Indicators.Len())
	assert.Len(t, an.Crossovers, 40-29)

	c := an.Classification
	assert.InDelta(t, 60.0, c.Dominance, 1e-9)
	assert.Greater(t, c.MACDHist, 0.0)
	assert.Equal(t, model.MACDBullish, c.MACDSignal)
	assert.Equal(t, model.RSIOverbought, c.RSISignal)
	assert.Equal(t, model.TrendStrengthening, c.TrendSignal)
	assert.Equal(t, day0.AddDate(0, 0, 39), c.Time)
	assert.Len(t, an.Report, 4)
}

func TestEvaluate_ConstantSeriesIsNeutral(t *testing.T) {
	a, b := pricesForDominance(constant(40, 55))

	an, err := Evaluate(btcEth, a, b, DefaultOptions())
	require.NoError(t, err)

	c := an.Classification
	assert.Equal(t, 50.0, c.RSI)
	assert.Equal(t, model.RSINeutral, c.RSISignal)
	assert.Equal(t, 0.0, c.MACDHist)
	assert.Equal(t, model.MACDNeutral, c.MACDSignal)
	assert.InDelta(t, 55.0, c.MAShort, 1e-9)
	assert.InDelta(t, 55.0, c.MALong, 1e-9)
	assert.Equal(t, c.MAShort, c.MALong)
	assert.Equal(t, model.ShortAboveOrEqualLong, c.Crossover)
	assert.Equal(t, model.TrendStrengthening, c.TrendSignal)

	assert.Equal(t, model.Report{
		"Current BTC/ETH dominance: 55.00%",
		"RSI 50.00 is NEUTRAL: dominance momentum is balanced",
		"MACD histogram 0.0000 is NEUTRAL: no momentum bias",
		"Short MA 55.00 is above or equal to long MA 55.00: dominance trend is STRENGTHENING",
	}, an.Report)
}

func TestEvaluate_ShortSeriesIsInsufficient(t *testing.T) {
	for _, n := range []int{1, 10, 29} {
		a, b := pricesForDominance(linear(n+1, 40, 50)[:n])
		_, err := Evaluate(btcEth, a, b, DefaultOptions())
		assert.ErrorIs(t, err, model.ErrInsufficientHistory, "length %d", n)
	}

	a, b := pricesForDominance(linear(30, 40, 50))
	_, err := Evaluate(btcEth, a, b, DefaultOptions())
	assert.NoError(t, err, "30 points fill every window")
}

func TestEvaluate_InvalidInput(t *testing.T) {
	a, _ := pricesForDominance(constant(40, 55))
	_, err := Evaluate(btcEth, a, nil, DefaultOptions())
	assert.ErrorIs(t, err, model.ErrInvalidInputData)
}

func TestEvaluate_HugePrices(t *testing.T) {
	a, b := pricesForDominance(constant(40, 50))
	for i := range a {
		a[i].Value = 1e307
		b[i].Value = 1e307
	}
	an, err := Evaluate(btcEth, a, b, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 50.0, an.Classification.Dominance)
	assert.Equal(t, "Current BTC/ETH dominance: 50.00%", an.Report[0])

	for i := range a {
		a[i].Value = 1e308
		b[i].Value = 1e308
	}
	_, err = Evaluate(btcEth, a, b, DefaultOptions())
	assert.ErrorIs(t, err, model.ErrInvalidInputData)
}

func TestEvaluate_InvalidParams(t *testing.T) {
	a, b := pricesForDominance(constant(40, 55))
	opts := DefaultOptions()
	opts.Params.MAShort = 0
	_, err := Evaluate(btcEth, a, b, opts)
	require.Error(t, err)
	assert.NotErrorIs(t, err, model.ErrInvalidInputData)
	assert.NotErrorIs(t, err, model.ErrInsufficientHistory)
}

func TestEvaluate_CustomWindows(t *testing.T) {
	a, b := pricesForDominance(linear(12, 60, 50))
	opts := DefaultOptions()
	opts.Params = calculator.Params{RSIWindow: 5, MACDFast: 3, MACDSlow: 6, MACDSignal: 3, MAShort: 3, MALong: 10}

	an, err := Evaluate(btcEth, a, b, opts)
	require.NoError(t, err)
	assert.Len(t, an.Crossovers, 3)
	assert.Equal(t, model.TrendWeakening, an.Classification.TrendSignal)
	assert.Equal(t, model.RSIOversold, an.Classification.RSISignal)
	assert.Equal(t, model.MACDBearish, an.Classification.MACDSignal)
}

func TestDetectCrossover(t *testing.T) {
	set := setOf(
		model.IndicatorPoint{Time: day0, MAShort: model.Some(1)},
		model.IndicatorPoint{Time: day0.AddDate(0, 0, 1), MAShort: model.Some(1), MALong: model.Some(2)},
		model.IndicatorPoint{Time: day0.AddDate(0, 0, 2), MAShort: model.Some(2), MALong: model.Some(2)},
		model.IndicatorPoint{Time: day0.AddDate(0, 0, 3), MAShort: model.Some(3), MALong: model.Some(2)},
	)

	got := DetectCrossover(set)
	assert.Equal(t, []model.CrossoverPoint{
		{Time: day0.AddDate(0, 0, 1), State: model.ShortBelowLong},
		{Time: day0.AddDate(0, 0, 2), State: model.ShortAboveOrEqualLong},
		{Time: day0.AddDate(0, 0, 3), State: model.ShortAboveOrEqualLong},
	}, got)
	assert.Equal(t, got, DetectCrossover(set), "same input, same output")
	assert.Empty(t, DetectCrossover(nil))
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		rsi, hist float64
		state     model.CrossoverState
		wantRSI   model.RSISignal
		wantMACD  model.MACDSignal
		wantTrend model.TrendSignal
	}{
		{70.01, 0.1, model.ShortAboveOrEqualLong, model.RSIOverbought, model.MACDBullish, model.TrendStrengthening},
		{70, -0.1, model.ShortBelowLong, model.RSINeutral, model.MACDBearish, model.TrendWeakening},
		{30, 0, model.ShortAboveOrEqualLong, model.RSINeutral, model.MACDNeutral, model.TrendStrengthening},
		{29.99, 1e-12, model.ShortBelowLong, model.RSIOversold, model.MACDBullish, model.TrendWeakening},
		{0, -1e-12, model.ShortBelowLong, model.RSIOversold, model.MACDBearish, model.TrendWeakening},
		{100, 0, model.ShortAboveOrEqualLong, model.RSIOverbought, model.MACDNeutral, model.TrendStrengthening},
	}
	for _, tt := range tests {
		set := setOf(model.IndicatorPoint{
			Time: day0, Dominance: 50,
			RSI: model.Some(tt.rsi), MACD: model.Some(0), MACDSignal: model.Some(0), MACDHist: model.Some(tt.hist),
			MAShort: model.Some(1), MALong: model.Some(1),
		})
		cls, err := Classify(set, []model.CrossoverPoint{{Time: day0, State: tt.state}})
		require.NoError(t, err)
		assert.Equal(t, tt.wantRSI, cls.RSISignal, "rsi %.2f", tt.rsi)
		assert.Equal(t, tt.wantMACD, cls.MACDSignal, "hist %g", tt.hist)
		assert.Equal(t, tt.wantTrend, cls.TrendSignal, "state %s", tt.state)
	}
}

func TestClassify_InsufficientHistory(t *testing.T) {
	full := model.IndicatorPoint{
		RSI: model.Some(50), MACD: model.Some(0), MACDSignal: model.Some(0), MACDHist: model.Some(0),
		MAShort: model.Some(1), MALong: model.Some(1),
	}
	cross := []model.CrossoverPoint{{State: model.ShortAboveOrEqualLong}}

	t.Run("empty set", func(t *testing.T) {
		_, err := Classify(setOf(), cross)
		assert.ErrorIs(t, err, model.ErrInsufficientHistory)
	})
	t.Run("nil set", func(t *testing.T) {
		_, err := Classify(nil, cross)
		assert.ErrorIs(t, err, model.ErrInsufficientHistory)
	})
	t.Run("long average undefined", func(t *testing.T) {
		p := full
		p.MALong = model.NullFloat{}
		_, err := Classify(setOf(p), cross)
		assert.ErrorIs(t, err, model.ErrInsufficientHistory)
	})
	t.Run("rsi undefined", func(t *testing.T) {
		p := full
		p.RSI = model.NullFloat{}
		_, err := Classify(setOf(p), cross)
		assert.ErrorIs(t, err, model.ErrInsufficientHistory)
	})
	t.Run("no crossover state", func(t *testing.T) {
		_, err := Classify(setOf(full), nil)
		assert.ErrorIs(t, err, model.ErrInsufficientHistory)
	})
}
