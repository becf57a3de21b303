package calculator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DominanceSentinel/internal/model"
)

func seriesOf(vals []float64) model.DominanceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(model.DominanceSeries, len(vals))
	for i, v := range vals {
		s[i] = model.DominancePoint{Time: start.AddDate(0, 0, i), Dominance: v}
	}
	return s
}

func randomWalk(n int, seed int64) []float64 {
	r := rand.New(rand.NewSource(seed))
	vals := make([]float64, n)
	v := 50.0
	for i := range vals {
		v += r.Float64()*2 - 1
		vals[i] = v
	}
	return vals
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

func TestRSISeries_HandCalculated(t *testing.T) {
	// window 2, values 1,2,1,3
	// gains  0,1,0,2 -> avg 0, .5, .5, 1
	// losses 0,0,1,0 -> avg 0, 0, .5, .5
	got := RSISeries([]float64{1, 2, 1, 3}, 2)
	want := []float64{50, 100, 50, 100 - 100.0/3}
	require.Len(t, got, 4)
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "index %d", i)
	}
}

func TestRSISeries_Degenerate(t *testing.T) {
	for _, v := range RSISeries(constant(20, 55), 14) {
		assert.Equal(t, 50.0, v)
	}

	rising := RSISeries(linear(20, 1, 20), 14)
	assert.Equal(t, 50.0, rising[0], "first point has no delta")
	for _, v := range rising[1:] {
		assert.Equal(t, 100.0, v)
	}

	falling := RSISeries(linear(20, 20, 1), 14)
	for _, v := range falling[1:] {
		assert.InDelta(t, 0.0, v, 1e-12)
	}
}

func TestRSISeries_AlwaysBounded(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		for i, v := range RSISeries(randomWalk(200, seed), 14) {
			assert.GreaterOrEqual(t, v, 0.0, "seed %d index %d", seed, i)
			assert.LessOrEqual(t, v, 100.0, "seed %d index %d", seed, i)
		}
	}
}

func TestRSISeries_WindowSlides(t *testing.T) {
	// One loss at index 1 then 20 gains: once the loss leaves the 14-wide window RSI is 100.
	vals := []float64{10, 9}
	for i := 0; i < 20; i++ {
		vals = append(vals, vals[len(vals)-1]+1)
	}
	rsi := RSISeries(vals, 14)
	assert.Less(t, rsi[14], 100.0)
	assert.Equal(t, 100.0, rsi[15])
}

func TestEMASeries_HandCalculated(t *testing.T) {
	// span 3 -> alpha 0.5, seeded by the first value
	got := EMASeries([]float64{100, 102, 104, 103, 105}, 3)
	want := []float64{100, 101, 102.5, 102.75, 103.875}
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-12, "index %d", i)
	}
	assert.Empty(t, EMASeries(nil, 3))
}

func TestMACDSeries_Flat(t *testing.T) {
	m := MACDSeries(constant(40, 55), 12, 26, 9)
	for i := range m.Histogram {
		assert.Equal(t, 0.0, m.MACD[i])
		assert.Equal(t, 0.0, m.Signal[i])
		assert.Equal(t, 0.0, m.Histogram[i])
	}
}

func TestMACDSeries_RisingIsBullish(t *testing.T) {
	m := MACDSeries(linear(40, 50, 60), 12, 26, 9)
	last := len(m.Histogram) - 1
	assert.Greater(t, m.MACD[last], 0.0)
	assert.Greater(t, m.Histogram[last], 0.0)
	assert.InDelta(t, m.MACD[last]-m.Signal[last], m.Histogram[last], 1e-12)
}

func TestSMASeries_WindowAndExactness(t *testing.T) {
	vals := randomWalk(60, 42)
	for _, period := range []int{7, 30} {
		sma := SMASeries(vals, period)
		require.Len(t, sma, len(vals))
		for i, v := range sma {
			if i < period-1 {
				assert.False(t, v.Valid, "period %d index %d should be undefined", period, i)
				continue
			}
			require.True(t, v.Valid, "period %d index %d should be defined", period, i)
			sum := 0.0
			for _, x := range vals[i-period+1 : i+1] {
				sum += x
			}
			assert.InDelta(t, sum/float64(period), v.Float64, 1e-9)
		}
	}
}

func TestCalculateSMA(t *testing.T) {
	v, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, v, 1e-12)

	_, err = CalculateSMA([]float64{1, 2}, 3)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestSMASeries_MatchesCalculateSMA(t *testing.T) {
	vals := randomWalk(40, 7)
	sma := SMASeries(vals, 7)
	for i := 6; i < len(vals); i++ {
		want, err := CalculateSMA(vals[:i+1], 7)
		require.NoError(t, err)
		assert.Equal(t, want, sma[i].Float64, "index %d", i)
	}
}

func TestSMASeries_ConstantWindowIsExact(t *testing.T) {
	// 100 * (55 / 100) is not exactly 55 in binary floating point
	num, den := 55.0, 100.0
	v := 100 * (num / den)
	vals := make([]float64, 40)
	for i := range vals {
		vals[i] = v
	}
	short := SMASeries(vals, 7)
	long := SMASeries(vals, 30)
	for i := 29; i < len(vals); i++ {
		assert.Equal(t, v, short[i].Float64)
		assert.Equal(t, v, long[i].Float64)
	}
}

func TestRollingMean_GrowThenSlide(t *testing.T) {
	got := RollingMean([]float64{2, 4, 6, 8}, 2)
	assert.Equal(t, []float64{2, 3, 5, 7}, got)
}

func TestCompute_AlignedWithSeries(t *testing.T) {
	s := seriesOf(randomWalk(45, 7))
	set, err := Compute(s, DefaultParams())
	require.NoError(t, err)
	require.Equal(t, len(s), set.Len())

	for i, p := range set.Points {
		assert.Equal(t, s[i].Time, p.Time)
		assert.Equal(t, s[i].Dominance, p.Dominance)
		assert.True(t, p.RSI.Valid)
		assert.True(t, p.MACD.Valid)
		assert.True(t, p.MACDSignal.Valid)
		assert.True(t, p.MACDHist.Valid)
		assert.Equal(t, i >= 6, p.MAShort.Valid, "index %d", i)
		assert.Equal(t, i >= 29, p.MALong.Valid, "index %d", i)
	}
}

func TestCompute_ShortSeriesDoesNotFail(t *testing.T) {
	set, err := Compute(seriesOf(constant(10, 55)), DefaultParams())
	require.NoError(t, err)
	latest, err := set.Latest()
	require.NoError(t, err)
	assert.True(t, latest.MAShort.Valid)
	assert.False(t, latest.MALong.Valid)

	empty, err := Compute(nil, DefaultParams())
	require.NoError(t, err)
	_, err = empty.Latest()
	assert.ErrorIs(t, err, model.ErrInsufficientHistory)
}

func TestParams_Validate(t *testing.T) {
	require.NoError(t, DefaultParams().Validate())

	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"zero rsi window", func(p *Params) { p.RSIWindow = 0 }},
		{"negative signal", func(p *Params) { p.MACDSignal = -1 }},
		{"fast not below slow", func(p *Params) { p.MACDFast = 26 }},
		{"short not below long", func(p *Params) { p.MAShort = 30 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)
			assert.Error(t, p.Validate())
			_, err := Compute(seriesOf(constant(5, 50)), p)
			assert.Error(t, err)
		})
	}
}

func TestDominanceRange(t *testing.T) {
	s := seriesOf([]float64{70, 40, 52, 55, 48, 51})
	high, low, err := DominanceRange(s, 4)
	require.NoError(t, err)
	assert.Equal(t, 55.0, high)
	assert.Equal(t, 48.0, low)

	high, low, err = DominanceRange(s, 100)
	require.NoError(t, err)
	assert.Equal(t, 70.0, high)
	assert.Equal(t, 40.0, low)

	_, _, err = DominanceRange(nil, 30)
	assert.Error(t, err)
}

func TestRangePosition(t *testing.T) {
	pos, err := RangePosition(51, 55, 47)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pos, 1e-12)

	pos, _ = RangePosition(60, 55, 47)
	assert.Equal(t, 1.0, pos)
	pos, _ = RangePosition(50, 50, 50)
	assert.Equal(t, 0.5, pos)

	_, err = RangePosition(50, 40, 60)
	assert.Error(t, err)
}
