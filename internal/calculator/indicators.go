package calculator

import (
	"fmt"

	"DominanceSentinel/internal/model"
)

// Params holds the indicator windows.
type Params struct {
	RSIWindow  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	MAShort    int
	MALong     int
}

// DefaultParams returns RSI(14), MACD(12,26,9), MA(7) and MA(30).
func DefaultParams() Params {
	return Params{
		RSIWindow:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		MAShort:    7,
		MALong:     30,
	}
}

// Validate rejects non-positive windows and inverted fast/slow or short/long pairs.
func (p Params) Validate() error {
	windows := []struct {
		name string
		v    int
	}{
		{"rsi_window", p.RSIWindow},
		{"macd_fast", p.MACDFast},
		{"macd_slow", p.MACDSlow},
		{"macd_signal", p.MACDSignal},
		{"ma_short", p.MAShort},
		{"ma_long", p.MALong},
	}
	for _, w := range windows {
		if w.v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", w.name, w.v)
		}
	}
	if p.MACDFast >= p.MACDSlow {
		return fmt.Errorf("macd_fast (%d) must be less than macd_slow (%d)", p.MACDFast, p.MACDSlow)
	}
	if p.MAShort >= p.MALong {
		return fmt.Errorf("ma_short (%d) must be less than ma_long (%d)", p.MAShort, p.MALong)
	}
	return nil
}

// Compute runs RSI, MACD and both moving averages over the dominance column. It never fails
// on short input: indicators that need more history are left undefined.
func Compute(s model.DominanceSeries, p Params) (*model.IndicatorSet, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("indicator params: %w", err)
	}

	values := s.Values()
	rsi := RSISeries(values, p.RSIWindow)
	macd := MACDSeries(values, p.MACDFast, p.MACDSlow, p.MACDSignal)
	maShort := SMASeries(values, p.MAShort)
	maLong := SMASeries(values, p.MALong)

	set := &model.IndicatorSet{Points: make([]model.IndicatorPoint, len(s))}
	for i, pt := range s {
		set.Points[i] = model.IndicatorPoint{
			Time:       pt.Time,
			Dominance:  pt.Dominance,
			RSI:        model.Some(rsi[i]),
			MACD:       model.Some(macd.MACD[i]),
			MACDSignal: model.Some(macd.Signal[i]),
			MACDHist:   model.Some(macd.Histogram[i]),
			MAShort:    maShort[i],
			MALong:     maLong[i],
		}
	}
	return set, nil
}
