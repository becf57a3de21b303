package strategy

import (
	"fmt"

	"DominanceSentinel/internal/model"
)

// RSI thresholds. Values exactly on a threshold are neutral.
const (
	RSIOverboughtLevel = 70.0
	RSIOversoldLevel   = 30.0
)

// Classify maps the latest indicator values and crossover state to qualitative labels.
// It fails with ErrInsufficientHistory when any value it needs is still undefined.
func Classify(set *model.IndicatorSet, crossovers []model.CrossoverPoint) (model.Classification, error) {
	latest, err := set.Latest()
	if err != nil {
		return model.Classification{}, fmt.Errorf("classify: %w", err)
	}
	for _, v := range []struct {
		name string
		val  model.NullFloat
	}{
		{"rsi", latest.RSI},
		{"macd histogram", latest.MACDHist},
		{"short moving average", latest.MAShort},
		{"long moving average", latest.MALong},
	} {
		if !v.val.Valid {
			return model.Classification{}, fmt.Errorf("classify: %w: %s undefined after %d points",
				model.ErrInsufficientHistory, v.name, set.Len())
		}
	}
	cross, err := latestCrossover(crossovers)
	if err != nil {
		return model.Classification{}, fmt.Errorf("classify: %w", err)
	}

	return model.Classification{
		Time:        latest.Time,
		Dominance:   latest.Dominance,
		RSI:         latest.RSI.Float64,
		MACDHist:    latest.MACDHist.Float64,
		MAShort:     latest.MAShort.Float64,
		MALong:      latest.MALong.Float64,
		Crossover:   cross.State,
		RSISignal:   classifyRSI(latest.RSI.Float64),
		MACDSignal:  classifyMACD(latest.MACDHist.Float64),
		TrendSignal: classifyTrend(cross.State),
	}, nil
}

func classifyRSI(rsi float64) model.RSISignal {
	switch {
	case rsi > RSIOverboughtLevel:
		return model.RSIOverbought
	case rsi < RSIOversoldLevel:
		return model.RSIOversold
	default:
		return model.RSINeutral
	}
}

// classifyMACD keeps an exact zero histogram as its own class.
func classifyMACD(hist float64) model.MACDSignal {
	switch {
	case hist > 0:
		return model.MACDBullish
	case hist < 0:
		return model.MACDBearish
	default:
		return model.MACDNeutral
	}
}

func classifyTrend(state model.CrossoverState) model.TrendSignal {
	if state == model.ShortBelowLong {
		return model.TrendWeakening
	}
	return model.TrendStrengthening
}
