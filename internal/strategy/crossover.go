package strategy

import (
	"fmt"

	"DominanceSentinel/internal/model"
)

// DetectCrossover compares the short and long moving averages at every point where both
// are defined. Equal values count as above-or-equal.
func DetectCrossover(set *model.IndicatorSet) []model.CrossoverPoint {
	if set == nil {
		return nil
	}
	var out []model.CrossoverPoint
	for _, p := range set.Points {
		if !p.MAShort.Valid || !p.MALong.Valid {
			continue
		}
		out = append(out, model.CrossoverPoint{Time: p.Time, State: crossoverState(p.MAShort.Float64, p.MALong.Float64)})
	}
	return out
}

func crossoverState(short, long float64) model.CrossoverState {
	if short < long {
		return model.ShortBelowLong
	}
	return model.ShortAboveOrEqualLong
}

func latestCrossover(points []model.CrossoverPoint) (model.CrossoverPoint, error) {
	if len(points) == 0 {
		return model.CrossoverPoint{}, fmt.Errorf("%w: no crossover state available", model.ErrInsufficientHistory)
	}
	return points[len(points)-1], nil
}
