package strategy

import (
	"fmt"

	"DominanceSentinel/internal/calculator"
	"DominanceSentinel/internal/model"
	"DominanceSentinel/internal/report"
	"DominanceSentinel/internal/series"
)

// Options configures one pipeline run.
type Options struct {
	Align  series.AlignPolicy
	Params calculator.Params
}

// DefaultOptions pairs by index and uses the default indicator windows.
func DefaultOptions() Options {
	return Options{Align: series.AlignByIndex, Params: calculator.DefaultParams()}
}

// Evaluate runs the full analysis for one pair:
// prices -> dominance -> indicators -> crossover -> classification -> report.
// Each stage is a pure function of the previous stage's output.
func Evaluate(pair model.Pair, pricesA, pricesB []model.PricePoint, opts Options) (*model.Analysis, error) {
	dom, err := series.Build(pricesA, pricesB, opts.Align)
	if err != nil {
		return nil, fmt.Errorf("build dominance series: %w", err)
	}

	set, err := calculator.Compute(dom, opts.Params)
	if err != nil {
		return nil, fmt.Errorf("compute indicators: %w", err)
	}

	crossovers := DetectCrossover(set)

	cls, err := Classify(set, crossovers)
	if err != nil {
		return nil, err
	}

	return &model.Analysis{
		Pair:           pair,
		Series:         dom,
		Indicators:     set,
		Crossovers:     crossovers,
		Classification: cls,
		Report:         report.Build(pair, cls),
	}, nil
}
