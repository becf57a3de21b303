package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"DominanceSentinel/internal/model"
)

// Build assembles the ordered report statements for a classification:
// current dominance, RSI, MACD histogram, moving-average crossover.
func Build(pair model.Pair, c model.Classification) model.Report {
	return model.Report{
		fmt.Sprintf("Current %s dominance: %s%%", pairLabel(pair), fixed(c.Dominance, 2)),
		rsiStatement(c),
		macdStatement(c),
		crossoverStatement(c),
	}
}

func rsiStatement(c model.Classification) string {
	var meaning string
	switch c.RSISignal {
	case model.RSIOverbought:
		meaning = "dominance momentum is stretched to the upside"
	case model.RSIOversold:
		meaning = "dominance momentum is stretched to the downside"
	default:
		meaning = "dominance momentum is balanced"
	}
	return fmt.Sprintf("RSI %s is %s: %s", fixed(c.RSI, 2), c.RSISignal, meaning)
}

func macdStatement(c model.Classification) string {
	var meaning string
	switch c.MACDSignal {
	case model.MACDBullish:
		meaning = "dominance is gaining momentum"
	case model.MACDBearish:
		meaning = "dominance is losing momentum"
	default:
		meaning = "no momentum bias"
	}
	return fmt.Sprintf("MACD histogram %s is %s: %s", fixed(c.MACDHist, 4), c.MACDSignal, meaning)
}

func crossoverStatement(c model.Classification) string {
	rel := "above or equal to"
	if c.Crossover == model.ShortBelowLong {
		rel = "below"
	}
	return fmt.Sprintf("Short MA %s is %s long MA %s: dominance trend is %s",
		fixed(c.MAShort, 2), rel, fixed(c.MALong, 2), c.TrendSignal)
}

func pairLabel(p model.Pair) string {
	if p.Name != "" {
		return p.Name
	}
	if p.AssetA != "" && p.AssetB != "" {
		return p.AssetA + "/" + p.AssetB
	}
	return "asset"
}

// fixed renders v with exactly `places` decimals. Negative zero renders as zero.
func fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}
