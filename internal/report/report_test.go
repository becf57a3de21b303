package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"DominanceSentinel/internal/model"
)

var btcEth = model.Pair{Name: "BTC/ETH", AssetA: "bitcoin", AssetB: "ethereum"}

func TestBuild_Golden(t *testing.T) {
	tests := []struct {
		name string
		cls  model.Classification
		want model.Report
	}{
		{
			name: "flat market",
			cls: model.Classification{
				Dominance: 55, RSI: 50, MACDHist: 0, MAShort: 55, MALong: 55,
				Crossover:   model.ShortAboveOrEqualLong,
				RSISignal:   model.RSINeutral,
				MACDSignal:  model.MACDNeutral,
				TrendSignal: model.TrendStrengthening,
			},
			want: model.Report{
				"Current BTC/ETH dominance: 55.00%",
				"RSI 50.00 is NEUTRAL: dominance momentum is balanced",
				"MACD histogram 0.0000 is NEUTRAL: no momentum bias",
				"Short MA 55.00 is above or equal to long MA 55.00: dominance trend is STRENGTHENING",
			},
		},
		{
			name: "falling market",
			cls: model.Classification{
				Dominance: 48.123, RSI: 21.456, MACDHist: -0.123456, MAShort: 49.5, MALong: 51.25,
				Crossover:   model.ShortBelowLong,
				RSISignal:   model.RSIOversold,
				MACDSignal:  model.MACDBearish,
				TrendSignal: model.TrendWeakening,
			},
			want: model.Report{
				"Current BTC/ETH dominance: 48.12%",
				"RSI 21.46 is OVERSOLD: dominance momentum is stretched to the downside",
				"MACD histogram -0.1235 is BEARISH: dominance is losing momentum",
				"Short MA 49.50 is below long MA 51.25: dominance trend is WEAKENING",
			},
		},
		{
			name: "rising market",
			cls: model.Classification{
				Dominance: 60, RSI: 100, MACDHist: 0.5, MAShort: 59, MALong: 56,
				Crossover:   model.ShortAboveOrEqualLong,
				RSISignal:   model.RSIOverbought,
				MACDSignal:  model.MACDBullish,
				TrendSignal: model.TrendStrengthening,
			},
			want: model.Report{
				"Current BTC/ETH dominance: 60.00%",
				"RSI 100.00 is OVERBOUGHT: dominance momentum is stretched to the upside",
				"MACD histogram 0.5000 is BULLISH: dominance is gaining momentum",
				"Short MA 59.00 is above or equal to long MA 56.00: dominance trend is STRENGTHENING",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Build(btcEth, tt.cls)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Build(btcEth, tt.cls), "report must be reproducible")
		})
	}
}

func TestBuild_NegativeZeroHistogram(t *testing.T) {
	cls := model.Classification{MACDHist: math.Copysign(0, -1), MACDSignal: model.MACDNeutral}
	assert.Equal(t, "MACD histogram 0.0000 is NEUTRAL: no momentum bias", Build(btcEth, cls)[2])
}

func TestPairLabel(t *testing.T) {
	assert.Equal(t, "BTC/ETH", pairLabel(btcEth))
	assert.Equal(t, "bitcoin/ethereum", pairLabel(model.Pair{AssetA: "bitcoin", AssetB: "ethereum"}))
	assert.Equal(t, "asset", pairLabel(model.Pair{}))
}
