package model

import "time"

// PricePoint is a single daily price observation of one asset.
type PricePoint struct {
	Time  time.Time
	Value float64
}

// DominancePoint is the share (0..100) of asset A in the combined price of A and B.
type DominancePoint struct {
	Time      time.Time
	Dominance float64
}

// DominanceSeries is an ordered dominance time series.
type DominanceSeries []DominancePoint

// Values returns the dominance column.
func (s DominanceSeries) Values() []float64 {
	vals := make([]float64, len(s))
	for i, p := range s {
		vals[i] = p.Dominance
	}
	return vals
}

// Pair names the two assets whose dominance is tracked.
type Pair struct {
	Name   string
	AssetA string
	AssetB string
}

// MarketData holds raw price data for one pair as fetched by the collector.
type MarketData struct {
	Pair      Pair
	PricesA   []PricePoint
	PricesB   []PricePoint
	FetchedAt time.Time
}

// GlobalSnapshot is the current market-cap breakdown of the whole crypto market.
type GlobalSnapshot struct {
	BTCDominance   float64
	ETHDominance   float64
	TotalMarketCap float64 // USD
	ActiveCryptos  int
	FetchedAt      time.Time
}

// OthersDominance is the market-cap share not held by BTC or ETH.
func (g *GlobalSnapshot) OthersDominance() float64 {
	return 100 - g.BTCDominance - g.ETHDominance
}
