package collector

import (
	"context"
	"fmt"
	"math"
	"time"

	"DominanceSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Prices map[string][]model.PricePoint
	Global *model.GlobalSnapshot
	// BasePrice is used to generate a series for assets missing from Prices.
	BasePrice float64
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyPrices(_ context.Context, assetID string, days int) ([]model.PricePoint, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if pts, ok := m.Prices[assetID]; ok {
		return pts, nil
	}
	return generateMockPrices(m.BasePrice, days), nil
}

func (m *MockFetcher) FetchGlobal(_ context.Context) (*model.GlobalSnapshot, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Global != nil {
		return m.Global, nil
	}
	return &model.GlobalSnapshot{BTCDominance: 52, ETHDominance: 17, TotalMarketCap: 2.4e12, ActiveCryptos: 10000, FetchedAt: time.Now()}, nil
}

func generateMockPrices(basePrice float64, count int) []model.PricePoint {
	if basePrice <= 0 {
		basePrice = 100
	}
	start := time.Now().UTC().Truncate(24 * time.Hour)
	pts := make([]model.PricePoint, count)
	for i := 0; i < count; i++ {
		pts[i] = model.PricePoint{
			Time:  start.AddDate(0, 0, -(count - 1 - i)),
			Value: basePrice * (1 + 0.05*math.Sin(float64(i)/5)),
		}
	}
	return pts
}

// Collector fetches the raw price series for a pair.
type Collector struct {
	Fetcher Fetcher
	Days    int
}

// NewCollector creates a new Collector that requests `days` of daily history.
func NewCollector(fetcher Fetcher, days int) *Collector {
	return &Collector{Fetcher: fetcher, Days: days}
}

// Collect fetches both price series of a pair.
func (c *Collector) Collect(ctx context.Context, pair model.Pair) (*model.MarketData, error) {
	a, err := c.Fetcher.FetchDailyPrices(ctx, pair.AssetA, c.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pair.AssetA, err)
	}
	b, err := c.Fetcher.FetchDailyPrices(ctx, pair.AssetB, c.Days)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pair.AssetB, err)
	}
	return &model.MarketData{Pair: pair, PricesA: a, PricesB: b, FetchedAt: time.Now()}, nil
}

// Global fetches the current market-cap snapshot.
func (c *Collector) Global(ctx context.Context) (*model.GlobalSnapshot, error) {
	g, err := c.Fetcher.FetchGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch global snapshot: %w", err)
	}
	return g, nil
}
