package collector

import (
	"context"

	"DominanceSentinel/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchDailyPrices returns up to `days` daily prices for one asset, oldest first.
	FetchDailyPrices(ctx context.Context, assetID string, days int) ([]model.PricePoint, error)
	// FetchGlobal returns the current market-cap breakdown of the whole market.
	FetchGlobal(ctx context.Context) (*model.GlobalSnapshot, error)
	Name() string
}
