package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"DominanceSentinel/internal/model"
	"DominanceSentinel/internal/series"
)

// DefaultCoinGeckoURL is the public CoinGecko API.
const DefaultCoinGeckoURL = "https://api.coingecko.com/api/v3"

// CoinGeckoFetcher implements Fetcher using the CoinGecko REST API.
type CoinGeckoFetcher struct {
	BaseURL    string
	APIKey     string
	VsCurrency string
	Client     *http.Client
}

// NewCoinGeckoFetcher creates a new fetcher with optional proxy support.
func NewCoinGeckoFetcher(baseURL, apiKey, vsCurrency, proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultCoinGeckoURL
	}
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	return &CoinGeckoFetcher{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		VsCurrency: vsCurrency,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// marketChart is the response of /coins/{id}/market_chart. Each price is [epoch_ms, price].
type marketChart struct {
	Prices [][]json.Number `json:"prices"`
}

// globalResponse is the response of /global.
type globalResponse struct {
	Data struct {
		ActiveCryptocurrencies int                `json:"active_cryptocurrencies"`
		TotalMarketCap         map[string]float64 `json:"total_market_cap"`
		MarketCapPercentage    map[string]float64 `json:"market_cap_percentage"`
	} `json:"data"`
}

func (f *CoinGeckoFetcher) FetchDailyPrices(ctx context.Context, assetID string, days int) ([]model.PricePoint, error) {
	if days <= 0 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}
	endpoint := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=%s&days=%d&interval=daily",
		f.BaseURL, url.PathEscape(assetID), url.QueryEscape(f.VsCurrency), days)

	var chart marketChart
	if err := f.getJSON(ctx, endpoint, &chart); err != nil {
		return nil, fmt.Errorf("fetch %s prices: %w", assetID, err)
	}
	if len(chart.Prices) == 0 {
		return nil, fmt.Errorf("coingecko: no prices returned for %s", assetID)
	}

	points := make([]model.PricePoint, 0, len(chart.Prices))
	for i, row := range chart.Prices {
		if len(row) != 2 {
			return nil, fmt.Errorf("coingecko: malformed price row %d for %s", i, assetID)
		}
		ts, err := series.ParseTimestamp(row[0].String())
		if err != nil {
			return nil, fmt.Errorf("coingecko: row %d: %w", i, err)
		}
		price, err := row[1].Float64()
		if err != nil {
			return nil, fmt.Errorf("coingecko: row %d price: %w", i, err)
		}
		points = append(points, model.PricePoint{Time: utcDay(ts), Value: price})
	}

	// Rows are bucketed by UTC day: the trailing partial row (stamped with the request time)
	// replaces that day's midnight row, so separately fetched assets share timestamps.
	// Ensure chronological order; on duplicate days keep the later row.
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })
	deduped := points[:0]
	for _, p := range points {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(p.Time) {
			deduped[n-1] = p
			continue
		}
		deduped = append(deduped, p)
	}

	if len(deduped) > days+1 {
		deduped = deduped[len(deduped)-days-1:]
	}
	return deduped, nil
}

func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (f *CoinGeckoFetcher) FetchGlobal(ctx context.Context) (*model.GlobalSnapshot, error) {
	var resp globalResponse
	if err := f.getJSON(ctx, f.BaseURL+"/global", &resp); err != nil {
		return nil, fmt.Errorf("fetch global: %w", err)
	}
	pct := resp.Data.MarketCapPercentage
	if pct == nil {
		return nil, fmt.Errorf("coingecko: global response has no market_cap_percentage")
	}
	return &model.GlobalSnapshot{
		BTCDominance:   pct["btc"],
		ETHDominance:   pct["eth"],
		TotalMarketCap: resp.Data.TotalMarketCap["usd"],
		ActiveCryptos:  resp.Data.ActiveCryptocurrencies,
		FetchedAt:      time.Now(),
	}, nil
}

func (f *CoinGeckoFetcher) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("coingecko request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("coingecko decode: %w", err)
	}
	return nil
}
