package coingecko_quotes

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	cg "github.com/coinwatch/market-core/coingecko_common"
	"github.com/coinwatch/market-core/config"
	"github.com/coinwatch/market-core/metrics"
)

// APIClient defines interface for API operations
type APIClient interface {
	// FetchMarkets fetches market records for the given canonical coin ids
	// in a single batched request
	FetchMarkets(ctx context.Context, ids []string) ([]MarketRecord, error)
	// Healthy checks if the API has had at least one successful fetch
	Healthy() bool
}

// CoinGeckoClient implements APIClient for CoinGecko
type CoinGeckoClient struct {
	config          *config.Config
	httpClient      *cg.HTTPClientWithRetries
	successfulFetch atomic.Bool
}

// NewCoinGeckoClient creates a new CoinGecko markets API client
func NewCoinGeckoClient(cfg *config.Config, metricsWriter *metrics.MetricsWriter) *CoinGeckoClient {
	retryOpts := cg.DefaultRetryOptions()
	retryOpts.LogPrefix = "CoinGeckoQuotes"

	// Avoid storing a typed-nil *metrics.MetricsWriter in the handler
	// interface, which would defeat the client's nil checks
	var statusHandler cg.IHttpStatusHandler
	if metricsWriter != nil {
		statusHandler = metricsWriter
	}

	return &CoinGeckoClient{
		config:     cfg,
		httpClient: cg.NewHTTPClientWithRetries(retryOpts, statusHandler, cg.GetRateLimiterManagerInstance()),
	}
}

// Healthy checks if the API has had at least one successful fetch
func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchMarkets fetches market records for the given canonical coin ids
func (c *CoinGeckoClient) FetchMarkets(ctx context.Context, ids []string) ([]MarketRecord, error) {
	request, err := NewMarketsRequestBuilder(cg.GetApiBaseUrl(c.config)).
		WithIDs(ids).
		WithPriceChangePercentage(c.config.QuotesFetcher.PriceChangePercentage).
		WithCurrency(c.config.QuotesFetcher.Currency).
		Build()
	if err != nil {
		return nil, err
	}
	request = request.WithContext(ctx)

	resp, body, duration, err := c.httpClient.ExecuteRequest(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var records []MarketRecord
	if err := json.Unmarshal(body, &records); err != nil {
		log.Printf("CoinGeckoQuotes: Error parsing JSON response: %v", err)
		return nil, &cg.ParseError{Err: err}
	}

	log.Printf("CoinGeckoQuotes: Fetched %d market records for %d ids in %.2fs",
		len(records), len(ids), duration.Seconds())

	c.successfulFetch.Store(true)

	return records, nil
}
