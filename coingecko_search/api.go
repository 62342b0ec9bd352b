package coingecko_search

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
	// FetchSearch runs one search query against the upstream API
	FetchSearch(ctx context.Context, query string) ([]SearchResult, error)
	// Healthy checks if the API has had at least one successful fetch
	Healthy() bool
}

// CoinGeckoClient implements APIClient for CoinGecko
type CoinGeckoClient struct {
	config          *config.Config
	httpClient      *cg.HTTPClientWithRetries
	successfulFetch atomic.Bool
}

// NewCoinGeckoClient creates a new CoinGecko search API client
func NewCoinGeckoClient(cfg *config.Config, metricsWriter *metrics.MetricsWriter) *CoinGeckoClient {
	retryOpts := cg.DefaultRetryOptions()
	retryOpts.LogPrefix = "CoinGeckoSearch"

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

// FetchSearch runs one search query and returns the raw coin results
func (c *CoinGeckoClient) FetchSearch(ctx context.Context, query string) ([]SearchResult, error) {
	request, err := NewSearchRequestBuilder(cg.GetApiBaseUrl(c.config)).
		WithQuery(query).
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

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		log.Printf("CoinGeckoSearch: Error parsing JSON response: %v", err)
		return nil, &cg.ParseError{Err: err}
	}

	log.Printf("CoinGeckoSearch: Query %q returned %d coins in %.2fs",
		query, len(parsed.Coins), duration.Seconds())

	c.successfulFetch.Store(true)

	return parsed.Coins, nil
}
