package coingecko_quotes

import (
	"strings"

	cg "github.com/coinwatch/market-core/coingecko_common"
)

const (
	// Complete path for markets API endpoint
	MARKETS_API_PATH = "/api/v3/coins/markets"
)

// MarketsRequestBuilder implements the Builder pattern for CoinGecko markets API requests
type MarketsRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

// NewMarketsRequestBuilder creates a new request builder for the markets endpoint
func NewMarketsRequestBuilder(baseURL string) *MarketsRequestBuilder {
	return &MarketsRequestBuilder{
		CoingeckoRequestBuilder: cg.NewCoingeckoRequestBuilder(baseURL, MARKETS_API_PATH),
	}
}

// WithIDs adds ids parameter (comma-separated list of coin IDs)
func (rb *MarketsRequestBuilder) WithIDs(ids []string) *MarketsRequestBuilder {
	if len(ids) > 0 {
		rb.With("ids", strings.Join(ids, ","))
	}
	return rb
}

// WithPriceChangePercentage adds price_change_percentage parameter
func (rb *MarketsRequestBuilder) WithPriceChangePercentage(windows []string) *MarketsRequestBuilder {
	if len(windows) > 0 {
		rb.With("price_change_percentage", strings.Join(windows, ","))
	}
	return rb
}
