package coingecko_search

import (
	cg "github.com/coinwatch/market-core/coingecko_common"
)

const (
	// Complete path for search API endpoint
	SEARCH_API_PATH = "/api/v3/search"
)

// SearchRequestBuilder implements the Builder pattern for CoinGecko search API requests
type SearchRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

// NewSearchRequestBuilder creates a new request builder for the search endpoint
func NewSearchRequestBuilder(baseURL string) *SearchRequestBuilder {
	return &SearchRequestBuilder{
		CoingeckoRequestBuilder: cg.NewCoingeckoRequestBuilder(baseURL, SEARCH_API_PATH),
	}
}

// WithQuery adds the query parameter
func (rb *SearchRequestBuilder) WithQuery(query string) *SearchRequestBuilder {
	if query != "" {
		rb.With("query", query)
	}
	return rb
}
