package coingecko_search

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/coinwatch/market-core/config"
	"github.com/coinwatch/market-core/metrics"
)

// Service is the search lookup. Search is advisory autocomplete input, so
// unlike the quote path it never surfaces a failure: every error degrades
// to an empty suggestion list.
type Service struct {
	client     APIClient
	maxResults int
}

// NewService creates a new search service
func NewService(cfg *config.Config) *Service {
	return &Service{
		client:     NewCoinGeckoClient(cfg, metrics.NewMetricsWriter(metrics.ServiceSearch)),
		maxResults: cfg.Search.MaxResults,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// Healthy checks if the underlying API client is responsive
func (s *Service) Healthy() bool {
	return s.client.Healthy()
}

// SearchCoins looks up coins matching the query, keeping only ranked
// results ordered by ascending market-cap rank, capped at the configured
// maximum. A blank query returns no results without a network call.
func (s *Service) SearchCoins(ctx context.Context, query string) []SearchResult {
	query = strings.TrimSpace(query)
	if query == "" {
		return []SearchResult{}
	}

	coins, err := s.client.FetchSearch(ctx, query)
	if err != nil {
		log.Printf("CoinGeckoSearch: Search for %q failed, returning no suggestions: %v", query, err)
		return []SearchResult{}
	}

	// Rankless results are noise for a watchlist picker
	ranked := make([]SearchResult, 0, len(coins))
	for _, coin := range coins {
		if coin.MarketCapRank != nil {
			ranked = append(ranked, coin)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].MarketCapRank < *ranked[j].MarketCapRank
	})

	if len(ranked) > s.maxResults {
		ranked = ranked[:s.maxResults]
	}

	return ranked
}
