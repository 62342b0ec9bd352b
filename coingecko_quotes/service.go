package coingecko_quotes

import (
	"context"
	"fmt"
	"time"

	"github.com/coinwatch/market-core/cache"
	"github.com/coinwatch/market-core/config"
	"github.com/coinwatch/market-core/events"
	"github.com/coinwatch/market-core/metrics"
	"github.com/coinwatch/market-core/symbols"
)

// Service is the quote batch fetcher: it turns a caller-supplied list of
// asset ids into one batched markets request and correlates the results
// back to the original ids.
//
// GetQuotes/GetQuote never touch the cache; the periodic updater owned by
// this service is what keeps the watchlist warm.
type Service struct {
	client  APIClient
	updater *PeriodicUpdater
}

// NewService creates a new quotes service. When a cache service and id
// provider are supplied it also owns a periodic watchlist refresher.
func NewService(cfg *config.Config, cacheService *cache.Service, idProvider IDProvider,
	subscriptions *events.SubscriptionManager) *Service {
	s := &Service{
		client: NewCoinGeckoClient(cfg, metrics.NewMetricsWriter(metrics.ServiceQuotes)),
	}

	if cacheService != nil && idProvider != nil {
		s.updater = NewPeriodicUpdater(&cfg.QuotesFetcher, s, idProvider, cacheService, subscriptions)
	}

	return s
}

// Start implements core.Interface: begins the background watchlist refresh
func (s *Service) Start(ctx context.Context) error {
	if s.updater != nil {
		s.updater.Start(ctx)
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.updater != nil {
		s.updater.Stop()
	}
}

// Healthy checks if the underlying API client is responsive
func (s *Service) Healthy() bool {
	return s.client.Healthy()
}

// Updater exposes the periodic watchlist refresher, nil when not configured
func (s *Service) Updater() *PeriodicUpdater {
	return s.updater
}

// GetQuotes fetches current quotes for the given asset ids in one batched
// upstream request. The returned map is keyed by the exact input ids; ids
// the upstream did not return are simply absent.
func (s *Service) GetQuotes(ctx context.Context, assetIDs []string) (map[string]Quote, error) {
	result := make(map[string]Quote)
	if len(assetIDs) == 0 {
		return result, nil
	}

	resolved := make([]string, len(assetIDs))
	for i, assetID := range assetIDs {
		resolved[i] = symbols.Resolve(assetID)
	}

	records, err := s.client.FetchMarkets(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quotes: %w", err)
	}

	now := time.Now()
	for _, record := range records {
		// First input id (in input order) whose canonical id matches the
		// record wins; any later id resolving to the same coin stays absent
		for i, assetID := range assetIDs {
			if resolved[i] != record.ID {
				continue
			}
			change := 0.0
			if record.PriceChangePercentage24h != nil {
				change = *record.PriceChangePercentage24h
			}
			result[assetID] = Quote{
				PriceUSD:         record.CurrentPrice,
				ChangePercent24h: change,
				LastUpdated:      now,
			}
			break
		}
	}

	return result, nil
}

// GetQuote fetches the quote for a single asset id. The boolean reports
// whether the upstream returned data for the id; false with a nil error
// means the id resolved to something the upstream does not list.
func (s *Service) GetQuote(ctx context.Context, assetID string) (Quote, bool, error) {
	quotes, err := s.GetQuotes(ctx, []string{assetID})
	if err != nil {
		return Quote{}, false, err
	}

	quote, ok := quotes[assetID]
	return quote, ok, nil
}

// LatestQuotes returns the most recently refreshed watchlist quotes.
// Empty until the first refresh completes or after the TTL lapses.
func (s *Service) LatestQuotes() map[string]Quote {
	if s.updater == nil {
		return map[string]Quote{}
	}
	return s.updater.LatestQuotes()
}
