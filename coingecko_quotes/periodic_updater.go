package coingecko_quotes

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/coinwatch/market-core/cache"
	"github.com/coinwatch/market-core/config"
	"github.com/coinwatch/market-core/events"
	"github.com/coinwatch/market-core/metrics"
	"github.com/coinwatch/market-core/scheduler"
)

// QuotesFetcher is the slice of the quotes service the updater depends on
type QuotesFetcher interface {
	GetQuotes(ctx context.Context, assetIDs []string) (map[string]Quote, error)
}

// IDProvider supplies the tracked asset ids to refresh
type IDProvider interface {
	IDs() []string
}

// PeriodicUpdater re-fetches the watchlist on an interval, stores the result
// in the cache with the configured TTL and notifies subscribers. Scheduling
// and staleness live here, not in the fetch path.
type PeriodicUpdater struct {
	cfg           *config.CoingeckoQuotesFetcher
	fetcher       QuotesFetcher
	idProvider    IDProvider
	cacheService  *cache.Service
	metricsWriter *metrics.MetricsWriter
	subscriptions *events.SubscriptionManager
	scheduler     *scheduler.Scheduler
}

// NewPeriodicUpdater creates a new watchlist refresh updater
func NewPeriodicUpdater(cfg *config.CoingeckoQuotesFetcher, fetcher QuotesFetcher, idProvider IDProvider,
	cacheService *cache.Service, subscriptions *events.SubscriptionManager) *PeriodicUpdater {
	u := &PeriodicUpdater{
		cfg:           cfg,
		fetcher:       fetcher,
		idProvider:    idProvider,
		cacheService:  cacheService,
		metricsWriter: metrics.NewMetricsWriter(metrics.ServiceQuotes),
		subscriptions: subscriptions,
	}
	u.scheduler = scheduler.New(cfg.RefreshInterval, u.refresh)
	return u
}

// Start begins the periodic refresh, fetching once immediately
func (u *PeriodicUpdater) Start(ctx context.Context) {
	u.scheduler.Start(ctx, true)
}

// Stop halts the periodic refresh
func (u *PeriodicUpdater) Stop() {
	u.scheduler.Stop()
}

// Subscribe returns a subscription notified after each successful refresh
func (u *PeriodicUpdater) Subscribe() *events.Subscription {
	return u.subscriptions.Subscribe()
}

// LatestQuotes returns the cached quotes for the currently tracked ids
func (u *PeriodicUpdater) LatestQuotes() map[string]Quote {
	ids := u.idProvider.IDs()
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = quoteCacheKey(id)
	}

	found, _ := u.cacheService.Get(keys)

	quotes := make(map[string]Quote, len(found))
	for i, id := range ids {
		data, ok := found[keys[i]]
		if !ok {
			continue
		}
		var quote Quote
		if err := json.Unmarshal(data, &quote); err != nil {
			log.Printf("CoinGeckoQuotes: Dropping unreadable cache entry for %s: %v", id, err)
			continue
		}
		quotes[id] = quote
	}

	return quotes
}

func (u *PeriodicUpdater) refresh(ctx context.Context) {
	ids := u.idProvider.IDs()
	if len(ids) == 0 {
		return
	}

	start := time.Now()
	quotes, err := u.fetcher.GetQuotes(ctx, ids)
	if err != nil {
		// Stale cache entries stay until TTL; next tick retries
		log.Printf("CoinGeckoQuotes: Watchlist refresh failed: %v", err)
		return
	}

	data := make(map[string][]byte, len(quotes))
	for id, quote := range quotes {
		encoded, err := json.Marshal(quote)
		if err != nil {
			log.Printf("CoinGeckoQuotes: Error encoding quote for %s: %v", id, err)
			continue
		}
		data[quoteCacheKey(id)] = encoded
	}
	u.cacheService.Set(data, u.cfg.TTL)

	u.metricsWriter.RecordDataFetchCycle(time.Since(start))
	u.metricsWriter.RecordCacheSize(u.cacheService.ItemCount())

	u.subscriptions.Emit(ctx)
}

func quoteCacheKey(assetID string) string {
	return "quotes:" + assetID
}
