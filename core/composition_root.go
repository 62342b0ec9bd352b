package core

import (
	"context"
	"os"

	"github.com/coinwatch/market-core/api"
	"github.com/coinwatch/market-core/cache"
	cg "github.com/coinwatch/market-core/coingecko_common"
	"github.com/coinwatch/market-core/coingecko_quotes"
	"github.com/coinwatch/market-core/coingecko_search"
	"github.com/coinwatch/market-core/config"
	"github.com/coinwatch/market-core/events"
	"github.com/coinwatch/market-core/watchlist"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	cg.GetRateLimiterManagerInstance().SetConfig(cfg.RateLimit)

	// Cache service holding the refreshed watchlist quotes
	cacheService := cache.NewService(cache.Config{
		DefaultExpiration: cfg.QuotesFetcher.TTL,
		CleanupInterval:   2 * cfg.QuotesFetcher.TTL,
	})
	registry.Register(cacheService)

	// Tracked-asset store (needed by the quotes refresher)
	watchlistService := watchlist.NewService(cfg.Watchlist.File)
	registry.Register(watchlistService)

	// Quotes service with background watchlist refresh
	subscriptions := events.NewSubscriptionManager()
	quotesService := coingecko_quotes.NewService(cfg, cacheService, watchlistService, subscriptions)
	registry.Register(quotesService)

	// Search service
	searchService := coingecko_search.NewService(cfg)
	registry.Register(searchService)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// HTTP server
	server := api.New(port, quotesService, searchService, watchlistService, quotesService.Updater())
	registry.Register(server)

	return registry, nil
}
