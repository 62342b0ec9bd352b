package config

import "time"

// CoingeckoQuotesFetcher represents configuration for the quotes service
type CoingeckoQuotesFetcher struct {
	Currency              string        `yaml:"currency"`                // Quote currency, e.g. "usd"
	PriceChangePercentage []string      `yaml:"price_change_percentage"` // Change windows to request, e.g. "24h"
	RefreshInterval       time.Duration `yaml:"refresh_interval"`        // How often the watchlist is re-fetched
	TTL                   time.Duration `yaml:"ttl"`                     // How long refreshed quotes stay in cache
}

// ApplyDefaults fills in default values for unset fields
func (c *CoingeckoQuotesFetcher) ApplyDefaults() {
	if c.Currency == "" {
		c.Currency = "usd"
	}
	if len(c.PriceChangePercentage) == 0 {
		c.PriceChangePercentage = []string{"24h"}
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 60 * time.Second
	}
	if c.TTL <= 0 {
		c.TTL = 5 * time.Minute
	}
}
