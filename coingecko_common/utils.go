package coingecko_common

import (
	"github.com/coinwatch/market-core/config"
)

// GetApiBaseUrl returns the API base URL, honoring a config override
// (used by tests and local setups pointing at a stub server)
func GetApiBaseUrl(cfg *config.Config) string {
	if cfg.OverrideCoingeckoPublicURL != "" {
		return cfg.OverrideCoingeckoPublicURL
	}
	return COINGECKO_PUBLIC_URL
}
