package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	QuotesFetcher CoingeckoQuotesFetcher `yaml:"coingecko_quotes"`
	Search        CoingeckoSearch        `yaml:"coingecko_search"`
	Watchlist     Watchlist              `yaml:"watchlist"`
	RateLimit     RateLimit              `yaml:"rate_limit"`

	OverrideCoingeckoPublicURL string `yaml:"override_coingecko_public_url"`
}

// LoadConfig reads a YAML config file and applies defaults for missing sections
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, err
	}

	config.ApplyDefaults()

	return &config, nil
}

// ApplyDefaults fills in default values for any unset fields
func (c *Config) ApplyDefaults() {
	c.QuotesFetcher.ApplyDefaults()
	c.Search.ApplyDefaults()
	c.Watchlist.ApplyDefaults()
	c.RateLimit.ApplyDefaults()
}
