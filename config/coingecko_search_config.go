package config

// CoingeckoSearch represents configuration for the search service
type CoingeckoSearch struct {
	MaxResults int `yaml:"max_results"` // Maximum number of suggestions returned
}

// ApplyDefaults fills in default values for unset fields
func (c *CoingeckoSearch) ApplyDefaults() {
	if c.MaxResults <= 0 {
		c.MaxResults = 10
	}
}
