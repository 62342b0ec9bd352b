package config

// RateLimit represents rate limiting settings for the public CoinGecko API
type RateLimit struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

// ApplyDefaults fills in default values for unset fields
func (c *RateLimit) ApplyDefaults() {
	if c.RequestsPerMinute <= 0 {
		// Observed public API allowance is around tens of calls per minute
		c.RequestsPerMinute = 30
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
}
