package config

// Watchlist represents configuration for the tracked-asset store
type Watchlist struct {
	File string `yaml:"file"` // Path to the JSON file holding tracked asset ids
}

// ApplyDefaults fills in default values for unset fields
func (c *Watchlist) ApplyDefaults() {
	if c.File == "" {
		c.File = "watchlist.json"
	}
}
