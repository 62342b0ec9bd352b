package cache

import "time"

// Config holds cache settings
type Config struct {
	DefaultExpiration time.Duration
	CleanupInterval   time.Duration
}

// DefaultConfig returns cache settings suitable for quote data
func DefaultConfig() Config {
	return Config{
		DefaultExpiration: 5 * time.Minute,
		CleanupInterval:   10 * time.Minute,
	}
}
