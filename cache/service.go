package cache

import (
	"context"
	"fmt"
	"time"
)

// Service wraps GoCache behind the core service lifecycle.
// It holds the most recently refreshed data; fetch paths never read it.
type Service struct {
	goCache *GoCache
	config  Config
}

// NewService creates a new cache service with the given configuration
func NewService(config Config) *Service {
	if config.DefaultExpiration <= 0 {
		config = DefaultConfig()
	}

	return &Service{
		goCache: NewGoCache(config.DefaultExpiration, config.CleanupInterval),
		config:  config,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.goCache != nil {
		s.goCache.Clear()
	}
}

// Get retrieves data for the given keys, returning found values and missing keys
func (s *Service) Get(keys []string) (map[string][]byte, []string) {
	result := s.goCache.Get(keys)
	return result.Found, result.MissingKeys
}

// Set stores data with the given TTL; zero TTL uses the default expiration
func (s *Service) Set(data map[string][]byte, ttl time.Duration) {
	s.goCache.Set(data, ttl)
}

// Delete removes the given keys
func (s *Service) Delete(keys []string) {
	s.goCache.Delete(keys)
}

// ItemCount returns the number of cached items
func (s *Service) ItemCount() int {
	return s.goCache.ItemCount()
}
