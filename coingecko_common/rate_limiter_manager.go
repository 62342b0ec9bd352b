package coingecko_common

import (
	"net/url"
	"sync"

	"github.com/coinwatch/market-core/config"
	"golang.org/x/time/rate"
)

// IRateLimiterManager provides a way to get a rate limiter for a request URL
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	GetLimiterForURL(u *url.URL) *rate.Limiter
	SetConfig(cfg config.RateLimit)
}

// RateLimiterManager manages per-host rate limiters for the public API
type RateLimiterManager struct {
	mu           sync.RWMutex
	hostLimiters map[string]*rate.Limiter
	config       config.RateLimit
}

var (
	managerOnce   sync.Once
	globalManager *RateLimiterManager
)

// GetRateLimiterManagerInstance returns the global singleton RateLimiterManager instance
func GetRateLimiterManagerInstance() *RateLimiterManager {
	managerOnce.Do(func() {
		cfg := config.RateLimit{}
		cfg.ApplyDefaults()
		globalManager = &RateLimiterManager{
			hostLimiters: make(map[string]*rate.Limiter),
			config:       cfg,
		}
	})
	return globalManager
}

// SetConfig applies a new rate limit configuration and rebuilds existing limiters
func (m *RateLimiterManager) SetConfig(newCfg config.RateLimit) {
	newCfg.ApplyDefaults()

	m.mu.Lock()
	defer m.mu.Unlock()

	if newCfg == m.config {
		return
	}

	m.config = newCfg
	for host := range m.hostLimiters {
		m.hostLimiters[host] = m.newLimiterLocked()
	}
}

// GetLimiterForURL returns the limiter for known CoinGecko hosts, nil otherwise
func (m *RateLimiterManager) GetLimiterForURL(u *url.URL) *rate.Limiter {
	if m == nil || u == nil {
		return nil
	}

	host := u.Hostname()
	if host != "api.coingecko.com" {
		// No limiter for unrelated hosts
		return nil
	}

	m.mu.RLock()
	if lim, ok := m.hostLimiters[host]; ok {
		m.mu.RUnlock()
		return lim
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if lim, ok := m.hostLimiters[host]; ok {
		return lim
	}

	limiter := m.newLimiterLocked()
	m.hostLimiters[host] = limiter
	return limiter
}

func (m *RateLimiterManager) newLimiterLocked() *rate.Limiter {
	limit := rate.Limit(float64(m.config.RequestsPerMinute) / 60.0)
	return rate.NewLimiter(limit, m.config.Burst)
}
