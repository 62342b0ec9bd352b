package coingecko_quotes

import "time"

// Quote represents one asset's price snapshot.
// Quotes are immutable; a refresh produces new values rather than merging.
type Quote struct {
	// PriceUSD current price in USD
	PriceUSD float64 `json:"price_usd"`

	// ChangePercent24h 24-hour change percentage; 0 when the upstream omits it
	ChangePercent24h float64 `json:"change_percent_24h"`

	// LastUpdated timestamp captured locally when the response was parsed
	LastUpdated time.Time `json:"last_updated"`
}

// MarketRecord represents a single entry of the /coins/markets response
type MarketRecord struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             float64  `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h,omitempty"`
}
