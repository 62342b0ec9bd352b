package coingecko_search

// SearchResult represents one coin suggestion from the search endpoint
type SearchResult struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank *int   `json:"market_cap_rank"`
	Thumb         string `json:"thumb"`
}

// searchResponse mirrors the /search response envelope
type searchResponse struct {
	Coins []SearchResult `json:"coins"`
}
