// Package symbols maps short user-facing asset symbols to CoinGecko coin ids.
package symbols

import "strings"

// canonicalIds is a closed table of well-known short codes.
// Anything not listed passes through unchanged, so callers that already
// hold a canonical CoinGecko id can use it directly.
var canonicalIds = map[string]string{
	"btc":   "bitcoin",
	"eth":   "ethereum",
	"usdt":  "tether",
	"bnb":   "binancecoin",
	"sol":   "solana",
	"usdc":  "usd-coin",
	"xrp":   "ripple",
	"ada":   "cardano",
	"doge":  "dogecoin",
	"ton":   "the-open-network",
	"trx":   "tron",
	"dot":   "polkadot",
	"matic": "matic-network",
	"ltc":   "litecoin",
	"shib":  "shiba-inu",
	"avax":  "avalanche-2",
	"link":  "chainlink",
	"atom":  "cosmos",
	"xlm":   "stellar",
	"xmr":   "monero",
}

// Resolve maps an asset symbol to its CoinGecko coin id.
// Total function: the input is lower-cased, unknown symbols resolve to themselves.
func Resolve(assetID string) string {
	id := strings.ToLower(assetID)
	if canonical, ok := canonicalIds[id]; ok {
		return canonical
	}
	return id
}
