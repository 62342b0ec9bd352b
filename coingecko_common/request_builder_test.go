package coingecko_common

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoingeckoRequestBuilder_BuildURL(t *testing.T) {
	builder := NewCoingeckoRequestBuilder("https://api.coingecko.com", "/api/v3/coins/markets")
	builder.WithCurrency("usd").With("ids", "bitcoin,ethereum")

	built, err := url.Parse(builder.BuildURL())
	require.NoError(t, err)

	assert.Equal(t, "api.coingecko.com", built.Host)
	assert.Equal(t, "/api/v3/coins/markets", built.Path)
	assert.Equal(t, "usd", built.Query().Get("vs_currency"))
	assert.Equal(t, "bitcoin,ethereum", built.Query().Get("ids"))
}

func TestCoingeckoRequestBuilder_TrailingSlashes(t *testing.T) {
	builder := NewCoingeckoRequestBuilder("https://api.coingecko.com/", "api/v3/search")

	assert.Equal(t, "https://api.coingecko.com/api/v3/search", builder.BuildURL())
}

func TestCoingeckoRequestBuilder_Build(t *testing.T) {
	builder := NewCoingeckoRequestBuilder("https://api.coingecko.com", "/api/v3/search").
		With("query", "bit coin").
		WithHeader("X-Test", "yes")

	req, err := builder.Build()
	require.NoError(t, err)

	assert.Equal(t, "GET", req.Method)
	assert.Equal(t, "bit coin", req.URL.Query().Get("query"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "yes", req.Header.Get("X-Test"))
	assert.Equal(t, "Mozilla/5.0 CoinWatch", req.Header.Get("User-Agent"))
}
