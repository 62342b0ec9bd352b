package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coinwatch/market-core/cache"
	"github.com/coinwatch/market-core/coingecko_quotes"
	"github.com/coinwatch/market-core/coingecko_search"
	"github.com/coinwatch/market-core/config"
	"github.com/coinwatch/market-core/events"
	"github.com/coinwatch/market-core/watchlist"
)

// newUpstreamStub fakes the two CoinGecko endpoints the services consume
func newUpstreamStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v3/coins/markets":
			var records []map[string]interface{}
			for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
				switch id {
				case "bitcoin":
					records = append(records, map[string]interface{}{
						"id": "bitcoin", "symbol": "btc", "name": "Bitcoin",
						"current_price": 50000.0, "price_change_percentage_24h": 2.5,
					})
				case "ethereum":
					records = append(records, map[string]interface{}{
						"id": "ethereum", "symbol": "eth", "name": "Ethereum",
						"current_price": 3000.0,
					})
				}
			}
			_ = json.NewEncoder(w).Encode(records)
		case "/api/v3/search":
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"coins": []map[string]interface{}{
					{"id": "bitcoin", "name": "Bitcoin", "symbol": "BTC", "market_cap_rank": 1, "thumb": "t1"},
					{"id": "bitcoin-fork", "name": "Bitcoin Fork", "symbol": "BTF", "market_cap_rank": nil},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
}

type testEnv struct {
	server        *httptest.Server
	watchlist     *watchlist.Service
	subscriptions *events.SubscriptionManager
}

func newTestEnv(t *testing.T, upstreamURL string) *testEnv {
	t.Helper()

	cfg := &config.Config{OverrideCoingeckoPublicURL: upstreamURL}
	cfg.ApplyDefaults()

	watchlistService := watchlist.NewService(filepath.Join(t.TempDir(), "watchlist.json"))
	require.NoError(t, watchlistService.Start(context.Background()))

	subscriptions := events.NewSubscriptionManager()
	quotesService := coingecko_quotes.NewService(cfg, cache.NewService(cache.DefaultConfig()),
		watchlistService, subscriptions)
	searchService := coingecko_search.NewService(cfg)

	apiServer := New("0", quotesService, searchService, watchlistService, quotesService.Updater())
	server := httptest.NewServer(apiServer.newRouter())
	t.Cleanup(server.Close)

	return &testEnv{
		server:        server,
		watchlist:     watchlistService,
		subscriptions: subscriptions,
	}
}

func TestHandleQuotes(t *testing.T) {
	upstream := newUpstreamStub(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	resp, err := http.Get(env.server.URL + "/api/v1/quotes?ids=btc,eth,foo")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quotes map[string]coingecko_quotes.Quote
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quotes))

	assert.Len(t, quotes, 2)
	assert.Equal(t, 50000.0, quotes["btc"].PriceUSD)
	assert.Equal(t, 0.0, quotes["eth"].ChangePercent24h)
	assert.NotContains(t, quotes, "foo")
}

func TestHandleQuotes_MissingIDs(t *testing.T) {
	upstream := newUpstreamStub(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	resp, err := http.Get(env.server.URL + "/api/v1/quotes")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandleQuotes_UpstreamFailure(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	env := newTestEnv(t, failing.URL)

	resp, err := http.Get(env.server.URL + "/api/v1/quotes?ids=btc")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestHandleQuote(t *testing.T) {
	upstream := newUpstreamStub(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	resp, err := http.Get(env.server.URL + "/api/v1/quotes/btc")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var quote coingecko_quotes.Quote
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&quote))
	assert.Equal(t, 50000.0, quote.PriceUSD)

	resp, err = http.Get(env.server.URL + "/api/v1/quotes/unknownxyz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleSearch(t *testing.T) {
	upstream := newUpstreamStub(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	resp, err := http.Get(env.server.URL + "/api/v1/search?query=bitcoin")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []coingecko_search.SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))

	// Rankless fork is filtered out
	require.Len(t, results, 1)
	assert.Equal(t, "bitcoin", results[0].ID)
}

func TestHandleSearch_UpstreamDownReturnsEmptyList(t *testing.T) {
	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	env := newTestEnv(t, failing.URL)

	resp, err := http.Get(env.server.URL + "/api/v1/search?query=bitcoin")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var results []coingecko_search.SearchResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&results))
	assert.Empty(t, results)
}

func TestWatchlistFlow(t *testing.T) {
	upstream := newUpstreamStub(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	// Add
	resp, err := http.Post(env.server.URL+"/api/v1/watchlist", "application/json",
		bytes.NewBufferString(`{"id":"btc"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate add
	resp, err = http.Post(env.server.URL+"/api/v1/watchlist", "application/json",
		bytes.NewBufferString(`{"id":"btc"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Invalid body
	resp, err = http.Post(env.server.URL+"/api/v1/watchlist", "application/json",
		bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// List
	resp, err = http.Get(env.server.URL + "/api/v1/watchlist")
	require.NoError(t, err)
	var ids []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ids))
	resp.Body.Close()
	assert.Equal(t, []string{"btc"}, ids)

	// Remove
	req, _ := http.NewRequest(http.MethodDelete, env.server.URL+"/api/v1/watchlist/btc", nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Remove again
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandleHealth(t *testing.T) {
	upstream := newUpstreamStub(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	resp, err := http.Get(env.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "unknown", health.Services["coingecko_quotes"])
}

func TestWebSocket_PushesOnRefresh(t *testing.T) {
	upstream := newUpstreamStub(t)
	defer upstream.Close()
	env := newTestEnv(t, upstream.URL)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/v1/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Snapshot arrives immediately
	var snapshot map[string]coingecko_quotes.Quote
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Empty(t, snapshot)

	// A refresh notification triggers another push
	env.subscriptions.Emit(context.Background())

	var update map[string]coingecko_quotes.Quote
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&update))
}

func TestSplitParamLowercase(t *testing.T) {
	assert.Equal(t, []string{"btc", "eth"}, splitParamLowercase("BTC, eth"))
	assert.Equal(t, []string{"btc"}, splitParamLowercase("btc,,  "))
	assert.Empty(t, splitParamLowercase(""))
}
