package coingecko_quotes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/coinwatch/market-core/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPIClient struct {
	records []MarketRecord
	err     error
	calls   int
	lastIDs []string
}

func (f *fakeAPIClient) FetchMarkets(ctx context.Context, ids []string) ([]MarketRecord, error) {
	f.calls++
	f.lastIDs = ids
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func (f *fakeAPIClient) Healthy() bool { return true }

func newTestService(client *fakeAPIClient) *Service {
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	service := NewService(cfg, nil, nil, nil)
	service.client = client
	return service
}

func floatPtr(v float64) *float64 { return &v }

func TestGetQuotes_EmptyInputShortCircuits(t *testing.T) {
	client := &fakeAPIClient{}
	service := newTestService(client)

	quotes, err := service.GetQuotes(context.Background(), []string{})

	require.NoError(t, err)
	assert.Empty(t, quotes)
	assert.Equal(t, 0, client.calls, "empty input must not hit the network")
}

func TestGetQuotes_SingleBatchedRequest(t *testing.T) {
	client := &fakeAPIClient{
		records: []MarketRecord{
			{ID: "bitcoin", CurrentPrice: 50000, PriceChangePercentage24h: floatPtr(2.5)},
			{ID: "ethereum", CurrentPrice: 3000, PriceChangePercentage24h: floatPtr(-1.2)},
		},
	}
	service := newTestService(client)

	_, err := service.GetQuotes(context.Background(), []string{"btc", "eth", "foo"})

	require.NoError(t, err)
	assert.Equal(t, 1, client.calls, "a multi-id call makes exactly one request")
	assert.Equal(t, []string{"bitcoin", "ethereum", "foo"}, client.lastIDs)
}

func TestGetQuotes_CorrelatesByOriginalID(t *testing.T) {
	client := &fakeAPIClient{
		records: []MarketRecord{
			{ID: "bitcoin", CurrentPrice: 50000, PriceChangePercentage24h: floatPtr(2.5)},
			{ID: "ethereum", CurrentPrice: 3000, PriceChangePercentage24h: floatPtr(-1.2)},
		},
	}
	service := newTestService(client)

	quotes, err := service.GetQuotes(context.Background(), []string{"btc", "eth", "foo"})

	require.NoError(t, err)
	assert.Len(t, quotes, 2)
	assert.Contains(t, quotes, "btc")
	assert.Contains(t, quotes, "eth")
	assert.NotContains(t, quotes, "foo")
	assert.Equal(t, 50000.0, quotes["btc"].PriceUSD)
	assert.Equal(t, 2.5, quotes["btc"].ChangePercent24h)
	assert.Equal(t, -1.2, quotes["eth"].ChangePercent24h)
}

func TestGetQuotes_DuplicateCanonicalFirstInputWins(t *testing.T) {
	client := &fakeAPIClient{
		records: []MarketRecord{
			{ID: "bitcoin", CurrentPrice: 50000},
		},
	}
	service := newTestService(client)

	quotes, err := service.GetQuotes(context.Background(), []string{"btc", "bitcoin"})

	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.Contains(t, quotes, "btc")
	assert.NotContains(t, quotes, "bitcoin")
}

func TestGetQuotes_UnrequestedRecordDropped(t *testing.T) {
	client := &fakeAPIClient{
		records: []MarketRecord{
			{ID: "bitcoin", CurrentPrice: 50000},
			{ID: "solana", CurrentPrice: 150},
		},
	}
	service := newTestService(client)

	quotes, err := service.GetQuotes(context.Background(), []string{"btc"})

	require.NoError(t, err)
	assert.Len(t, quotes, 1)
	assert.Contains(t, quotes, "btc")
}

func TestGetQuotes_MissingChangeDefaultsToZero(t *testing.T) {
	client := &fakeAPIClient{
		records: []MarketRecord{
			{ID: "bitcoin", CurrentPrice: 50000},
		},
	}
	service := newTestService(client)

	quotes, err := service.GetQuotes(context.Background(), []string{"btc"})

	require.NoError(t, err)
	assert.Equal(t, 0.0, quotes["btc"].ChangePercent24h)
}

func TestGetQuotes_LastUpdatedStampedLocally(t *testing.T) {
	client := &fakeAPIClient{
		records: []MarketRecord{
			{ID: "bitcoin", CurrentPrice: 50000},
		},
	}
	service := newTestService(client)

	before := time.Now()
	quotes, err := service.GetQuotes(context.Background(), []string{"btc"})
	after := time.Now()

	require.NoError(t, err)
	lastUpdated := quotes["btc"].LastUpdated
	assert.False(t, lastUpdated.Before(before))
	assert.False(t, lastUpdated.After(after))
}

func TestGetQuotes_FetchFailureWrapped(t *testing.T) {
	cause := errors.New("connection refused")
	client := &fakeAPIClient{err: cause}
	service := newTestService(client)

	quotes, err := service.GetQuotes(context.Background(), []string{"btc"})

	require.Error(t, err)
	assert.Nil(t, quotes)
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "failed to fetch quotes")
}

func TestGetQuote(t *testing.T) {
	client := &fakeAPIClient{
		records: []MarketRecord{
			{ID: "bitcoin", CurrentPrice: 50000},
		},
	}
	service := newTestService(client)

	quote, found, err := service.GetQuote(context.Background(), "btc")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 50000.0, quote.PriceUSD)

	// Resolvable id that the upstream does not return is absent, not an error
	_, found, err = service.GetQuote(context.Background(), "unknownxyz")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetQuote_FetchFailure(t *testing.T) {
	client := &fakeAPIClient{err: errors.New("boom")}
	service := newTestService(client)

	_, found, err := service.GetQuote(context.Background(), "btc")
	assert.Error(t, err)
	assert.False(t, found)
}
