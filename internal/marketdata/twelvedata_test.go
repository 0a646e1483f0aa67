package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) *TwelveDataClient {
	return NewTwelveDataClient(TwelveDataOptions{
		APIKey:         "test-key",
		BaseURL:        baseURL,
		RequestTimeout: 2 * time.Second,
		RequestsPerSec: 100,
		LookupWindow:   5,
	})
}

func TestPriceOnOrNearPicksNearestTradingDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "1day", r.URL.Query().Get("interval"))

		fmt.Fprint(w, `{
			"values": [
				{"datetime": "2024-03-08", "close": "170.73"},
				{"datetime": "2024-03-07", "close": "169.00"},
				{"datetime": "2024-03-11", "close": "172.75"}
			],
			"status": "ok"
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	// 2024-03-09 is a Saturday; Friday the 8th is the nearest close
	date := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	price, err := client.PriceOnOrNear(context.Background(), "AAPL", date)

	require.NoError(t, err)
	assert.Equal(t, 170.73, price)
}

func TestPriceOnOrNearExactDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"values": [
				{"datetime": "2024-03-07", "close": "169.00"},
				{"datetime": "2024-03-08", "close": "170.73"}
			],
			"status": "ok"
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	date := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	price, err := client.PriceOnOrNear(context.Background(), "AAPL", date)

	require.NoError(t, err)
	assert.Equal(t, 169.00, price)
}

func TestPriceOnOrNearNoData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"values": [], "status": "ok"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.PriceOnOrNear(context.Background(), "ZZZZ", time.Now())
	assert.True(t, errors.Is(err, ErrPriceUnavailable))
}

func TestPriceOnOrNearAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "error"}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.PriceOnOrNear(context.Background(), "AAPL", time.Now())
	assert.True(t, errors.Is(err, ErrPriceUnavailable))
}
