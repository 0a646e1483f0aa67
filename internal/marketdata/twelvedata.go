package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const dateLayout = "2006-01-02"

// TwelveDataClient fetches daily closing prices from the Twelve Data API.
type TwelveDataClient struct {
	apiKey     string
	baseURL    string
	window     int // days searched on each side of the requested date
	httpClient *httpClient
	logger     zerolog.Logger
}

// TwelveDataOptions holds options for creating a new Twelve Data client
type TwelveDataOptions struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
	LookupWindow   int
}

// NewTwelveDataClient creates a new Twelve Data price provider
func NewTwelveDataClient(opts TwelveDataOptions) *TwelveDataClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://api.twelvedata.com"
	}
	if opts.LookupWindow == 0 {
		opts.LookupWindow = 5
	}

	return &TwelveDataClient{
		apiKey:  opts.APIKey,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		window:  opts.LookupWindow,
		httpClient: newHTTPClient(httpClientOptions{
			Timeout:        opts.RequestTimeout,
			RequestsPerSec: opts.RequestsPerSec,
		}),
		logger: log.With().Str("component", "twelvedata_client").Logger(),
	}
}

type timeSeriesResponse struct {
	Values []struct {
		Datetime string `json:"datetime"`
		Close    string `json:"close"`
	} `json:"values"`
	Status string `json:"status"`
}

// PriceOnOrNear returns the daily close on the requested date, or the
// close of the nearest trading day inside the lookup window. A date
// with no trading days in the window yields ErrPriceUnavailable.
func (c *TwelveDataClient) PriceOnOrNear(ctx context.Context, symbol string, date time.Time) (float64, error) {
	date = date.Truncate(24 * time.Hour)
	start := date.AddDate(0, 0, -c.window)
	end := date.AddDate(0, 0, c.window)

	query := url.Values{}
	query.Set("symbol", symbol)
	query.Set("interval", "1day")
	query.Set("start_date", start.Format(dateLayout))
	query.Set("end_date", end.Format(dateLayout))
	query.Set("apikey", c.apiKey)

	reqURL := fmt.Sprintf("%s/time_series?%s", c.baseURL, query.Encode())

	c.logger.Debug().Str("symbol", symbol).Str("date", date.Format(dateLayout)).Msg("Fetching close price")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("reading response body: %w", err)
	}

	var data timeSeriesResponse
	if err := json.Unmarshal(body, &data); err != nil {
		c.logger.Error().Err(err).Str("response", string(body)).Msg("Error parsing JSON")
		return 0, fmt.Errorf("parsing JSON: %w", err)
	}

	if data.Status == "error" || len(data.Values) == 0 {
		c.logger.Warn().Str("symbol", symbol).Str("date", date.Format(dateLayout)).Msg("No price data in window")
		return 0, ErrPriceUnavailable
	}

	// Pick the trading day closest to the requested date
	bestDistance := math.MaxFloat64
	bestClose := 0.0
	found := false

	for _, v := range data.Values {
		day, err := time.Parse(dateLayout, v.Datetime)
		if err != nil {
			continue
		}
		closePrice, err := strconv.ParseFloat(v.Close, 64)
		if err != nil {
			continue
		}

		distance := math.Abs(day.Sub(date).Hours())
		if distance < bestDistance {
			bestDistance = distance
			bestClose = closePrice
			found = true
		}
	}

	if !found {
		return 0, ErrPriceUnavailable
	}

	c.logger.Debug().Str("symbol", symbol).Float64("close", bestClose).Msg("Resolved close price")
	return bestClose, nil
}
