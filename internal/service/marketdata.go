package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/set-night/cryptopulse/internal/config"
	"github.com/set-night/cryptopulse/internal/domain"
)

// MarketDataService fetches daily OHLCV windows from the Twelve Data
// time_series endpoint. With DEBUG_USE_MOCK_DATA it serves deterministic
// generated windows instead and never touches the network.
type MarketDataService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	useMock    bool
}

func NewMarketDataService(cfg *config.Config) *MarketDataService {
	return &MarketDataService{
		apiKey:     cfg.TwelveDataKey,
		baseURL:    cfg.TwelveDataURL,
		httpClient: &http.Client{Timeout: config.MarketDataTimeout},
		useMock:    cfg.UseMockData,
	}
}

type timeSeriesResponse struct {
	Values []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Fetch returns an oldest-first window of daily bars for the symbol.
func (s *MarketDataService) Fetch(ctx context.Context, symbol string, window int) ([]domain.Bar, error) {
	if s.useMock {
		return mockBars(symbol, window), nil
	}

	q := url.Values{}
	q.Set("symbol", formatTicker(symbol))
	q.Set("interval", config.DefaultTimeframe)
	q.Set("outputsize", strconv.Itoa(window))
	q.Set("apikey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/time_series?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", domain.ErrDataUnavailable, err)
	}

	var ts timeSeriesResponse
	if err := json.Unmarshal(body, &ts); err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", domain.ErrDataUnavailable, err)
	}

	if ts.Status == "error" {
		// Twelve Data answers 400 with a "symbol not available" message for
		// unknown tickers.
		if ts.Code == 400 || ts.Code == 404 {
			return nil, fmt.Errorf("%w: %s", domain.ErrSymbolNotFound, ts.Message)
		}
		return nil, fmt.Errorf("%w: api error %d: %s", domain.ErrDataUnavailable, ts.Code, ts.Message)
	}
	if len(ts.Values) == 0 {
		return nil, fmt.Errorf("%w: empty window", domain.ErrDataUnavailable)
	}

	bars, err := parseBars(ts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDataUnavailable, err)
	}
	return bars, nil
}

// parseBars converts the newest-first API values into oldest-first bars.
func parseBars(ts timeSeriesResponse) ([]domain.Bar, error) {
	bars := make([]domain.Bar, 0, len(ts.Values))
	for i := len(ts.Values) - 1; i >= 0; i-- {
		v := ts.Values[i]
		t, err := time.Parse("2006-01-02", v.Datetime)
		if err != nil {
			return nil, fmt.Errorf("parse datetime %q: %v", v.Datetime, err)
		}
		bar := domain.Bar{Timestamp: t}
		for _, f := range []struct {
			dst *float64
			src string
		}{
			{&bar.Open, v.Open},
			{&bar.High, v.High},
			{&bar.Low, v.Low},
			{&bar.Close, v.Close},
			{&bar.Volume, v.Volume},
		} {
			if f.src == "" {
				continue
			}
			val, err := strconv.ParseFloat(f.src, 64)
			if err != nil {
				return nil, fmt.Errorf("parse value %q: %v", f.src, err)
			}
			*f.dst = val
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// formatTicker appends the USD quote currency expected by Twelve Data.
func formatTicker(symbol string) string {
	symbol = normalizeSymbol(symbol)
	if strings.Contains(symbol, "/") {
		return symbol
	}
	return symbol + "/USD"
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSymbol is a light syntactic check before hitting the API.
func ValidateSymbol(symbol string) bool {
	if symbol == "" || len(symbol) > config.MaxSymbolLen {
		return false
	}
	for _, r := range symbol {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

var mockBasePrices = map[string]float64{
	"BTC":   45000,
	"ETH":   3000,
	"SOL":   100,
	"BNB":   300,
	"ADA":   0.5,
	"DOT":   7,
	"LINK":  15,
	"MATIC": 0.8,
}

// mockBars generates a reproducible random walk per symbol: the seed depends
// only on the symbol, so repeated fetches see the same window.
func mockBars(symbol string, window int) []domain.Bar {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	base, ok := mockBasePrices[symbol]
	if !ok {
		base = 100
	}

	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	today := time.Now().UTC().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(window - 1))

	bars := make([]domain.Bar, 0, window)
	price := base
	for i := 0; i < window; i++ {
		if i > 0 {
			price *= 1 + rng.NormFloat64()*0.05
		}
		open := price * (1 + rng.NormFloat64()*0.02)
		high := maxFloat(open, price) * (1 + absFloat(rng.NormFloat64())*0.02)
		low := minFloat(open, price) * (1 - absFloat(rng.NormFloat64())*0.02)
		bars = append(bars, domain.Bar{
			Timestamp: start.AddDate(0, 0, i),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     price,
			Volume:    float64(1_000_000 + rng.Intn(4_000_000)),
		})
	}
	return bars
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
