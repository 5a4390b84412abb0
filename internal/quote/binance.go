package quote

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"StockCompass/internal/model"
)

// BinanceFetcher implements Fetcher for crypto symbols using the Binance
// public REST API.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a new fetcher with optional proxy support.
// baseURL defaults to the public endpoint when empty.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	if baseURL == "" {
		baseURL = "https://api.binance.com"
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) get(endpoint string) ([]byte, error) {
	resp, err := f.Client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("binance: status %d, body: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// FetchDailyBars fetches daily klines. Binance encodes each kline as a
// mixed-type JSON array: [openTime, open, high, low, close, volume, ...]
// with the price fields as strings.
func (f *BinanceFetcher) FetchDailyBars(symbol string, days int) ([]model.PriceBar, error) {
	if days > 1000 {
		days = 1000 // Binance kline limit per request
	}
	endpoint := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1d&limit=%d",
		f.BaseURL, url.QueryEscape(symbol), days)
	body, err := f.get(endpoint)
	if err != nil {
		return nil, err
	}

	var raw [][]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("binance decode: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("binance: no data returned")
	}

	bars := make([]model.PriceBar, 0, len(raw))
	for _, k := range raw {
		if len(k) < 6 {
			continue
		}
		openTime, ok := k[0].(float64)
		if !ok {
			continue
		}
		bars = append(bars, model.PriceBar{
			Date:   time.UnixMilli(int64(openTime)),
			Open:   parsePrice(k[1]),
			High:   parsePrice(k[2]),
			Low:    parsePrice(k[3]),
			Close:  parsePrice(k[4]),
			Volume: parsePrice(k[5]),
		})
	}
	return bars, nil
}

func (f *BinanceFetcher) FetchCurrentPrice(symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	body, err := f.get(endpoint)
	if err != nil {
		return 0, err
	}

	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &ticker); err != nil {
		return 0, fmt.Errorf("binance decode: %w", err)
	}
	price, err := strconv.ParseFloat(ticker.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("binance parse price %q: %w", ticker.Price, err)
	}
	return price, nil
}

func parsePrice(v interface{}) float64 {
	s, ok := v.(string)
	if !ok {
		return 0
	}
	p, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return p
}
