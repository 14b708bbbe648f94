package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MarketVision/internal/model"
)

// DefaultYahooBaseURL is the public chart endpoint.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooSource implements PriceSource using the Yahoo Finance chart API.
type YahooSource struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooSource creates a Yahoo Finance price source.
func NewYahooSource(proxyURL string, timeout time.Duration) *YahooSource {
	return &YahooSource{
		BaseURL:   DefaultYahooBaseURL,
		Client:    newHTTPClient(proxyURL, timeout),
		SymbolMap: map[string]string{},
	}
}

func (f *YahooSource) Name() string { return "yahoo" }

func (f *YahooSource) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the subset of the chart response carrying the quote summary.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol               string  `json:"symbol"`
				RegularMarketPrice   float64 `json:"regularMarketPrice"`
				PreviousClose        float64 `json:"previousClose"`
				ChartPreviousClose   float64 `json:"chartPreviousClose"`
				RegularMarketDayHigh float64 `json:"regularMarketDayHigh"`
				RegularMarketDayLow  float64 `json:"regularMarketDayLow"`
				RegularMarketVolume  float64 `json:"regularMarketVolume"`
				RegularMarketTime    int64   `json:"regularMarketTime"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// firstPositive returns the first argument above zero.
func firstPositive(vals ...float64) float64 {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}

func (f *YahooSource) FetchPrice(ctx context.Context, symbol string) (model.PriceSample, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d",
		strings.TrimRight(f.BaseURL, "/"), url.PathEscape(f.yahooSymbol(symbol)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSample{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSample{}, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PriceSample{}, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.PriceSample{}, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.PriceSample{}, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return model.PriceSample{}, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return model.PriceSample{}, fmt.Errorf("yahoo: %w", ErrNoData)
	}

	meta := chart.Chart.Result[0].Meta
	current := firstPositive(meta.RegularMarketPrice, meta.PreviousClose)
	if current == 0 {
		return model.PriceSample{}, fmt.Errorf("yahoo: %w", ErrNoData)
	}
	closePrice := firstPositive(meta.PreviousClose, meta.ChartPreviousClose, current)
	asOf := time.Now()
	if meta.RegularMarketTime > 0 {
		asOf = time.Unix(meta.RegularMarketTime, 0)
	}
	return model.PriceSample{
		Source:     f.Name(),
		Current:    current,
		ClosePrice: closePrice,
		High:       firstPositive(meta.RegularMarketDayHigh, closePrice),
		Low:        firstPositive(meta.RegularMarketDayLow, closePrice),
		Volume:     meta.RegularMarketVolume,
		AsOf:       asOf,
	}, nil
}
