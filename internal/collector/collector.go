// Package collector fetches best-effort external quotes and headlines. Every
// failure is absorbed here; callers only ever see "data" or "no data".
package collector

import (
	"context"
	"log"
	"time"

	"MarketVision/internal/model"
)

// MockPriceSource returns a controllable fixed quote for development and testing.
type MockPriceSource struct {
	Sample model.PriceSample
	Err    error
}

func (m *MockPriceSource) Name() string { return "mock" }

func (m *MockPriceSource) FetchPrice(_ context.Context, _ string) (model.PriceSample, error) {
	if m.Err != nil {
		return model.PriceSample{}, m.Err
	}
	s := m.Sample
	if s.Source == "" {
		s.Source = m.Name()
	}
	if s.AsOf.IsZero() {
		s.AsOf = time.Now()
	}
	return s, nil
}

// MockNewsSource returns fixed headlines.
type MockNewsSource struct {
	Items []model.NewsItem
	Err   error
}

func (m *MockNewsSource) Name() string { return "mock" }

func (m *MockNewsSource) FetchNews(_ context.Context) ([]model.NewsItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]model.NewsItem(nil), m.Items...), nil
}

// Collector runs the configured sources under a bounded timeout.
type Collector struct {
	Prices  PriceSource // nil disables external prices
	News    NewsSource  // nil disables external news
	Symbol  string
	Timeout time.Duration
}

// NewCollector creates a new Collector.
func NewCollector(prices PriceSource, news NewsSource, symbol string, timeout time.Duration) *Collector {
	return &Collector{Prices: prices, News: news, Symbol: symbol, Timeout: timeout}
}

func (c *Collector) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}

// CollectPrice returns a sample and true, or false when no source produced one.
func (c *Collector) CollectPrice(ctx context.Context) (model.PriceSample, bool) {
	if c.Prices == nil {
		return model.PriceSample{}, false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	sample, err := c.Prices.FetchPrice(ctx, c.Symbol)
	if err != nil {
		log.Printf("[WARN] price fetch via %s failed: %v", c.Prices.Name(), err)
		return model.PriceSample{}, false
	}
	return sample, true
}

// CollectNews returns fetched headlines and true, or false when nothing arrived.
func (c *Collector) CollectNews(ctx context.Context) ([]model.NewsItem, bool) {
	if c.News == nil {
		return nil, false
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	items, err := c.News.FetchNews(ctx)
	if err != nil {
		log.Printf("[WARN] news fetch via %s failed: %v", c.News.Name(), err)
		return nil, false
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}
