package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"time"

	"MarketVision/internal/model"
)

// ErrNoData is returned when a source answered but had nothing usable.
var ErrNoData = errors.New("no data")

// PriceSource fetches a quote for a symbol.
type PriceSource interface {
	FetchPrice(ctx context.Context, symbol string) (model.PriceSample, error)
	Name() string
}

// NewsSource fetches recent headlines.
type NewsSource interface {
	FetchNews(ctx context.Context) ([]model.NewsItem, error)
	Name() string
}

// PriceChain tries each source in order until one succeeds.
type PriceChain []PriceSource

func (c PriceChain) Name() string { return "price-chain" }

func (c PriceChain) FetchPrice(ctx context.Context, symbol string) (model.PriceSample, error) {
	var errs []error
	for _, src := range c {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		sample, err := src.FetchPrice(ctx, symbol)
		if err == nil {
			return sample, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}
	if len(errs) == 0 {
		return model.PriceSample{}, fmt.Errorf("price chain: %w", ErrNoData)
	}
	return model.PriceSample{}, fmt.Errorf("price chain exhausted: %w", errors.Join(errs...))
}

// NewsChain tries each source in order until one returns at least one item.
type NewsChain []NewsSource

func (c NewsChain) Name() string { return "news-chain" }

func (c NewsChain) FetchNews(ctx context.Context) ([]model.NewsItem, error) {
	var errs []error
	for _, src := range c {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		items, err := src.FetchNews(ctx)
		if err == nil && len(items) > 0 {
			return items, nil
		}
		if err == nil {
			err = ErrNoData
		}
		errs = append(errs, fmt.Errorf("%s: %w", src.Name(), err))
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("news chain: %w", ErrNoData)
	}
	return nil, fmt.Errorf("news chain exhausted: %w", errors.Join(errs...))
}

// newHTTPClient returns a client that routes through proxyURL when set.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// newHTTPClients builds one client per proxy, in order. An empty entry means a
// direct connection.
func newHTTPClients(proxies []string, timeout time.Duration) []*http.Client {
	if len(proxies) == 0 {
		return []*http.Client{newHTTPClient("", timeout)}
	}
	clients := make([]*http.Client, 0, len(proxies))
	for _, p := range proxies {
		clients = append(clients, newHTTPClient(p, timeout))
	}
	return clients
}

// sortNewest orders items newest first and drops repeated titles.
func sortNewest(items []model.NewsItem) []model.NewsItem {
	slices.SortStableFunc(items, func(a, b model.NewsItem) int {
		return b.Timestamp.Compare(a.Timestamp)
	})
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, it := range items {
		k := normalizeTitle(it.Title)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
