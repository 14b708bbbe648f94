package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"

	"MarketVision/internal/model"
)

// Feed is one RSS endpoint. An empty Category means headlines are categorized by keyword.
type Feed struct {
	URL      string
	Category model.Category
}

// DefaultFeeds are the Google News searches, one per category.
var DefaultFeeds = []Feed{
	{URL: "https://news.google.com/rss/search?q=Tesla+stock&hl=en-US&gl=US&ceid=US:en", Category: model.CategoryCompany},
	{URL: "https://news.google.com/rss/search?q=Trump+Economic+Policy+electric+vehicle&hl=en-US&gl=US&ceid=US:en", Category: model.CategoryPolicy},
	{URL: "https://news.google.com/rss/search?q=Federal+Reserve+interest+rate+stock+market&hl=en-US&gl=US&ceid=US:en", Category: model.CategoryMacro},
	{URL: "https://news.google.com/rss/search?q=Elon+Musk+Tesla&hl=en-US&gl=US&ceid=US:en", Category: model.CategoryPersonality},
}

// RSSSource implements NewsSource over RSS/Atom feeds. Each feed is tried
// through every client in order until one returns a parseable document.
type RSSSource struct {
	Feeds     []Feed
	Clients   []*http.Client
	PerFeed   int
	UserAgent string
}

// NewRSSSource creates an RSS source. proxies are tried in order; an empty
// list connects directly.
func NewRSSSource(feeds []Feed, proxies []string, timeout time.Duration) *RSSSource {
	return &RSSSource{
		Feeds:     feeds,
		Clients:   newHTTPClients(proxies, timeout),
		PerFeed:   5,
		UserAgent: "Mozilla/5.0",
	}
}

func (r *RSSSource) Name() string { return "rss" }

// FetchNews reads every feed concurrently; failed feeds are skipped.
func (r *RSSSource) FetchNews(ctx context.Context) ([]model.NewsItem, error) {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		items []model.NewsItem
		errs  []error
	)
	for _, f := range r.Feeds {
		wg.Add(1)
		go func(f Feed) {
			defer wg.Done()
			got, err := r.fetchFeed(ctx, f)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[WARN] rss %s: %v", f.URL, err)
				errs = append(errs, err)
				return
			}
			items = append(items, got...)
		}(f)
	}
	wg.Wait()

	if len(items) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("rss: %w", errors.Join(errs...))
	}
	return sortNewest(items), nil
}

func (r *RSSSource) fetchFeed(ctx context.Context, f Feed) ([]model.NewsItem, error) {
	parsed, err := r.fetchWithFallback(ctx, f.URL)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	items := make([]model.NewsItem, 0, r.PerFeed)
	for _, it := range parsed.Items {
		if len(items) >= r.PerFeed {
			break
		}
		var published time.Time
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		}
		src := parsed.Title
		if src == "" {
			src = r.Name()
		}
		items = append(items, newsItem(it.Title, it.Description, src, f.Category, published, now))
	}
	return items, nil
}

func (r *RSSSource) fetchWithFallback(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	var lastErr error
	for i, client := range r.Clients {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		parsed, err := r.fetchOnce(ctx, client, feedURL)
		if err == nil {
			return parsed, nil
		}
		lastErr = fmt.Errorf("client %d: %w", i, err)
	}
	if lastErr == nil {
		lastErr = ErrNoData
	}
	return nil, lastErr
}

func (r *RSSSource) fetchOnce(ctx context.Context, client *http.Client, feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml, */*")
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status: %d", resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if len(parsed.Items) == 0 {
		return nil, ErrNoData
	}
	return parsed, nil
}
