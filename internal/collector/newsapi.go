package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"MarketVision/internal/model"
)

// DefaultNewsAPIBaseURL is the NewsAPI search endpoint host.
const DefaultNewsAPIBaseURL = "https://newsapi.org"

// ErrNoAPIKey is returned by sources that need credentials and have none.
var ErrNoAPIKey = errors.New("api key not configured")

// DefaultNewsQueries are the per-category search terms.
var DefaultNewsQueries = map[model.Category]string{
	model.CategoryCompany:     "Tesla OR TSLA",
	model.CategoryPolicy:      "Trump economic policy electric vehicle",
	model.CategoryMacro:       "Federal Reserve interest rate stock market",
	model.CategoryPersonality: "Elon Musk",
}

// NewsAPISource implements NewsSource using the NewsAPI.org REST API.
type NewsAPISource struct {
	BaseURL  string
	APIKey   string
	Client   *http.Client
	Queries  map[model.Category]string
	PageSize int
}

// NewNewsAPISource creates a NewsAPI source with optional proxy support.
func NewNewsAPISource(apiKey, proxyURL string, timeout time.Duration) *NewsAPISource {
	return &NewsAPISource{
		BaseURL:  DefaultNewsAPIBaseURL,
		APIKey:   apiKey,
		Client:   newHTTPClient(proxyURL, timeout),
		Queries:  DefaultNewsQueries,
		PageSize: 5,
	}
}

func (f *NewsAPISource) Name() string { return "newsapi" }

// newsAPIResponse is the JSON shape of /v2/everything.
type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		Content     string    `json:"content"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

// FetchNews queries every category concurrently. A failing category is
// skipped; the call fails only if every category failed.
func (f *NewsAPISource) FetchNews(ctx context.Context) ([]model.NewsItem, error) {
	if f.APIKey == "" {
		return nil, fmt.Errorf("newsapi: %w", ErrNoAPIKey)
	}

	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		items []model.NewsItem
		errs  []error
	)
	for _, cat := range model.Categories() {
		q, ok := f.Queries[cat]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(cat model.Category, q string) {
			defer wg.Done()
			got, err := f.fetchCategory(ctx, cat, q)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[WARN] newsapi %s: %v", cat, err)
				errs = append(errs, err)
				return
			}
			items = append(items, got...)
		}(cat, q)
	}
	wg.Wait()

	if len(items) == 0 && len(errs) > 0 {
		return nil, fmt.Errorf("newsapi: %w", errors.Join(errs...))
	}
	return sortNewest(items), nil
}

func (f *NewsAPISource) fetchCategory(ctx context.Context, cat model.Category, query string) ([]model.NewsItem, error) {
	v := url.Values{}
	v.Set("q", query)
	v.Set("language", "en")
	v.Set("sortBy", "publishedAt")
	v.Set("pageSize", fmt.Sprint(f.PageSize))
	u := strings.TrimRight(f.BaseURL, "/") + "/v2/everything?" + v.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", f.APIKey)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("newsapi read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: status %d, body: %s", resp.StatusCode, string(body))
	}

	var r newsAPIResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}
	if r.Status != "ok" {
		return nil, fmt.Errorf("newsapi api error: %s %s", r.Code, r.Message)
	}

	now := time.Now()
	items := make([]model.NewsItem, 0, len(r.Articles))
	for i, a := range r.Articles {
		if i >= f.PageSize {
			break
		}
		content := a.Description
		if content == "" {
			content = a.Content
		}
		src := a.Source.Name
		if src == "" {
			src = f.Name()
		}
		items = append(items, newsItem(a.Title, content, src, cat, a.PublishedAt, now))
	}
	return items, nil
}
