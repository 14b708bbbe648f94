// Package dashboard owns the market state and is the only entry point through
// which ticks, external samples and user edits reach it.
package dashboard

import (
	"sync"
	"time"

	"MarketVision/internal/calculator"
	"MarketVision/internal/feed"
	"MarketVision/internal/model"
	"MarketVision/internal/simulator"
)

// Options configures a Dashboard.
type Options struct {
	Price     simulator.Config
	Feed      feed.Config
	NewsLimit int
	PostLimit int
	Portfolio model.Portfolio
	Scenario  model.Scenario
	Tax       model.TaxRules
	SeedFeeds bool // start with the canned headlines and posts
}

// DefaultOptions returns the reference configuration with an empty portfolio.
func DefaultOptions() Options {
	return Options{
		Price:     simulator.DefaultConfig(),
		Feed:      feed.DefaultConfig(),
		NewsLimit: 20,
		PostLimit: 10,
		Tax:       calculator.DefaultTaxRules(),
		SeedFeeds: true,
	}
}

// TickOutcome reports what a single OnTick changed.
type TickOutcome struct {
	Price simulator.TickResult
	News  *model.NewsItem
	Post  *model.SocialPost
	Epoch uint64
}

// Dashboard is the owned state object behind the snapshot.
type Dashboard struct {
	mu        sync.Mutex
	price     *simulator.Simulator
	feeds     *feed.Simulator
	news      *feed.List[model.NewsItem]
	posts     *feed.List[model.SocialPost]
	portfolio model.Portfolio
	scenario  model.Scenario
	tax       model.TaxRules
	epoch     uint64
	updatedAt time.Time
}

// New builds a Dashboard as of now. rng drives both the price walk and the
// feed draws; it is only used while the dashboard lock is held.
func New(opts Options, rng feed.RandomSource, now time.Time) *Dashboard {
	var news []model.NewsItem
	var posts []model.SocialPost
	if opts.SeedFeeds {
		news = feed.SeedNews(now)
		posts = feed.SeedPosts(now)
	}
	return &Dashboard{
		price:     simulator.New(opts.Price, rng, now),
		feeds:     feed.NewSimulator(opts.Feed, rng),
		news:      feed.NewList(opts.NewsLimit, news...),
		posts:     feed.NewList(opts.PostLimit, posts...),
		portfolio: opts.Portfolio.Sanitize(),
		scenario:  opts.Scenario.Clamp(),
		tax:       opts.Tax,
		updatedAt: now,
	}
}

// OnTick advances the price and the simulated feeds to now.
func (d *Dashboard) OnTick(now time.Time) TickOutcome {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := d.price.Tick(now)
	if res.Transitioned() || res.RolledOver {
		d.epoch++
	}

	out := TickOutcome{Price: res, Epoch: d.epoch}
	out.News, out.Post = d.feeds.Tick(now)
	if out.News != nil {
		d.news.Add(*out.News)
	}
	if out.Post != nil {
		d.posts.Add(*out.Post)
	}
	d.updatedAt = now
	return out
}

// OnExternalPrice folds in a fetched quote. It reports whether the sample was accepted.
func (d *Dashboard) OnExternalPrice(sample model.PriceSample, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.applyPrice(sample, now)
}

// OnExternalPriceSince applies sample only if no session transition happened
// since epoch was read. Stale responses are dropped.
func (d *Dashboard) OnExternalPriceSince(epoch uint64, sample model.PriceSample, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if epoch != d.epoch {
		return false
	}
	return d.applyPrice(sample, now)
}

func (d *Dashboard) applyPrice(sample model.PriceSample, now time.Time) bool {
	before := d.price.State().ClosePrice
	if !d.price.ApplySample(sample, now) {
		return false
	}
	// A diverging close starts a new trading day.
	if d.price.State().ClosePrice != before {
		d.epoch++
	}
	d.updatedAt = now
	return true
}

// OnExternalItems merges fetched news and posts, returning how many of each were new.
func (d *Dashboard) OnExternalItems(news []model.NewsItem, posts []model.SocialPost) (int, int) {
	n := d.news.Merge(news)
	p := d.posts.Merge(posts)
	return n, p
}

// Epoch increments whenever the market session changes or a new trading day
// starts, including one started by an external close.
func (d *Dashboard) Epoch() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.epoch
}

// SetPortfolio replaces the portfolio; negative fields are clamped to zero.
func (d *Dashboard) SetPortfolio(p model.Portfolio) model.Portfolio {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.portfolio = p.Sanitize()
	return d.portfolio
}

// SetScenario replaces the scenario; sliders are clamped to their ranges.
func (d *Dashboard) SetScenario(s model.Scenario) model.Scenario {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scenario = s.Clamp()
	return d.scenario
}

// Price returns the current price state.
func (d *Dashboard) Price() model.PriceState {
	return d.price.State()
}

// Snapshot returns a read-only view. Derived values are recomputed on every
// call, never cached, so two calls without an intervening update are identical.
func (d *Dashboard) Snapshot() model.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	price := d.price.State()
	news := d.news.Items()
	scenario := d.scenario

	return model.Snapshot{
		Price:            price,
		DayRangePosition: calculator.DayRangePosition(price.Current, price.DayHigh, price.DayLow),
		Portfolio:        d.portfolio,
		Scenario:         scenario,
		Valuation:        calculator.Evaluate(d.portfolio, price, &scenario, d.tax),
		News:             news,
		Posts:            d.posts.Items(),
		FearGreed:        calculator.FearGreedFor(calculator.FearGreedIndex(news)),
		Macro:            feed.MacroIndicators(),
		UpdatedAt:        d.updatedAt,
	}
}
