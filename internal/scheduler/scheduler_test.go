package scheduler

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"MarketVision/internal/collector"
	"MarketVision/internal/dashboard"
	"MarketVision/internal/model"
	"MarketVision/internal/recorder"
)

var kst = time.FixedZone("KST", 9*3600)

type memRecorder struct {
	mu          sync.Mutex
	ticks       []recorder.TickEvent
	transitions []recorder.SessionTransition
	feed        []recorder.FeedEvent
}

func (m *memRecorder) RecordTick(e *recorder.TickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ticks = append(m.ticks, *e)
	return nil
}

func (m *memRecorder) RecordTransition(e *recorder.SessionTransition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, *e)
	return nil
}

func (m *memRecorder) RecordFeedItem(e *recorder.FeedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.feed = append(m.feed, *e)
	return nil
}

func (m *memRecorder) Close() error { return nil }

type memNotifier struct {
	mu   sync.Mutex
	sent []string
}

func (m *memNotifier) Send(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, text)
	return nil
}

type fixture struct {
	sched *Scheduler
	dash  *dashboard.Dashboard
	rec   *memRecorder
	note  *memNotifier
	now   time.Time
}

func newFixture(t *testing.T, col *collector.Collector, start time.Time) *fixture {
	t.Helper()
	opts := dashboard.DefaultOptions()
	opts.Feed.NewsProbability = 0
	opts.Feed.PostProbability = 0
	d := dashboard.New(opts, rand.New(rand.NewPCG(5, 6)), start)

	f := &fixture{dash: d, rec: &memRecorder{}, note: &memNotifier{}, now: start}
	f.sched = NewScheduler(context.Background(), d, col, f.note, f.rec)
	f.sched.Now = func() time.Time { return f.now }
	return f
}

func TestTick_RecordsAndAlertsOnTransition(t *testing.T) {
	f := newFixture(t, nil, time.Date(2025, 3, 12, 22, 0, 0, 0, kst)) // premarket

	f.sched.RunTickNow()
	f.now = time.Date(2025, 3, 12, 22, 30, 0, 0, kst) // regular open
	f.sched.RunTickNow()
	f.sched.Stop()

	if len(f.rec.ticks) != 2 {
		t.Fatalf("expected 2 ticks recorded, got %d", len(f.rec.ticks))
	}
	if len(f.rec.transitions) != 1 {
		t.Fatalf("expected 1 transition, got %d", len(f.rec.transitions))
	}
	tr := f.rec.transitions[0]
	if tr.From != model.SessionPreMarket || tr.To != model.SessionRegular {
		t.Errorf("unexpected transition %s -> %s", tr.From, tr.To)
	}
	if len(f.note.sent) != 1 {
		t.Errorf("expected one alert, got %d", len(f.note.sent))
	}
}

func TestFetch_AppliesSampleAndNews(t *testing.T) {
	col := collector.NewCollector(
		&collector.MockPriceSource{Sample: model.PriceSample{Current: 470, ClosePrice: 467, Volume: 5000}},
		&collector.MockNewsSource{Items: []model.NewsItem{{ID: "x", Title: "Fetched headline", Timestamp: time.Now()}}},
		"TSLA", time.Second,
	)
	f := newFixture(t, col, time.Date(2025, 3, 12, 23, 0, 0, 0, kst))
	f.sched.RunTickNow()
	f.sched.RunFetchNow()

	snap := f.dash.Snapshot()
	if snap.Price.Current != 470 || snap.Price.Volume != 5000 {
		t.Errorf("expected fetched quote applied, got %+v", snap.Price)
	}
	if snap.News[0].Title != "Fetched headline" {
		t.Errorf("expected fetched headline first, got %q", snap.News[0].Title)
	}
	if last := f.rec.ticks[len(f.rec.ticks)-1]; last.Source != "mock" {
		t.Errorf("expected external tick recorded, got source %q", last.Source)
	}
	if len(f.rec.feed) != 1 {
		t.Errorf("expected fetched headline recorded, got %d", len(f.rec.feed))
	}
}

// crossingSource advances the dashboard across a session boundary while the
// fetch is in flight.
type crossingSource struct {
	f *fixture
}

func (c *crossingSource) Name() string { return "crossing" }

func (c *crossingSource) FetchPrice(context.Context, string) (model.PriceSample, error) {
	c.f.now = time.Date(2025, 3, 13, 5, 0, 0, 0, kst) // after-hours begins
	c.f.dash.OnTick(c.f.now)
	return model.PriceSample{Source: "crossing", Current: 480, ClosePrice: 467}, nil
}

func TestFetch_DiscardsStaleSample(t *testing.T) {
	f := newFixture(t, nil, time.Date(2025, 3, 13, 4, 50, 0, 0, kst)) // regular, near the close
	f.sched.Collector = collector.NewCollector(&crossingSource{f: f}, nil, "TSLA", time.Second)
	f.sched.RunTickNow()

	f.sched.RunFetchNow()

	p := f.dash.Price()
	if p.Session != model.SessionAfterHours {
		t.Fatalf("expected after-hours, got %s", p.Session)
	}
	if p.Current == 480 {
		t.Error("expected sample fetched across a session change to be discarded")
	}
	for _, tk := range f.rec.ticks {
		if tk.Source == "crossing" {
			t.Error("expected no recorded tick from the stale sample")
		}
	}
}

func TestRegisterAll(t *testing.T) {
	f := newFixture(t, nil, time.Now())
	if err := f.sched.RegisterAll("not a cron", ""); err == nil {
		t.Error("expected invalid tick spec to fail")
	}

	col := collector.NewCollector(nil, nil, "TSLA", time.Second)
	f2 := newFixture(t, col, time.Now())
	if err := f2.sched.RegisterAll("@every 1m", "@every 1m"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(f2.sched.Cron.Entries()); n != 2 {
		t.Errorf("expected 2 jobs, got %d", n)
	}

	f3 := newFixture(t, nil, time.Now())
	if err := f3.sched.RegisterAll("0 * * * * *", "@every 1m"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(f3.sched.Cron.Entries()); n != 1 {
		t.Errorf("expected fetch to be skipped without a collector, got %d jobs", n)
	}
}
