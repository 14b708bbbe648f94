package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"MarketVision/internal/collector"
	"MarketVision/internal/dashboard"
	"MarketVision/internal/feed"
	"MarketVision/internal/notifier"
	"MarketVision/internal/recorder"
	"MarketVision/internal/report"

	"github.com/robfig/cron/v3"
)

// retrySender is implemented by notifiers that can back off on failure.
type retrySender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler drives the tick and external-fetch jobs.
type Scheduler struct {
	Cron      *cron.Cron
	Dashboard *dashboard.Dashboard
	Collector *collector.Collector
	Notifier  notifier.Notifier
	Recorder  recorder.Recorder
	Ctx       context.Context
	Now       func() time.Time

	sends sync.WaitGroup
}

// NewScheduler creates a new Scheduler. Overlapping runs of the same job are skipped.
func NewScheduler(ctx context.Context, d *dashboard.Dashboard, col *collector.Collector, n notifier.Notifier, rec recorder.Recorder) *Scheduler {
	if n == nil {
		n = notifier.NoopNotifier{}
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Scheduler{
		Cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.Default()))),
		),
		Dashboard: d,
		Collector: col,
		Notifier:  n,
		Recorder:  rec,
		Ctx:       ctx,
		Now:       time.Now,
	}
}

// RegisterAll registers the tick and fetch jobs. An empty fetch spec disables fetching.
func (s *Scheduler) RegisterAll(tickCron, fetchCron string) error {
	if _, err := s.Cron.AddFunc(tickCron, s.tickTask); err != nil {
		return fmt.Errorf("register tick task: %w", err)
	}
	if fetchCron == "" || s.Collector == nil {
		log.Println("[INFO] external fetch disabled")
		return nil
	}
	if _, err := s.Cron.AddFunc(fetchCron, s.fetchTask); err != nil {
		return fmt.Errorf("register fetch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs and pending alerts.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.sends.Wait()
	log.Println("[INFO] scheduler stopped")
}

// RunTickNow executes one tick immediately.
func (s *Scheduler) RunTickNow() {
	s.tickTask()
}

// RunFetchNow executes one external fetch immediately.
func (s *Scheduler) RunFetchNow() {
	s.fetchTask()
}

func (s *Scheduler) tickTask() {
	now := s.Now()
	out := s.Dashboard.OnTick(now)
	res := out.Price
	state := res.State

	if err := s.Recorder.RecordTick(&recorder.TickEvent{Price: state, Source: feed.SourceSimulated}); err != nil {
		log.Printf("[ERROR] record tick: %v", err)
	}

	if res.Transitioned() || res.RolledOver {
		log.Printf("[INFO] session %s -> %s at %.2f (rollover=%v)", res.From, res.To, state.PreviousSegmentClose, res.RolledOver)
		if err := s.Recorder.RecordTransition(&recorder.SessionTransition{
			At:                   now,
			From:                 res.From,
			To:                   res.To,
			PreviousSegmentClose: state.PreviousSegmentClose,
			ClosePrice:           state.ClosePrice,
			RolledOver:           res.RolledOver,
		}); err != nil {
			log.Printf("[ERROR] record transition: %v", err)
		}
		s.trySend(report.FormatTransition(res.From, res.To, state, res.RolledOver))
	}

	if out.News != nil {
		log.Printf("[INFO] news: %s", out.News.Title)
		s.recordFeed(recorder.NewsEvent(*out.News))
	}
	if out.Post != nil {
		log.Printf("[INFO] post: %s", out.Post.Content)
		s.recordFeed(recorder.PostEvent(*out.Post))
	}

	log.Printf("[INFO] tick %s", report.FormatTickLine(s.Dashboard.Snapshot()))
}

func (s *Scheduler) fetchTask() {
	if s.Collector == nil {
		return
	}
	log.Println("[INFO] running external fetch")

	// A response that arrives after a session change belongs to the old session.
	epoch := s.Dashboard.Epoch()
	if sample, ok := s.Collector.CollectPrice(s.Ctx); ok {
		if s.Dashboard.OnExternalPriceSince(epoch, sample, s.Now()) {
			state := s.Dashboard.Price()
			log.Printf("[INFO] applied %s quote %.2f (close %.2f)", sample.Source, state.Current, state.ClosePrice)
			if err := s.Recorder.RecordTick(&recorder.TickEvent{Price: state, Source: sample.Source}); err != nil {
				log.Printf("[ERROR] record tick: %v", err)
			}
		} else {
			log.Printf("[INFO] discarded %s quote %.2f (stale or invalid)", sample.Source, sample.Current)
		}
	}

	if items, ok := s.Collector.CollectNews(s.Ctx); ok {
		added, _ := s.Dashboard.OnExternalItems(items, nil)
		log.Printf("[INFO] fetched %d headlines, %d new", len(items), added)
		for _, it := range items {
			s.recordFeed(recorder.NewsEvent(it))
		}
	}
}

func (s *Scheduler) recordFeed(evt *recorder.FeedEvent) {
	if err := s.Recorder.RecordFeedItem(evt); err != nil {
		log.Printf("[ERROR] record feed item: %v", err)
	}
}

// trySend delivers an alert without blocking the tick.
func (s *Scheduler) trySend(text string) {
	s.sends.Add(1)
	go func() {
		defer s.sends.Done()
		var err error
		if r, ok := s.Notifier.(retrySender); ok {
			err = r.SendWithRetry(s.Ctx, text, 3)
		} else {
			err = s.Notifier.Send(text)
		}
		if err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		}
	}()
}
