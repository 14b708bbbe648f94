// Package simulator advances a bounded random-walk price across trading
// sessions.
package simulator

import (
	"log"
	"math"
	"sync"
	"time"

	"MarketVision/internal/model"
	"MarketVision/internal/session"
)

// RandomSource is the subset of *rand.Rand the walk needs.
type RandomSource interface {
	Float64() float64
}

// Config holds the walk parameters.
type Config struct {
	Symbol      string
	SeedPrice   float64 // previous close at startup
	OffsetHours int     // local-to-exchange hours
	WalkStep    float64 // max absolute delta per tick
	BandPct     float64 // walk stays within ±BandPct% of the close
}

// DefaultConfig returns the reference parameters.
func DefaultConfig() Config {
	return Config{
		Symbol:      "TSLA",
		SeedPrice:   467.00,
		OffsetHours: session.DefaultOffsetHours,
		WalkStep:    0.4,
		BandPct:     3,
	}
}

// TickResult describes what a single tick changed.
type TickResult struct {
	State      model.PriceState
	From       model.MarketSession
	To         model.MarketSession
	RolledOver bool
}

// Transitioned reports whether a session boundary was crossed.
func (r TickResult) Transitioned() bool { return r.From != r.To }

// Simulator owns the PriceState. All mutation goes through Tick and ApplySample.
type Simulator struct {
	mu           sync.Mutex
	cfg          Config
	rng          RandomSource
	state        model.PriceState
	regularClose float64 // last price seen while leaving the regular session
}

// New creates a Simulator seeded at cfg.SeedPrice as of now.
func New(cfg Config, rng RandomSource, now time.Time) *Simulator {
	seed := cfg.SeedPrice
	if seed < 0 || math.IsNaN(seed) || math.IsInf(seed, 0) {
		seed = 0
	}
	return &Simulator{
		cfg: cfg,
		rng: rng,
		state: model.PriceState{
			Symbol:               cfg.Symbol,
			Current:              seed,
			ClosePrice:           seed,
			PreviousSegmentClose: seed,
			DayHigh:              seed,
			DayLow:               seed,
			Session:              session.SessionFor(now, cfg.OffsetHours),
			TradingDay:           session.TradingDay(now, cfg.OffsetHours),
			AsOf:                 now,
		},
	}
}

// State returns a copy of the current price state.
func (s *Simulator) State() model.PriceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Tick advances the simulation to now.
func (s *Simulator) Tick(now time.Time) TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Session
	exiting := s.state.Current
	next := session.SessionFor(now, s.cfg.OffsetHours)
	res := TickResult{From: prev, To: next}

	// Capture the exiting price, not the freshly walked one. This runs before
	// the rollover so a tick gap spanning a whole day anchors on the regular
	// close it left, and rollover then clears it.
	if next != prev {
		s.state.PreviousSegmentClose = exiting
		if prev == model.SessionRegular {
			s.regularClose = exiting
		}
	}

	if next.Open() {
		if day := session.TradingDay(now, s.cfg.OffsetHours); day != s.state.TradingDay {
			s.rollover(day, s.regularClose)
			res.RolledOver = true
		}
	}

	if next.Open() {
		delta := (s.rng.Float64() - 0.5) * 2 * s.cfg.WalkStep
		s.state.Current = s.bound(s.state.Current + delta)
		s.trackExtremes()
	} else {
		s.state.Current = s.state.ClosePrice
	}

	s.recompute()
	s.state.AsOf = now
	s.state.Session = next

	res.State = s.state
	return res
}

// ApplySample folds an external quote into the state. Only a diverging close
// triggers a rollover; the remaining fields are recomputed locally.
func (s *Simulator) ApplySample(sample model.PriceSample, now time.Time) bool {
	if sample.Current <= 0 || math.IsNaN(sample.Current) || math.IsInf(sample.Current, 0) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sample.ClosePrice > 0 && sample.ClosePrice != s.state.ClosePrice {
		log.Printf("[INFO] close price changed %.2f -> %.2f (%s), rolling over", s.state.ClosePrice, sample.ClosePrice, sample.Source)
		s.rollover(session.TradingDay(now, s.cfg.OffsetHours), sample.ClosePrice)
	}
	if sample.Volume > 0 {
		s.state.Volume = sample.Volume
	}

	if s.state.Session.Open() {
		s.state.Current = s.bound(sample.Current)
		s.trackExtremes()
	} else {
		s.state.Current = s.state.ClosePrice
	}

	s.recompute()
	s.state.AsOf = now
	return true
}

// rollover starts a new trading day anchored at the given close. A
// non-positive anchor keeps the existing close.
func (s *Simulator) rollover(day string, anchor float64) {
	if anchor > 0 {
		s.state.ClosePrice = anchor
	}
	s.state.Current = s.state.ClosePrice
	s.state.DayHigh = s.state.ClosePrice
	s.state.DayLow = s.state.ClosePrice
	s.state.TradingDay = day
	s.regularClose = 0
}

func (s *Simulator) bound(p float64) float64 {
	ref := s.state.ClosePrice
	if ref <= 0 {
		return math.Max(0, p)
	}
	band := s.cfg.BandPct / 100
	return math.Max(ref*(1-band), math.Min(ref*(1+band), p))
}

func (s *Simulator) trackExtremes() {
	if s.state.Current > s.state.DayHigh {
		s.state.DayHigh = s.state.Current
	}
	if s.state.Current < s.state.DayLow || s.state.DayLow <= 0 {
		s.state.DayLow = s.state.Current
	}
}

func (s *Simulator) recompute() {
	s.state.Change = s.state.Current - s.state.ClosePrice
	if s.state.ClosePrice > 0 {
		s.state.ChangePercent = s.state.Change / s.state.ClosePrice * 100
	} else {
		s.state.ChangePercent = 0
	}
}
