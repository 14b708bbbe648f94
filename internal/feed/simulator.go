package feed

import (
	"time"

	"MarketVision/internal/model"
)

// RandomSource covers the draws the feed simulator needs; *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
	IntN(n int) int
}

// Config tunes the per-tick arrival probabilities.
type Config struct {
	NewsProbability float64
	PostProbability float64
}

// DefaultConfig returns the reference cadence: 10% news, 60% posts per tick.
func DefaultConfig() Config {
	return Config{NewsProbability: 0.10, PostProbability: 0.60}
}

// Simulator drips items from NewsPool and PostPool.
type Simulator struct {
	cfg   Config
	rng   RandomSource
	news  *Rotator
	posts *Rotator
}

// NewSimulator wires rotators over the canned pools.
func NewSimulator(cfg Config, rng RandomSource) *Simulator {
	return &Simulator{
		cfg:   cfg,
		rng:   rng,
		news:  NewRotator(len(NewsPool), rng),
		posts: NewRotator(len(PostPool), rng),
	}
}

// Tick independently rolls each feed's trigger and returns whatever arrived.
// A triggered feed whose pool just reset yields nothing this tick.
func (s *Simulator) Tick(now time.Time) (*model.NewsItem, *model.SocialPost) {
	var news *model.NewsItem
	var post *model.SocialPost

	if s.rng.Float64() < s.cfg.NewsProbability {
		if idx, ok := s.news.Next(); ok {
			n := NewsFromTemplate(NewsPool[idx], now)
			news = &n
		}
	}
	if s.rng.Float64() < s.cfg.PostProbability {
		if idx, ok := s.posts.Next(); ok {
			p := PostFromTemplate(PostPool[idx], now)
			post = &p
		}
	}
	return news, post
}
