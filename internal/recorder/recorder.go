package recorder

import (
	"time"

	"MarketVision/internal/model"
)

// TickEvent is one price observation, simulated or fetched.
type TickEvent struct {
	Price  model.PriceState
	Source string // "simulation" or the external source name
}

// SessionTransition records a session boundary crossing.
type SessionTransition struct {
	At                   time.Time
	From                 model.MarketSession
	To                   model.MarketSession
	PreviousSegmentClose float64
	ClosePrice           float64
	RolledOver           bool
}

// FeedEvent records a news item or post entering a feed.
type FeedEvent struct {
	Kind      string // "news" or "post"
	ItemID    string
	Title     string // headline for news, content for posts
	Category  model.Category
	Sentiment model.Sentiment
	Impact    int
	Source    string
	Timestamp time.Time
}

// NewsEvent converts a news item into a FeedEvent.
func NewsEvent(n model.NewsItem) *FeedEvent {
	return &FeedEvent{
		Kind:      "news",
		ItemID:    n.ID,
		Title:     n.Title,
		Category:  n.Category,
		Sentiment: n.Sentiment,
		Impact:    n.ImpactScore,
		Source:    n.Source,
		Timestamp: n.Timestamp,
	}
}

// PostEvent converts a post into a FeedEvent.
func PostEvent(p model.SocialPost) *FeedEvent {
	return &FeedEvent{
		Kind:      "post",
		ItemID:    p.ID,
		Title:     p.Content,
		Sentiment: p.Sentiment,
		Source:    p.Source,
		Timestamp: p.Timestamp,
	}
}

// Recorder journals market history for later analysis.
type Recorder interface {
	RecordTick(evt *TickEvent) error
	RecordTransition(evt *SessionTransition) error
	RecordFeedItem(evt *FeedEvent) error
	Close() error
}
