package model

import "time"

// Sentiment classifies the tone of a feed item.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Category classifies a news item.
type Category string

const (
	CategoryCompany     Category = "company"
	CategoryPolicy      Category = "policy"
	CategoryMacro       Category = "macro"
	CategoryPersonality Category = "personality"
)

// Categories lists every news category in display order.
func Categories() []Category {
	return []Category{CategoryCompany, CategoryPolicy, CategoryMacro, CategoryPersonality}
}

// NewsItem is a headline shown in the policy/news monitor.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    Category  `json:"category"`
	Sentiment   Sentiment `json:"sentiment"`
	ImpactScore int       `json:"impact_score"` // -100..100
	Source      string    `json:"source"`
	Timestamp   time.Time `json:"timestamp"`
}

// FeedTime implements the feed list ordering key.
func (n NewsItem) FeedTime() time.Time { return n.Timestamp }

// FeedKey is the dedupe key for merges.
func (n NewsItem) FeedKey() string { return n.Title }

// SocialPost is a short post from the tracked personality.
type SocialPost struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	Keywords  []string  `json:"keywords"`
	Sentiment Sentiment `json:"sentiment"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp"`
}

func (p SocialPost) FeedTime() time.Time { return p.Timestamp }

func (p SocialPost) FeedKey() string { return p.Content }

// NewsTemplate is a canned news entry in the simulation pool.
type NewsTemplate struct {
	Title     string
	Content   string
	Category  Category
	Sentiment Sentiment
	Impact    int
}

// PostTemplate is a canned post in the simulation pool.
type PostTemplate struct {
	Content   string
	Summary   string
	Keywords  []string
	Sentiment Sentiment
}
