package collector

import (
	"strings"
	"testing"
	"time"

	"MarketVision/internal/model"
)

func TestAnalyzeSentiment(t *testing.T) {
	tests := []struct {
		text     string
		expected model.Sentiment
	}{
		{"Tesla profit beats expectations on strong growth", model.SentimentPositive},
		{"Shares fall as investors worry about demand", model.SentimentNegative},
		{"Tesla holds annual meeting", model.SentimentNeutral},
		{"", model.SentimentNeutral},
		{"Gain offset by a loss", model.SentimentNeutral},
	}
	for _, tt := range tests {
		if got := AnalyzeSentiment(tt.text); got != tt.expected {
			t.Errorf("AnalyzeSentiment(%q) = %s, expected %s", tt.text, got, tt.expected)
		}
	}
}

func TestImpactScore(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category model.Category
		expected int
	}{
		{"strong positive company", "record surge", model.CategoryCompany, 45},
		{"strong negative company", "lawsuit and crash", model.CategoryCompany, -45},
		{"macro weight", "rates rise", model.CategoryMacro, 6},
		{"personality weight", "breakthrough", model.CategoryPersonality, 18},
		{"clamped", "breakthrough record surge soar rally approval success", model.CategoryCompany, 100},
		{"nothing", "quiet session", model.CategoryPolicy, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ImpactScore(tt.text, tt.category); got != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		text     string
		expected model.Category
	}{
		{"Fed signals interest rate cut", model.CategoryMacro},
		{"New tariffs hit auto makers", model.CategoryPolicy},
		{"Elon Musk launches new rocket", model.CategoryPersonality},
		{"Tesla deliveries beat estimates", model.CategoryCompany},
	}
	for _, tt := range tests {
		if got := Categorize(tt.text); got != tt.expected {
			t.Errorf("Categorize(%q) = %s, expected %s", tt.text, got, tt.expected)
		}
	}
}

func TestNewsItem_Cleans(t *testing.T) {
	now := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)
	long := strings.Repeat("a", 250)
	it := newsItem("<b>Tesla</b>  rally", long, "test", model.CategoryCompany, time.Time{}, now)

	if it.Title != "Tesla rally" {
		t.Errorf("expected stripped title, got %q", it.Title)
	}
	if len(it.Content) != maxContentLen+3 || !strings.HasSuffix(it.Content, "...") {
		t.Errorf("expected truncated content, got %d chars", len(it.Content))
	}
	if !it.Timestamp.Equal(now) {
		t.Errorf("expected zero publish time to default to now, got %v", it.Timestamp)
	}
	if it.ID == "" {
		t.Error("expected an id")
	}
	if it.Sentiment != model.SentimentNeutral || it.ImpactScore != 23 {
		t.Errorf("unexpected scoring %s / %d", it.Sentiment, it.ImpactScore)
	}
}
