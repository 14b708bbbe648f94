package calculator

import (
	"testing"

	"MarketVision/internal/model"
)

func TestDayRangePosition(t *testing.T) {
	tests := []struct {
		name              string
		current, high, lo float64
		expected          float64
	}{
		{"middle", 467, 470, 464, 0.5},
		{"at high", 470, 470, 464, 1},
		{"at low", 464, 470, 464, 0},
		{"flat range", 467, 467, 467, 0.5},
		{"above range", 480, 470, 464, 1},
		{"below range", 400, 470, 464, 0},
		{"inverted", 467, 464, 470, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DayRangePosition(tt.current, tt.high, tt.lo); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestFearGreedFor(t *testing.T) {
	tests := []struct {
		value int
		label string
	}{
		{0, "Extreme Fear"},
		{20, "Extreme Fear"},
		{21, "Fear"},
		{40, "Fear"},
		{50, "Neutral"},
		{60, "Neutral"},
		{61, "Greed"},
		{80, "Greed"},
		{81, "Extreme Greed"},
		{100, "Extreme Greed"},
	}
	for _, tt := range tests {
		if got := FearGreedFor(tt.value); got.Label != tt.label || got.Value != tt.value {
			t.Errorf("FearGreedFor(%d) = %+v, expected label %q", tt.value, got, tt.label)
		}
	}
}

func TestFearGreedIndex(t *testing.T) {
	if got := FearGreedIndex(nil); got != 50 {
		t.Errorf("expected neutral 50 for empty feed, got %d", got)
	}
	news := []model.NewsItem{{ImpactScore: 80}, {ImpactScore: 40}}
	if got := FearGreedIndex(news); got != 80 {
		t.Errorf("expected 80, got %d", got)
	}
	news = []model.NewsItem{{ImpactScore: -100}, {ImpactScore: -100}}
	if got := FearGreedIndex(news); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}
