package calculator

import (
	"math"

	"MarketVision/internal/model"
)

// DayRangePosition returns where the current price sits within the day's range (0.0~1.0).
// A flat range reports the midpoint; an inverted range reports 0.
func DayRangePosition(current, high, low float64) float64 {
	if high == low {
		return 0.5
	}
	if high < low {
		return 0
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos
}

// FearGreedIndex maps the average impact score of the news feed onto a 0-100 gauge.
// An empty feed is neutral.
func FearGreedIndex(news []model.NewsItem) int {
	if len(news) == 0 {
		return 50
	}
	sum := 0
	for _, n := range news {
		sum += n.ImpactScore
	}
	avg := float64(sum) / float64(len(news))
	v := int(math.Round(50 + avg/2))
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return v
}

// FearGreedFor labels a gauge value.
func FearGreedFor(value int) model.FearGreed {
	var label string
	switch {
	case value <= 20:
		label = "Extreme Fear"
	case value <= 40:
		label = "Fear"
	case value <= 60:
		label = "Neutral"
	case value <= 80:
		label = "Greed"
	default:
		label = "Extreme Greed"
	}
	return model.FearGreed{Value: value, Label: label}
}
