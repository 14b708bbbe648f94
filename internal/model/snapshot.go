package model

import "time"

// FearGreed is a 0-100 mood gauge derived from the news feed.
type FearGreed struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// MacroIndicator is one reference figure in the macro panel.
type MacroIndicator struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Unit          string  `json:"unit"`
}

// Trend is "up", "down" or "neutral" by the sign of Change.
func (m MacroIndicator) Trend() string {
	switch {
	case m.Change > 0:
		return "up"
	case m.Change < 0:
		return "down"
	default:
		return "neutral"
	}
}

// Snapshot is the read-only view handed to presentation layers.
type Snapshot struct {
	Price            PriceState       `json:"price"`
	DayRangePosition float64          `json:"day_range_position"` // 0.0 ~ 1.0
	Portfolio        Portfolio        `json:"portfolio"`
	Scenario         Scenario         `json:"scenario"`
	Valuation        Valuation        `json:"valuation"`
	News             []NewsItem       `json:"news"`
	Posts            []SocialPost     `json:"posts"`
	FearGreed        FearGreed        `json:"fear_greed"`
	Macro            []MacroIndicator `json:"macro"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
