package model

import "time"

// PriceState is the simulated quote for the tracked symbol.
type PriceState struct {
	Symbol               string        `json:"symbol"`
	Current              float64       `json:"current"`
	ClosePrice           float64       `json:"close_price"`
	PreviousSegmentClose float64       `json:"previous_segment_close"`
	Change               float64       `json:"change"`
	ChangePercent        float64       `json:"change_percent"`
	DayHigh              float64       `json:"day_high"`
	DayLow               float64       `json:"day_low"`
	Volume               float64       `json:"volume"`
	Session              MarketSession `json:"session"`
	TradingDay           string        `json:"trading_day"` // exchange-local date, 2006-01-02
	AsOf                 time.Time     `json:"as_of"`
}

// PriceSample is a quote delivered by an external price provider.
type PriceSample struct {
	Source     string
	Current    float64
	ClosePrice float64
	High       float64
	Low        float64
	Volume     float64
	AsOf       time.Time
}
