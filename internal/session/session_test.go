package session

import (
	"testing"
	"time"

	"MarketVision/internal/model"
)

var kst = time.FixedZone("KST", 9*3600)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 12, hour, minute, 0, 0, kst)
}

func TestSessionFor_Boundaries(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         model.MarketSession
	}{
		// exchange = local - 13h
		{16, 59, model.SessionClosed},    // 03:59 ET
		{17, 0, model.SessionPreMarket},  // 04:00 ET
		{22, 29, model.SessionPreMarket}, // 09:29 ET
		{22, 30, model.SessionRegular},   // 09:30 ET
		{4, 59, model.SessionRegular},    // 15:59 ET
		{5, 0, model.SessionAfterHours},  // 16:00 ET
		{8, 59, model.SessionAfterHours}, // 19:59 ET
		{9, 0, model.SessionClosed},      // 20:00 ET
		{13, 0, model.SessionClosed},     // 00:00 ET
	}
	for _, tt := range tests {
		got := SessionFor(at(tt.hour, tt.minute), DefaultOffsetHours)
		if got != tt.want {
			t.Errorf("%02d:%02d local: expected %s, got %s", tt.hour, tt.minute, tt.want, got)
		}
	}
}

func TestSessionFor_MinuteBoundaries(t *testing.T) {
	if got := sessionForMinute(570); got != model.SessionRegular {
		t.Errorf("minute 570: expected regular, got %s", got)
	}
	if got := sessionForMinute(569); got != model.SessionPreMarket {
		t.Errorf("minute 569: expected premarket, got %s", got)
	}
}

func TestSessionFor_PartitionsDay(t *testing.T) {
	counts := map[model.MarketSession]int{}
	prev := sessionForMinute(0)
	changes := 0
	for m := 0; m < 24*60; m++ {
		s := sessionForMinute(m)
		counts[s]++
		if s != prev {
			changes++
			prev = s
		}
	}
	if changes != 4 {
		t.Errorf("expected 4 contiguous transitions across the day, got %d", changes)
	}
	want := map[model.MarketSession]int{
		model.SessionPreMarket:  330,
		model.SessionRegular:    390,
		model.SessionAfterHours: 240,
		model.SessionClosed:     480,
	}
	for s, n := range want {
		if counts[s] != n {
			t.Errorf("%s: expected %d minutes, got %d", s, n, counts[s])
		}
	}
}

func TestMinutesOfDay_Wraps(t *testing.T) {
	if got := MinutesOfDay(at(3, 15), 13); got != 14*60+15 {
		t.Errorf("expected %d, got %d", 14*60+15, got)
	}
	if got := MinutesOfDay(at(3, 15), 0); got != 3*60+15 {
		t.Errorf("expected %d, got %d", 3*60+15, got)
	}
	if got := MinutesOfDay(at(3, 15), -5); got != 8*60+15 {
		t.Errorf("expected %d, got %d", 8*60+15, got)
	}
}

func TestTradingDay(t *testing.T) {
	// 10:00 KST on the 12th is 21:00 ET on the 11th.
	if got := TradingDay(at(10, 0), DefaultOffsetHours); got != "2025-03-11" {
		t.Errorf("expected 2025-03-11, got %s", got)
	}
	if got := TradingDay(at(18, 0), DefaultOffsetHours); got != "2025-03-12" {
		t.Errorf("expected 2025-03-12, got %s", got)
	}
}
