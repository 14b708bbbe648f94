// Package session maps wall-clock time to exchange trading sessions.
package session

import (
	"time"

	"MarketVision/internal/model"
)

// Session boundaries in exchange-local minutes since midnight.
const (
	PreMarketOpen   = 4 * 60    // 04:00
	RegularOpen     = 9*60 + 30 // 09:30
	RegularClose    = 16 * 60   // 16:00
	AfterHoursClose = 20 * 60   // 20:00
)

// DefaultOffsetHours is the local-to-exchange offset of the reference setup
// (KST viewer, US Eastern exchange).
const DefaultOffsetHours = 13

// MinutesOfDay converts t to exchange-local minutes since midnight, where
// exchange time is t's wall clock minus offsetHours, wrapped into [0, 24h).
func MinutesOfDay(t time.Time, offsetHours int) int {
	h := (t.Hour() - offsetHours) % 24
	if h < 0 {
		h += 24
	}
	return h*60 + t.Minute()
}

// SessionFor classifies t. Boundaries are half-open; a timestamp exactly on a
// boundary belongs to the later session.
func SessionFor(t time.Time, offsetHours int) model.MarketSession {
	return sessionForMinute(MinutesOfDay(t, offsetHours))
}

func sessionForMinute(m int) model.MarketSession {
	switch {
	case m >= PreMarketOpen && m < RegularOpen:
		return model.SessionPreMarket
	case m >= RegularOpen && m < RegularClose:
		return model.SessionRegular
	case m >= RegularClose && m < AfterHoursClose:
		return model.SessionAfterHours
	default:
		return model.SessionClosed
	}
}

// ExchangeTime shifts t so its wall clock reads exchange-local time.
func ExchangeTime(t time.Time, offsetHours int) time.Time {
	return t.Add(-time.Duration(offsetHours) * time.Hour)
}

// TradingDay returns the exchange-local calendar date of t.
func TradingDay(t time.Time, offsetHours int) string {
	return ExchangeTime(t, offsetHours).Format("2006-01-02")
}
