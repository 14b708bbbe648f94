package model

import "fmt"

// MarketSession is the time-of-day trading phase of the exchange.
type MarketSession int

const (
	SessionClosed MarketSession = iota
	SessionPreMarket
	SessionRegular
	SessionAfterHours
)

// String returns the wire name used in snapshots and the recorder.
func (s MarketSession) String() string {
	switch s {
	case SessionPreMarket:
		return "premarket"
	case SessionRegular:
		return "regular"
	case SessionAfterHours:
		return "afterhours"
	default:
		return "closed"
	}
}

// Label returns a human readable name.
func (s MarketSession) Label() string {
	switch s {
	case SessionPreMarket:
		return "Pre-Market"
	case SessionRegular:
		return "Regular Hours"
	case SessionAfterHours:
		return "After-Hours"
	default:
		return "Closed"
	}
}

// Open reports whether the simulated price is allowed to move.
func (s MarketSession) Open() bool {
	return s != SessionClosed
}

// MarshalText lets sessions serialize by name in JSON.
func (s MarketSession) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a session wire name.
func (s *MarketSession) UnmarshalText(b []byte) error {
	switch string(b) {
	case "premarket":
		*s = SessionPreMarket
	case "regular":
		*s = SessionRegular
	case "afterhours":
		*s = SessionAfterHours
	case "closed":
		*s = SessionClosed
	default:
		return fmt.Errorf("unknown market session %q", string(b))
	}
	return nil
}
