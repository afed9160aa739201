// Package aggregate groups normalized activities by time period and activity
// group for display.
package aggregate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownInterval is returned by ParseInterval for unrecognized names.
var ErrUnknownInterval = errors.New("unknown interval")

// Interval is the time bucketing used for trends.
type Interval int

const (
	Monthly Interval = iota + 1
	Quarterly
	Annual
	AllTime
)

// AllTimeLabel is the single period label of the AllTime interval.
const AllTimeLabel = "All Time"

// Intervals lists every interval in display order.
var Intervals = []Interval{Monthly, Quarterly, Annual, AllTime}

// ParseInterval resolves an interval name (monthly, quarterly, annual,
// alltime).
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "monthly":
		return Monthly, nil
	case "quarterly":
		return Quarterly, nil
	case "annual":
		return Annual, nil
	case "alltime":
		return AllTime, nil
	}
	return 0, fmt.Errorf("%w: %q (expected monthly|quarterly|annual|alltime)", ErrUnknownInterval, s)
}

func (i Interval) String() string {
	switch i {
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Annual:
		return "annual"
	case AllTime:
		return "alltime"
	}
	return fmt.Sprintf("Interval(%d)", int(i))
}

// MarshalText encodes the interval name.
func (i Interval) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// Period returns the label and start of the period containing t, e.g.
// "2024-01", "2024Q1", "2024" or "All Time".
func (i Interval) Period(t time.Time) (string, time.Time) {
	switch i {
	case Monthly:
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
		return start.Format("2006-01"), start
	case Quarterly:
		q := (int(t.Month())-1)/3 + 1
		start := time.Date(t.Year(), time.Month((q-1)*3+1), 1, 0, 0, 0, 0, t.Location())
		return fmt.Sprintf("%dQ%d", t.Year(), q), start
	case Annual:
		start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
		return start.Format("2006"), start
	}
	return AllTimeLabel, time.Time{}
}

// RollingWindow is the number of periods in the rolling distance average.
func (i Interval) RollingWindow() int {
	if i == Monthly {
		return 3
	}
	return 2
}
