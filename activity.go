// Package activitystats normalizes and classifies fitness-tracker activity
// exports: unit reconciliation, activity groups, speed sanitizing, race
// detection and best race times.
package activitystats

import "time"

// RawActivity is one row of the source export, as read. Numeric fields are nil
// when the source value was absent or could not be parsed.
type RawActivity struct {
	Row           int       `json:"row"`
	ID            string    `json:"id,omitempty"`
	Date          time.Time `json:"date"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	Distance      *float64  `json:"distance,omitempty"`
	ElapsedTime   *float64  `json:"elapsed_time_s,omitempty"`
	MovingTime    *float64  `json:"moving_time_s,omitempty"`
	ElevationGain *float64  `json:"elevation_gain,omitempty"`
	AverageSpeed  *float64  `json:"average_speed,omitempty"`
	Competition   bool      `json:"competition"`
}

// Activity is a normalized and classified record. It is derived from exactly
// one RawActivity and is never fed back into the normalizer.
type Activity struct {
	Raw         RawActivity `json:"raw"`
	DistanceKM  float64     `json:"distance_km"`
	DurationMin float64     `json:"duration_min"`
	// ElevationM is nil when the source had no elevation.
	ElevationM *float64 `json:"elevation_m,omitempty"`
	// SpeedKMH is nil when the derived speed is implausible.
	SpeedKMH *float64 `json:"speed_kmh,omitempty"`
	Group    Group    `json:"group"`
	IsRace   bool     `json:"is_race"`
}

// Date returns the activity timestamp.
func (a Activity) Date() time.Time { return a.Raw.Date }

// Name returns the activity name.
func (a Activity) Name() string { return a.Raw.Name }

// Elevation returns the elevation gain with missing treated as 0, for sums.
func (a Activity) Elevation() float64 {
	if a.ElevationM == nil {
		return 0
	}
	return *a.ElevationM
}

// ElapsedSeconds is the race clock time: elapsed time when known, otherwise the
// canonical duration.
func (a Activity) ElapsedSeconds() float64 {
	if a.Raw.ElapsedTime != nil && *a.Raw.ElapsedTime > 0 {
		return *a.Raw.ElapsedTime
	}
	return a.DurationMin * 60
}

// DroppedRow records a source row excluded from the dataset.
type DroppedRow struct {
	Row    int    `json:"row"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

func floatPtr(v float64) *float64 {
	return &v
}
