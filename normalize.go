package activitystats

import (
	"math"
	"strings"
)

// meterDistanceTypes report distance in metres; every other type reports km.
var meterDistanceTypes = map[string]bool{
	"Swim":   true,
	"Rowing": true,
}

// elapsedTimeTypes count rest intervals as part of the workout.
var elapsedTimeTypes = map[string]bool{
	"Weight Training": true,
	"Workout":         true,
	"Rowing":          true,
	"Yoga":            true,
}

// Normalizer turns raw rows into canonical, classified activities.
type Normalizer struct {
	Mapping GroupMapping
}

// NewNormalizer returns a normalizer bound to one mapping revision.
func NewNormalizer(mapping GroupMapping) *Normalizer {
	return &Normalizer{Mapping: mapping}
}

// ReportsMeters reports whether the export records distance for the type in
// metres rather than kilometres.
func ReportsMeters(activityType string) bool {
	return meterDistanceTypes[strings.TrimSpace(activityType)]
}

// DistanceKM converts a raw distance to kilometres for the given type.
func DistanceKM(activityType string, distance float64) float64 {
	if ReportsMeters(activityType) {
		return distance / 1000
	}
	return distance
}

// DurationSeconds picks the canonical duration source for the type. Moving
// time is preferred except for gym-style types; when only one of the two is
// present it is used regardless.
func DurationSeconds(activityType string, elapsed, moving *float64) (float64, bool) {
	e, eok := positive(elapsed)
	m, mok := positive(moving)
	if elapsedTimeTypes[strings.TrimSpace(activityType)] {
		if eok {
			return e, true
		}
		return m, mok
	}
	if mok {
		return m, true
	}
	return e, eok
}

// Normalize produces the canonical record for one raw row. It fails with a
// FieldError wrapping ErrMissingRequiredField when the date, the distance or
// both time fields are missing.
func (n *Normalizer) Normalize(raw RawActivity) (Activity, error) {
	activityType := strings.TrimSpace(raw.Type)
	if activityType == "" {
		activityType = UnknownType
		raw.Type = UnknownType
	}

	seconds, ok := DurationSeconds(activityType, raw.ElapsedTime, raw.MovingTime)
	if !ok {
		return Activity{}, &FieldError{Row: raw.Row, Field: "Elapsed Time/Moving Time", Err: ErrMissingRequiredField}
	}
	if raw.Distance == nil || *raw.Distance < 0 || math.IsNaN(*raw.Distance) || math.IsInf(*raw.Distance, 0) {
		return Activity{}, &FieldError{Row: raw.Row, Field: "Distance", Err: ErrMissingRequiredField}
	}
	if raw.Date.IsZero() {
		return Activity{}, &FieldError{Row: raw.Row, Field: "Activity Date", Err: ErrMissingRequiredField}
	}

	out := Activity{
		Raw:         raw,
		DistanceKM:  DistanceKM(activityType, *raw.Distance),
		DurationMin: seconds / 60,
		Group:       n.Mapping.Classify(activityType, raw.Name, raw.Description),
		IsRace:      IsRace(raw.Name, raw.Description),
	}
	if raw.ElevationGain != nil && !math.IsNaN(*raw.ElevationGain) {
		out.ElevationM = floatPtr(*raw.ElevationGain)
	}
	out.SpeedKMH = SanitizedSpeed(out.DistanceKM, out.DurationMin)
	return out, nil
}

func positive(v *float64) (float64, bool) {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v <= 0 {
		return 0, false
	}
	return *v, true
}
