package aggregate

import (
	"time"

	activitystats "github.com/lucasjlepore/activity-stats"
)

const (
	// EarthCircumferenceKM is used for the times-around-the-world metric.
	EarthCircumferenceKM = 40075.0
	// EverestHeightM is used for the times-up-Everest metric.
	EverestHeightM = 8849.0
)

// Summary holds totals over a set of activities. Missing elevation counts as 0.
type Summary struct {
	Activities int     `json:"total_activities"`
	DistanceKM float64 `json:"total_distance_km"`
	Hours      float64 `json:"total_hours"`
	ElevationM float64 `json:"total_elevation_m"`
}

// Summarize totals the activities.
func Summarize(activities []activitystats.Activity) Summary {
	var s Summary
	for _, a := range activities {
		s.Activities++
		s.DistanceKM += a.DistanceKM
		s.Hours += a.DurationMin / 60
		s.ElevationM += a.Elevation()
	}
	return s
}

// FunMetrics restates the totals as playful comparisons.
type FunMetrics struct {
	Summary
	TimesAroundWorld  float64 `json:"times_around_world"`
	TimesUpEverest    float64 `json:"times_up_everest"`
	DaysActive        float64 `json:"days_active"`
	ActivitiesPerWeek float64 `json:"activities_per_week"`
}

// ComputeFunMetrics derives the comparison metrics. Activities per week uses
// the span between the first and last activity, or one week when the span is
// under a day.
func ComputeFunMetrics(activities []activitystats.Activity) FunMetrics {
	m := FunMetrics{Summary: Summarize(activities)}
	m.TimesAroundWorld = m.DistanceKM / EarthCircumferenceKM
	m.TimesUpEverest = m.ElevationM / EverestHeightM
	m.DaysActive = m.Hours / 24

	if len(activities) == 0 {
		return m
	}
	first, last := activities[0].Date(), activities[0].Date()
	for _, a := range activities[1:] {
		if a.Date().Before(first) {
			first = a.Date()
		}
		if a.Date().After(last) {
			last = a.Date()
		}
	}
	weeks := 1.0
	if days := int(last.Sub(first).Hours() / 24); days > 0 {
		weeks = float64(days) / 7
	}
	m.ActivitiesPerWeek = float64(m.Activities) / weeks
	return m
}

// FilterGroups keeps activities whose group is in groups. An empty groups
// list keeps everything.
func FilterGroups(activities []activitystats.Activity, groups ...activitystats.Group) []activitystats.Activity {
	if len(groups) == 0 {
		return activities
	}
	want := make(map[activitystats.Group]bool, len(groups))
	for _, g := range groups {
		want[g] = true
	}
	out := make([]activitystats.Activity, 0, len(activities))
	for _, a := range activities {
		if want[a.Group] {
			out = append(out, a)
		}
	}
	return out
}

// FilterSince keeps activities dated within daysBack days before now.
func FilterSince(activities []activitystats.Activity, now time.Time, daysBack int) []activitystats.Activity {
	cutoff := now.AddDate(0, 0, -daysBack)
	out := make([]activitystats.Activity, 0, len(activities))
	for _, a := range activities {
		if !a.Date().Before(cutoff) {
			out = append(out, a)
		}
	}
	return out
}
