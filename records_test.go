package activitystats

import (
	"testing"
	"time"
)

func activity(name string, group Group, km, minutes float64, elevation *float64) Activity {
	return Activity{
		Raw:         RawActivity{Name: name, Date: time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)},
		DistanceKM:  km,
		DurationMin: minutes,
		ElevationM:  elevation,
		SpeedKMH:    SanitizedSpeed(km, minutes),
		Group:       group,
	}
}

func recordName(pr *PersonalRecord) string {
	if pr == nil {
		return "<none>"
	}
	return pr.Activity.Name()
}

func TestPersonalRecords(t *testing.T) {
	prs := ComputePersonalRecords([]Activity{
		activity("long ride", GroupCycling, 120, 300, floatPtr(1500)),
		activity("hilly hike", GroupWalking, 15, 360, floatPtr(1800)),
		activity("glitch swim", GroupSwimming, 0.001, 0.0001, nil),
		activity("forgotten watch", GroupRunning, 2, 900, nil),
	})

	checks := []struct {
		label string
		pr    *PersonalRecord
		want  string
	}{
		{"longest distance", prs.LongestDistance, "long ride"},
		{"most elevation", prs.MostElevation, "hilly hike"},
		{"fastest speed", prs.FastestSpeed, "long ride"},
		{"longest duration", prs.LongestDuration, "hilly hike"},
	}
	for _, c := range checks {
		if got := recordName(c.pr); got != c.want {
			t.Fatalf("%s: got %q want %q", c.label, got, c.want)
		}
	}
	if !near(prs.FastestSpeed.Value, 24) {
		t.Fatalf("fastest speed: got %v want 24", prs.FastestSpeed.Value)
	}
}

func TestPersonalRecordsDurationFallback(t *testing.T) {
	prs := ComputePersonalRecords([]Activity{
		activity("parked", GroupCycling, 1, 600, nil),
		activity("stopped", GroupCycling, 1, 300, nil),
	})
	if got := recordName(prs.LongestDuration); got != "parked" {
		t.Fatalf("longest duration: got %q want parked", got)
	}
	if prs.MostElevation != nil {
		t.Fatalf("missing elevations must not produce a record")
	}
}

func TestPersonalRecordsEmpty(t *testing.T) {
	prs := ComputePersonalRecords(nil)
	if prs.LongestDistance != nil || prs.LongestDuration != nil || prs.MostElevation != nil || prs.FastestSpeed != nil {
		t.Fatalf("expected no records, got %+v", prs)
	}
}
