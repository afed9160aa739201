package activitystats

import (
	"errors"
	"math"
	"testing"
	"time"
)

func raw(activityType string, distance, elapsed float64) RawActivity {
	return RawActivity{
		Row:         1,
		Date:        time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		Name:        "Test",
		Type:        activityType,
		Distance:    floatPtr(distance),
		ElapsedTime: floatPtr(elapsed),
	}
}

func near(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestNormalizeDistanceUnits(t *testing.T) {
	n := NewNormalizer(CanonicalMapping)
	cases := []struct {
		activityType string
		distance     float64
		want         float64
	}{
		{"Swim", 1500, 1.5},
		{"Rowing", 2000, 2.0},
		{"Run", 5.0, 5.0},
		{"Ride", 42.7, 42.7},
		{"Open Water Swim", 1.2, 1.2},
		{"Kayaking", 3.3, 3.3},
	}
	for _, tc := range cases {
		t.Run(tc.activityType, func(t *testing.T) {
			a, err := n.Normalize(raw(tc.activityType, tc.distance, 1200))
			if err != nil {
				t.Fatalf("Normalize() error: %v", err)
			}
			if !near(a.DistanceKM, tc.want) {
				t.Fatalf("distance: got %v want %v", a.DistanceKM, tc.want)
			}
		})
	}
}

func TestNormalizeDurationSource(t *testing.T) {
	n := NewNormalizer(CanonicalMapping)
	for _, activityType := range []string{"Weight Training", "Workout", "Rowing", "Yoga"} {
		r := raw(activityType, 0, 3600)
		r.MovingTime = floatPtr(1800)
		a, err := n.Normalize(r)
		if err != nil {
			t.Fatalf("%s: Normalize() error: %v", activityType, err)
		}
		if !near(a.DurationMin, 60) {
			t.Fatalf("%s: expected elapsed time (60 min), got %v", activityType, a.DurationMin)
		}
	}

	r := raw("Run", 10, 3600)
	r.MovingTime = floatPtr(3000)
	a, err := n.Normalize(r)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if !near(a.DurationMin, 50) {
		t.Fatalf("expected moving time (50 min), got %v", a.DurationMin)
	}
}

func TestNormalizeFallsBackToAvailableTime(t *testing.T) {
	n := NewNormalizer(CanonicalMapping)

	r := raw("Run", 5, 0)
	r.ElapsedTime = nil
	r.MovingTime = floatPtr(1500)
	a, err := n.Normalize(r)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if !near(a.DurationMin, 25) {
		t.Fatalf("run without elapsed time: got %v min want 25", a.DurationMin)
	}

	r = raw("Workout", 0, 0)
	r.ElapsedTime = nil
	r.MovingTime = floatPtr(600)
	a, err = n.Normalize(r)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if !near(a.DurationMin, 10) {
		t.Fatalf("workout without elapsed time: got %v min want 10", a.DurationMin)
	}
}

func TestNormalizeMissingRequired(t *testing.T) {
	n := NewNormalizer(CanonicalMapping)

	noTime := raw("Run", 5, 0)
	noTime.ElapsedTime = nil
	noDistance := raw("Run", 0, 1200)
	noDistance.Distance = nil
	noDate := raw("Run", 5, 1200)
	noDate.Date = time.Time{}

	cases := []struct {
		name  string
		in    RawActivity
		field string
	}{
		{"no time", noTime, "Elapsed Time/Moving Time"},
		{"no distance", noDistance, "Distance"},
		{"no date", noDate, "Activity Date"},
	}
	for _, tc := range cases {
		_, err := n.Normalize(tc.in)
		if !errors.Is(err, ErrMissingRequiredField) {
			t.Fatalf("%s: expected ErrMissingRequiredField, got %v", tc.name, err)
		}
		var fe *FieldError
		if !errors.As(err, &fe) {
			t.Fatalf("%s: expected *FieldError, got %T", tc.name, err)
		}
		if fe.Row != 1 || fe.Field != tc.field {
			t.Fatalf("%s: got row %d field %q, want row 1 field %q", tc.name, fe.Row, fe.Field, tc.field)
		}
	}
}

func TestNormalizeElevationMissingStaysNil(t *testing.T) {
	n := NewNormalizer(CanonicalMapping)
	a, err := n.Normalize(raw("Hike", 8, 7200))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if a.ElevationM != nil || a.Elevation() != 0 {
		t.Fatalf("missing elevation should stay nil and sum as 0, got %v", a.ElevationM)
	}

	r := raw("Hike", 8, 7200)
	r.ElevationGain = floatPtr(420)
	a, err = n.Normalize(r)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if a.ElevationM == nil || !near(*a.ElevationM, 420) {
		t.Fatalf("expected elevation 420, got %v", a.ElevationM)
	}
}

func TestNormalizeDoesNotReconvert(t *testing.T) {
	n := NewNormalizer(CanonicalMapping)
	first, err := n.Normalize(raw("Swim", 1000, 1800))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	second, err := n.Normalize(first.Raw)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if !near(first.DistanceKM, 1) || !near(second.DistanceKM, first.DistanceKM) {
		t.Fatalf("swim distance changed on second pass: %v then %v", first.DistanceKM, second.DistanceKM)
	}
	if !near(*first.Raw.Distance, 1000) {
		t.Fatalf("raw distance mutated: %v", *first.Raw.Distance)
	}
}

func TestNormalizeEmptyTypeIsUnknown(t *testing.T) {
	n := NewNormalizer(CanonicalMapping)
	a, err := n.Normalize(raw("", 3, 900))
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}
	if a.Raw.Type != UnknownType || a.Group != GroupOther {
		t.Fatalf("got type %q group %q", a.Raw.Type, a.Group)
	}
}

func TestSanitizedSpeed(t *testing.T) {
	if v := SanitizedSpeed(10, 60); v == nil || !near(*v, 10) {
		t.Fatalf("10 km in 60 min: got %v", v)
	}
	if v := SanitizedSpeed(100, 60); v == nil || !near(*v, 100) {
		t.Fatalf("100 km/h is the inclusive upper bound, got %v", v)
	}
	for _, tc := range []struct{ km, min float64 }{{0.001, 0.0001}, {0, 30}, {5, 0}} {
		if v := SanitizedSpeed(tc.km, tc.min); v != nil {
			t.Fatalf("%v km in %v min: expected nil, got %v", tc.km, tc.min, *v)
		}
	}
}
