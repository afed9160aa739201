package activitystats

import (
	"regexp"
	"testing"
)

func TestIsRace(t *testing.T) {
	cases := []struct {
		name        string
		description string
		want        bool
	}{
		{"Swindon parkrun", "", true},
		{"York parkrun", "", true},
		{"PARKRUN", "", true},
		{"Park Run with friends", "", true},
		{"Morning Run", "", false},
		{"Recovery run", "", false},
		{"1/3 marathon", "", false},
		{"Almost half marathon", "", false},
		{"Chippenham Half", "", true},
		{"Yorkshire marathon", "", true},
		{"Weymouth Ironman 70.3", "", true},
		{"County Championships", "", true},
		{"XC league round 2", "", true},
		{"Exercise bike", "", false},
		{"Town 10K", "", true},
		{"Lunch 5km", "", true},
		{"Town 10K", "easy training pace", false},
		{"New 5k route", "", false},
		{"Pre race shakeout", "", false},
		{"Sprint race", "", true},
		{"Race Across the World", "", false},
		{"Walked half way", "", false},
		{"Ben Nevis half", "", false},
		{"Relay leg", "", true},
		{"Sunday Run", "It was a race!", false},
		{"Saturday", "parkrun PB", false},
		{"Skipped parkrun for a lie in", "", false},
		{"", "", false},
		{"   ", "  ", false},
		{"nan", "nan", false},
	}
	for _, tc := range cases {
		if got := IsRace(tc.name, tc.description); got != tc.want {
			t.Fatalf("IsRace(%q, %q): got %t want %t", tc.name, tc.description, got, tc.want)
		}
	}
}

func TestRaceDetectorReportsDecidingRule(t *testing.T) {
	cases := []struct {
		name string
		want bool
		rule string
	}{
		{"Almost half marathon", false, "anti-pattern"},
		{"Chippenham Half", true, "half"},
		{"Morning Run", false, ""},
	}
	for _, tc := range cases {
		ok, rule := DefaultRaceDetector.Detect(tc.name, "")
		if ok != tc.want || rule != tc.rule {
			t.Fatalf("Detect(%q): got (%t, %q) want (%t, %q)", tc.name, ok, rule, tc.want, tc.rule)
		}
	}
}

func TestRaceDetectorRulesAreData(t *testing.T) {
	d := RaceDetector{Rules: []RaceRule{
		{Name: "veto", Scope: ScopeCombined, Contains: []string{"fun"}, Verdict: false},
		{Name: "gp", Scope: ScopeName, Pattern: regexp.MustCompile(`\bgp\b`), Verdict: true},
	}}
	cases := []struct {
		name, description string
		want              bool
	}{
		{"Club GP", "", true},
		{"Club GP", "just for fun", false},
		{"Club GPS test", "", false},
	}
	for _, tc := range cases {
		if ok, _ := d.Detect(tc.name, tc.description); ok != tc.want {
			t.Fatalf("Detect(%q, %q): got %t want %t", tc.name, tc.description, ok, tc.want)
		}
	}
}
