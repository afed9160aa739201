package activitystats

import (
	"regexp"
	"strings"
)

// RuleScope selects which text a race rule inspects.
type RuleScope int

const (
	// ScopeCombined is the lowercased name and description joined and trimmed.
	ScopeCombined RuleScope = iota
	// ScopeName is the lowercased name alone, untrimmed.
	ScopeName
)

// RaceRule is one entry of the ordered race heuristic. A rule applies when its
// scoped text contains any of Contains or matches Pattern, and the name contains
// none of Unless.
type RaceRule struct {
	Name     string
	Scope    RuleScope
	Contains []string
	Pattern  *regexp.Regexp
	Unless   []string
	Verdict  bool
}

func (r RaceRule) applies(name, combined string) bool {
	text := combined
	if r.Scope == ScopeName {
		text = name
	}
	hit := containsAny(text, r.Contains)
	if !hit && r.Pattern != nil {
		hit = r.Pattern.MatchString(text)
	}
	if !hit {
		return false
	}
	return !containsAny(name, r.Unless)
}

// RaceDetector evaluates rules in order; the first rule that applies decides.
type RaceDetector struct {
	Rules []RaceRule
}

// Detect reports the verdict and the name of the rule that decided it. The
// rule name is empty when nothing applied.
func (d RaceDetector) Detect(name, description string) (bool, string) {
	nameLower := strings.ToLower(cleanText(name))
	descLower := strings.ToLower(cleanText(description))
	combined := strings.TrimSpace(nameLower + " " + descLower)
	if combined == "" {
		return false, ""
	}
	for _, r := range d.Rules {
		if r.applies(nameLower, combined) {
			return r.Verdict, r.Name
		}
	}
	return false, ""
}

// IsRace applies DefaultRaceDetector.
func IsRace(name, description string) bool {
	ok, _ := DefaultRaceDetector.Detect(name, description)
	return ok
}

// DefaultRaceDetector holds the race heuristic. Anti-patterns are checked on
// name and description; every positive rule looks at the name only.
var DefaultRaceDetector = RaceDetector{Rules: []RaceRule{
	{
		Name:  "anti-pattern",
		Scope: ScopeCombined,
		Contains: []string{
			"1/3 marathon", "almost half marathon", "almost marathon", "almost half",
			"pre race", "post race", "training", "recovery",
			"worth missing parkrun", "missing parkrun", "skip parkrun", "skipped parkrun",
			"race across world", "featured in race", "route",
			"half ben nevis", "halfway", "too long 10k",
		},
		Verdict: false,
	},
	{
		Name:  "strong-keyword",
		Scope: ScopeName,
		Contains: []string{
			"parkrun", "park run", "half marathon", "marathon", "ultra marathon",
			"triathlon", "duathlon", "ironman", "10k race", "5k race",
			"championship", "championships", " xc ", "xc race", "xc run",
		},
		Verdict: true,
	},
	{
		Name:    "cross-country",
		Scope:   ScopeName,
		Pattern: regexp.MustCompile(`\bxc\b`),
		Verdict: true,
	},
	{
		Name:     "distance-token",
		Scope:    ScopeName,
		Contains: []string{"10k", "5k", "10km", "5km", "10,000", "5,000"},
		Unless:   []string{"route", "training"},
		Verdict:  true,
	},
	{
		Name:     "race-keyword",
		Scope:    ScopeName,
		Contains: []string{"race"},
		Unless:   []string{"race across", "route"},
		Verdict:  true,
	},
	{
		Name:    "half",
		Scope:   ScopeName,
		Pattern: regexp.MustCompile(` half|half$`),
		Unless:  []string{"ben nevis", "way"},
		Verdict: true,
	},
	{
		Name:     "relay",
		Scope:    ScopeName,
		Contains: []string{"relay"},
		Verdict:  true,
	},
}}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
