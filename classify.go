package activitystats

import (
	"sort"
	"strings"
)

// Group is the canonical category an activity is bucketed into.
type Group string

const (
	GroupRunning        Group = "Running"
	GroupCycling        Group = "Cycling"
	GroupMountainBiking Group = "Mountain Biking"
	GroupRoadCycling    Group = "Road Cycling"
	GroupWalking        Group = "Walking"
	GroupHiking         Group = "Hiking"
	GroupSwimming       Group = "Swimming"
	GroupStrength       Group = "Strength"
	GroupWinterSports   Group = "Winter Sports"
	GroupTeamSports     Group = "Team Sports"
	GroupOther          Group = "Other"
)

// UnknownType replaces a missing activity-type label before lookup.
const UnknownType = "Unknown"

// IsCycling reports whether g is Cycling or one of its refinements.
func (g Group) IsCycling() bool {
	return g == GroupCycling || g == GroupMountainBiking || g == GroupRoadCycling
}

var (
	mtbKeywords  = []string{"mtb", "mountain bike", "mountain biking"}
	roadKeywords = []string{"road bike", "road cycling", "road ride"}
)

// GroupMapping is one revision of the activity-type to group table. The zero
// value maps everything to Other. Values are never mutated after construction.
type GroupMapping struct {
	revision string
	groups   map[string]Group
}

// NewGroupMapping copies table into a named mapping revision.
func NewGroupMapping(revision string, table map[string]Group) GroupMapping {
	groups := make(map[string]Group, len(table))
	for k, v := range table {
		groups[k] = v
	}
	return GroupMapping{revision: revision, groups: groups}
}

// Revision names the mapping.
func (m GroupMapping) Revision() string { return m.revision }

// Types lists the mapped activity-type labels in sorted order.
func (m GroupMapping) Types() []string {
	out := make([]string, 0, len(m.groups))
	for k := range m.groups {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Lookup maps an activity-type label to its group. Unmapped and empty labels
// map to Other.
func (m GroupMapping) Lookup(activityType string) Group {
	t := strings.TrimSpace(activityType)
	if t == "" {
		t = UnknownType
	}
	if g, ok := m.groups[t]; ok {
		return g
	}
	return GroupOther
}

// Classify maps the activity type and, for cycling, refines the group from the
// name and description.
func (m GroupMapping) Classify(activityType, name, description string) Group {
	g := m.Lookup(activityType)
	if g != GroupCycling {
		return g
	}
	return RefineCycling(name, description)
}

// RefineCycling picks the cycling subtype from free text. Mountain-bike
// keywords take precedence over road keywords.
func RefineCycling(name, description string) Group {
	text := strings.ToLower(cleanText(name) + " " + cleanText(description))
	for _, kw := range mtbKeywords {
		if strings.Contains(text, kw) {
			return GroupMountainBiking
		}
	}
	for _, kw := range roadKeywords {
		if strings.Contains(text, kw) {
			return GroupRoadCycling
		}
	}
	return GroupCycling
}

var (
	// BaselineMapping is the earliest table: skiing and water sports fall
	// into Other and there is no team-sport group.
	BaselineMapping = NewGroupMapping("baseline", map[string]Group{
		"Run":             GroupRunning,
		"Virtual Run":     GroupRunning,
		"Ride":            GroupCycling,
		"Walk":            GroupWalking,
		"Hike":            GroupWalking,
		"Weight Training": GroupStrength,
		"Workout":         GroupStrength,
		"Rowing":          GroupStrength,
		"Swim":            GroupSwimming,
		"Open Water Swim": GroupSwimming,
		"Alpine Ski":      GroupOther,
		"Water Sport":     GroupOther,
		"Unknown":         GroupOther,
	})

	// CanonicalMapping is the default table.
	CanonicalMapping = NewGroupMapping("canonical", canonicalTable(GroupWalking))

	// HikingSplitMapping is CanonicalMapping with hikes in their own group.
	HikingSplitMapping = NewGroupMapping("hiking-split", canonicalTable(GroupHiking))
)

func canonicalTable(hike Group) map[string]Group {
	return map[string]Group{
		"Run":             GroupRunning,
		"Virtual Run":     GroupRunning,
		"Ride":            GroupCycling,
		"Walk":            GroupWalking,
		"Hike":            hike,
		"Weight Training": GroupStrength,
		"Workout":         GroupStrength,
		"Rowing":          GroupStrength,
		"Swim":            GroupSwimming,
		"Open Water Swim": GroupSwimming,
		"Alpine Ski":      GroupWinterSports,
		"Backcountry Ski": GroupWinterSports,
		"Nordic Ski":      GroupWinterSports,
		"Snowboard":       GroupWinterSports,
		"Rugby":           GroupTeamSports,
		"Football":        GroupTeamSports,
		"Netball":         GroupTeamSports,
		"Basketball":      GroupTeamSports,
		"Soccer":          GroupTeamSports,
		"Unknown":         GroupOther,
	}
}

// MappingByName resolves a mapping revision by its name.
func MappingByName(name string) (GroupMapping, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "canonical":
		return CanonicalMapping, true
	case "baseline":
		return BaselineMapping, true
	case "hiking-split":
		return HikingSplitMapping, true
	}
	return GroupMapping{}, false
}

// cleanText treats the literal "nan" placeholder of some exports as empty.
func cleanText(s string) string {
	if s == "nan" {
		return ""
	}
	return s
}
