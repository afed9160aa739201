package activitystats

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// BuildSummaryNotes turns a processed dataset into a plain-text summary.
func BuildSummaryNotes(d *Dataset) string {
	if d == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Activities: %d of %d rows (mapping %s)\n", len(d.Activities), d.SourceRows, d.Mapping)
	if len(d.Activities) > 0 {
		newest := d.Activities[0].Date()
		oldest := d.Activities[len(d.Activities)-1].Date()
		fmt.Fprintf(&b, "Range: %s to %s\n", oldest.Format("2006-01-02"), newest.Format("2006-01-02"))
	}
	if s := d.SkippedSummary(); s != "" {
		fmt.Fprintf(&b, "Note: %s\n", s)
	}

	groups := groupTotals(d.Activities)
	if len(groups) > 0 {
		b.WriteString("\nBy Group\n")
		for _, g := range groups {
			fmt.Fprintf(
				&b,
				"- %s: %d activities | %.1f km | %s | +%.0f m\n",
				g.group,
				g.count,
				g.distanceKM,
				formatDuration(g.durationMin*60),
				g.elevationM,
			)
		}
	}

	b.WriteString("\nRaces\n")
	if len(d.Races) == 0 {
		b.WriteString("- No races detected.\n")
	} else {
		fmt.Fprintf(&b, "- %d races detected, latest: %s (%s)\n", len(d.Races), d.Races[0].Name(), d.Races[0].Time)
		for _, bt := range OrderedBestTimes(d.BestTimes) {
			fmt.Fprintf(&b, "- Best %s: %s at %s on %s\n", bt.Bucket, bt.Time, bt.Name, bt.Date.Format("2006-01-02"))
		}
	}

	b.WriteString("\nPersonal Records\n")
	writeRecord(&b, "Longest distance", d.Records.LongestDistance, "%.1f km")
	if pr := d.Records.LongestDuration; pr != nil {
		fmt.Fprintf(&b, "- Longest duration: %s (%s)\n", formatDuration(pr.Value*60), pr.Activity.Name())
	}
	writeRecord(&b, "Most elevation", d.Records.MostElevation, "%.0f m")
	writeRecord(&b, "Fastest speed", d.Records.FastestSpeed, "%.1f km/h")

	return strings.TrimSpace(b.String())
}

func writeRecord(b *strings.Builder, label string, pr *PersonalRecord, valueFormat string) {
	if pr == nil {
		fmt.Fprintf(b, "- %s: N/A\n", label)
		return
	}
	fmt.Fprintf(b, "- %s: "+valueFormat+" (%s)\n", label, pr.Value, pr.Activity.Name())
}

type groupTotal struct {
	group       Group
	count       int
	distanceKM  float64
	durationMin float64
	elevationM  float64
}

func groupTotals(activities []Activity) []groupTotal {
	byGroup := map[Group]*groupTotal{}
	for _, a := range activities {
		t, ok := byGroup[a.Group]
		if !ok {
			t = &groupTotal{group: a.Group}
			byGroup[a.Group] = t
		}
		t.count++
		t.distanceKM += a.DistanceKM
		t.durationMin += a.DurationMin
		t.elevationM += a.Elevation()
	}
	out := make([]groupTotal, 0, len(byGroup))
	for _, t := range byGroup {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].group < out[j].group
	})
	return out
}

func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "0s"
	}
	s := int(math.Round(seconds))
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, sec)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, sec)
	}
	return fmt.Sprintf("%ds", sec)
}
