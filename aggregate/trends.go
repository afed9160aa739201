package aggregate

import (
	"math"
	"sort"
	"time"

	activitystats "github.com/lucasjlepore/activity-stats"
)

// TrendPoint is one period of aggregated activity.
type TrendPoint struct {
	Period        string    `json:"period"`
	Start         time.Time `json:"start"`
	DistanceKM    float64   `json:"distance_km"`
	DurationMin   float64   `json:"duration_min"`
	DurationHours float64   `json:"duration_hours"`
	ElevationM    float64   `json:"elevation_m"`
	Count         int       `json:"count"`
	CumulativeKM  float64   `json:"cumulative_km"`
	// RollingAvgKM is nil until the rolling window has filled.
	RollingAvgKM *float64 `json:"rolling_avg_km,omitempty"`
}

// GroupCount is the number of activities of one group within a period.
type GroupCount struct {
	Period string              `json:"period"`
	Group  activitystats.Group `json:"group"`
	Count  int                 `json:"count"`
}

// Trends sums distance, duration, elevation and count per period, oldest
// first, then adds the running distance total and rolling average.
func Trends(activities []activitystats.Activity, interval Interval) []TrendPoint {
	if interval == AllTime {
		p := TrendPoint{Period: AllTimeLabel}
		for _, a := range activities {
			p.add(a)
		}
		p.finish()
		p.CumulativeKM = p.DistanceKM
		return []TrendPoint{p}
	}

	byPeriod := map[string]*TrendPoint{}
	for _, a := range activities {
		label, start := interval.Period(a.Date())
		p, ok := byPeriod[label]
		if !ok {
			p = &TrendPoint{Period: label, Start: start}
			byPeriod[label] = p
		}
		p.add(a)
	}
	out := make([]TrendPoint, 0, len(byPeriod))
	for _, p := range byPeriod {
		p.finish()
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })

	window := interval.RollingWindow()
	cumulative := 0.0
	for i := range out {
		cumulative += out[i].DistanceKM
		out[i].CumulativeKM = cumulative
		if i+1 >= window {
			sum := 0.0
			for _, p := range out[i+1-window : i+1] {
				sum += p.DistanceKM
			}
			avg := sum / float64(window)
			out[i].RollingAvgKM = &avg
		}
	}
	return out
}

func (p *TrendPoint) add(a activitystats.Activity) {
	p.DistanceKM += a.DistanceKM
	p.DurationMin += a.DurationMin
	p.ElevationM += a.Elevation()
	p.Count++
}

func (p *TrendPoint) finish() {
	p.DurationHours = round1(p.DurationMin / 60)
}

// GroupComposition counts activities per period and group, ordered by period
// then group name.
func GroupComposition(activities []activitystats.Activity, interval Interval) []GroupCount {
	type key struct {
		period string
		group  activitystats.Group
	}
	counts := map[key]int{}
	starts := map[string]time.Time{}
	for _, a := range activities {
		label, start := interval.Period(a.Date())
		starts[label] = start
		counts[key{label, a.Group}]++
	}
	out := make([]GroupCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, GroupCount{Period: k.period, Group: k.group, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		si, sj := starts[out[i].Period], starts[out[j].Period]
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return out[i].Group < out[j].Group
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
