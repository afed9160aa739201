package activitystats

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// DistanceBucket is a standard race distance with its tolerance window.
type DistanceBucket struct {
	Label string  `json:"label"`
	MinKM float64 `json:"min_km"`
	MaxKM float64 `json:"max_km"`
}

// Contains reports whether km falls in the closed window.
func (b DistanceBucket) Contains(km float64) bool {
	return km >= b.MinKM && km <= b.MaxKM
}

// StandardBuckets lists the race distances in display order.
var StandardBuckets = []DistanceBucket{
	{Label: "5K", MinKM: 4.8, MaxKM: 5.2},
	{Label: "10K", MinKM: 9.8, MaxKM: 10.5},
	{Label: "Half Marathon", MinKM: 20.5, MaxKM: 21.5},
	{Label: "Marathon", MinKM: 41.5, MaxKM: 43.0},
}

// RaceRecord is an activity flagged as a race with its formatted clock time.
type RaceRecord struct {
	Activity
	Time string `json:"time"`
}

// BestRaceTime is the fastest race within one distance bucket.
type BestRaceTime struct {
	Bucket     string    `json:"bucket"`
	Seconds    float64   `json:"seconds"`
	Time       string    `json:"time"`
	DistanceKM float64   `json:"distance_km"`
	Date       time.Time `json:"date"`
	Name       string    `json:"name"`
}

// FormatRaceTime renders seconds as H:MM:SS from one hour up and M:SS below.
// Fractional seconds are truncated.
func FormatRaceTime(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return "N/A"
	}
	if seconds < 0 {
		seconds = 0
	}
	total := int64(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// Races returns the race-flagged activities, newest first.
func Races(activities []Activity) []RaceRecord {
	out := make([]RaceRecord, 0)
	for _, a := range activities {
		if !a.IsRace {
			continue
		}
		out = append(out, RaceRecord{Activity: a, Time: FormatRaceTime(a.ElapsedSeconds())})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date().After(out[j].Date())
	})
	return out
}

// BestRaceTimes picks the fastest running race per standard bucket. Buckets
// without a qualifying race have no entry. On equal times the earlier record
// in races wins.
func BestRaceTimes(races []RaceRecord) map[string]BestRaceTime {
	out := make(map[string]BestRaceTime, len(StandardBuckets))
	for _, bucket := range StandardBuckets {
		var best *RaceRecord
		for i := range races {
			r := &races[i]
			if r.Group != GroupRunning || !r.IsRace || !bucket.Contains(r.DistanceKM) {
				continue
			}
			if best == nil || r.ElapsedSeconds() < best.ElapsedSeconds() {
				best = r
			}
		}
		if best == nil {
			continue
		}
		secs := best.ElapsedSeconds()
		out[bucket.Label] = BestRaceTime{
			Bucket:     bucket.Label,
			Seconds:    secs,
			Time:       FormatRaceTime(secs),
			DistanceKM: best.DistanceKM,
			Date:       best.Date(),
			Name:       best.Name(),
		}
	}
	return out
}

// OrderedBestTimes returns the entries of best in StandardBuckets order.
func OrderedBestTimes(best map[string]BestRaceTime) []BestRaceTime {
	out := make([]BestRaceTime, 0, len(best))
	for _, bucket := range StandardBuckets {
		if b, ok := best[bucket.Label]; ok {
			out = append(out, b)
		}
	}
	return out
}

// SplitCompetitions partitions activities by the source Competition flag,
// independent of the name heuristic.
func SplitCompetitions(activities []Activity) (competitions, training []Activity) {
	for _, a := range activities {
		if a.Raw.Competition {
			competitions = append(competitions, a)
		} else {
			training = append(training, a)
		}
	}
	return competitions, training
}
