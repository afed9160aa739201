package activitystats

// PersonalRecord is the best value of one metric and the activity holding it.
type PersonalRecord struct {
	Value    float64  `json:"value"`
	Unit     string   `json:"unit"`
	Activity Activity `json:"activity"`
}

// PersonalRecords holds the all-time bests. A field is nil when no activity
// has a usable value for it.
type PersonalRecords struct {
	LongestDistance *PersonalRecord `json:"longest_distance,omitempty"`
	LongestDuration *PersonalRecord `json:"longest_duration,omitempty"`
	MostElevation   *PersonalRecord `json:"most_elevation,omitempty"`
	FastestSpeed    *PersonalRecord `json:"fastest_speed,omitempty"`
}

// ComputePersonalRecords finds the bests over activities. Missing elevation
// and implausible speed never win. Longest duration skips activities slower
// than their group's minimum plausible speed, falling back to all activities
// when that leaves nothing.
func ComputePersonalRecords(activities []Activity) PersonalRecords {
	var prs PersonalRecords
	for _, a := range activities {
		prs.LongestDistance = better(prs.LongestDistance, a.DistanceKM, "km", a)
		if a.ElevationM != nil {
			prs.MostElevation = better(prs.MostElevation, *a.ElevationM, "m", a)
		}
		if a.SpeedKMH != nil {
			prs.FastestSpeed = better(prs.FastestSpeed, *a.SpeedKMH, "km/h", a)
		}
	}

	for _, a := range activities {
		if plausiblyMoving(a) {
			prs.LongestDuration = better(prs.LongestDuration, a.DurationMin, "min", a)
		}
	}
	if prs.LongestDuration == nil {
		for _, a := range activities {
			prs.LongestDuration = better(prs.LongestDuration, a.DurationMin, "min", a)
		}
	}
	return prs
}

func plausiblyMoving(a Activity) bool {
	floor := MinPlausibleSpeed(a.Group)
	if floor <= 0 {
		return true
	}
	return Speed(a.DistanceKM, a.DurationMin) >= floor
}

func better(cur *PersonalRecord, v float64, unit string, a Activity) *PersonalRecord {
	if cur != nil && v <= cur.Value {
		return cur
	}
	return &PersonalRecord{Value: v, Unit: unit, Activity: a}
}
