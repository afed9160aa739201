package activitystats

import "math"

// MaxPlausibleSpeedKMH is the upper bound of a believable average speed.
const MaxPlausibleSpeedKMH = 100.0

// minPlausibleSpeed is the slowest believable average speed per group, used to
// discard recordings left running while stationary.
var minPlausibleSpeed = map[Group]float64{
	GroupCycling:        5.0,
	GroupMountainBiking: 5.0,
	GroupRoadCycling:    5.0,
	GroupRunning:        3.0,
	GroupHiking:         1.0,
	GroupWalking:        1.0,
	GroupSwimming:       0.5,
	GroupStrength:       0.0,
	GroupWinterSports:   3.0,
	GroupTeamSports:     2.0,
	GroupOther:          0.0,
}

// MinPlausibleSpeed returns the minimum believable speed for a group; groups
// without an entry have no minimum.
func MinPlausibleSpeed(g Group) float64 {
	return minPlausibleSpeed[g]
}

// Speed returns km / hours without any filtering. The result may be NaN or
// infinite.
func Speed(distanceKM, durationMin float64) float64 {
	return distanceKM / (durationMin / 60)
}

// SanitizedSpeed derives the average speed in km/h and returns nil when it
// falls outside (0, MaxPlausibleSpeedKMH].
func SanitizedSpeed(distanceKM, durationMin float64) *float64 {
	v := Speed(distanceKM, durationMin)
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 || v > MaxPlausibleSpeedKMH {
		return nil
	}
	return floatPtr(v)
}
