package ingest

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	activitystats "github.com/lucasjlepore/activity-stats"
	"github.com/tormoder/fit"
)

// ReadFITFile decodes an activity FIT file from disk.
func ReadFITFile(path string) ([]activitystats.RawActivity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FIT file: %w", err)
	}
	defer f.Close()
	return ReadFIT(f)
}

// ReadFITBytes decodes an activity FIT file held in memory.
func ReadFITBytes(data []byte) ([]activitystats.RawActivity, error) {
	return ReadFIT(bytes.NewReader(data))
}

// ReadFIT turns each session of an activity FIT file into one raw record in
// the units of the CSV export, so the same normalizer applies.
func ReadFIT(r io.Reader) ([]activitystats.RawActivity, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}
	if len(activity.Sessions) == 0 {
		return nil, fmt.Errorf("activity file has no session message")
	}

	out := make([]activitystats.RawActivity, 0, len(activity.Sessions))
	for i, session := range activity.Sessions {
		activityType, description := activityLabel(session.Sport, session.SubSport)
		raw := activitystats.RawActivity{
			Row:         i + 1,
			Date:        validTimeOrZero(session.StartTime),
			Name:        fmt.Sprintf("%s session %d", activityType, i+1),
			Description: description,
			Type:        activityType,
		}
		if raw.Date.IsZero() {
			raw.Date = validTimeOrZero(session.Timestamp)
		}

		if meters := safePositive(session.GetTotalDistanceScaled()); meters > 0 {
			d := meters
			if !activitystats.ReportsMeters(activityType) {
				d = meters / 1000
			}
			raw.Distance = &d
		} else if !math.IsNaN(session.GetTotalDistanceScaled()) {
			zero := 0.0
			raw.Distance = &zero
		}
		raw.ElapsedTime = optionalPositive(session.GetTotalElapsedTimeScaled())
		raw.MovingTime = optionalPositive(session.GetTotalMovingTimeScaled())
		if raw.MovingTime == nil {
			raw.MovingTime = optionalPositive(session.GetTotalTimerTimeScaled())
		}
		if session.TotalAscent != math.MaxUint16 {
			ascent := float64(session.TotalAscent)
			raw.ElevationGain = &ascent
		}
		out = append(out, raw)
	}
	return out, nil
}

// activityLabel maps FIT sport codes onto export activity-type labels. The
// description carries cycling sub-sport hints for the subtype classifier.
func activityLabel(sport fit.Sport, sub fit.SubSport) (string, string) {
	switch sport {
	case fit.SportRunning:
		if sub == fit.SubSportVirtualActivity {
			return "Virtual Run", ""
		}
		return "Run", ""
	case fit.SportCycling:
		switch sub {
		case fit.SubSportMountain:
			return "Ride", "mtb"
		case fit.SubSportRoad:
			return "Ride", "road bike"
		}
		return "Ride", ""
	case fit.SportSwimming:
		if sub == fit.SubSportOpenWater {
			return "Open Water Swim", ""
		}
		return "Swim", ""
	case fit.SportWalking:
		return "Walk", ""
	case fit.SportHiking:
		return "Hike", ""
	case fit.SportRowing:
		return "Rowing", ""
	case fit.SportTraining:
		switch sub {
		case fit.SubSportStrengthTraining:
			return "Weight Training", ""
		case fit.SubSportYoga:
			return "Yoga", ""
		}
		return "Workout", ""
	case fit.SportFitnessEquipment:
		if sub == fit.SubSportIndoorRowing {
			return "Rowing", ""
		}
		return "Workout", ""
	case fit.SportAlpineSkiing:
		return "Alpine Ski", ""
	case fit.SportCrossCountrySkiing:
		return "Nordic Ski", ""
	case fit.SportSnowboarding:
		return "Snowboard", ""
	case fit.SportSoccer:
		return "Soccer", ""
	case fit.SportBasketball:
		return "Basketball", ""
	}
	return fmt.Sprint(sport), ""
}

func validTimeOrZero(t time.Time) time.Time {
	if t.IsZero() || fit.IsBaseTime(t) {
		return time.Time{}
	}
	return t
}

func safePositive(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0
	}
	return v
}

func optionalPositive(v float64) *float64 {
	if v = safePositive(v); v == 0 {
		return nil
	}
	return &v
}
