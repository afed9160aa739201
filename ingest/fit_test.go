package ingest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	activitystats "github.com/lucasjlepore/activity-stats"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"
)

func TestReadFITSessions(t *testing.T) {
	start := time.Date(2026, 2, 26, 7, 0, 0, 0, time.UTC)
	data := buildTestFIT(t, start,
		sessionFixture{sport: fit.SportRunning, distanceM: 5000, elapsedS: 1500, timerS: 1480, ascentM: 35},
		sessionFixture{sport: fit.SportSwimming, distanceM: 1500, elapsedS: 2400, timerS: 2100, ascentM: 0},
		sessionFixture{sport: fit.SportCycling, sub: fit.SubSportMountain, distanceM: 30000, elapsedS: 7200, timerS: 6000, ascentM: 800},
	)

	rows, err := ReadFITBytes(data)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	run := rows[0]
	require.Equal(t, "Run", run.Type)
	require.InDelta(t, 5.0, *run.Distance, 1e-6)
	require.InDelta(t, 1500.0, *run.ElapsedTime, 1e-6)
	require.InDelta(t, 35.0, *run.ElevationGain, 1e-6)
	require.Equal(t, start, run.Date.UTC())

	swim := rows[1]
	require.Equal(t, "Swim", swim.Type)
	require.InDelta(t, 1500.0, *swim.Distance, 1e-6)

	ds, err := activitystats.Process(rows, activitystats.Options{})
	require.NoError(t, err)
	groups := map[string]activitystats.Group{}
	for _, a := range ds.Activities {
		groups[a.Raw.Type] = a.Group
		if a.Raw.Type == "Swim" {
			require.InDelta(t, 1.5, a.DistanceKM, 1e-6)
		}
	}
	require.Equal(t, activitystats.GroupMountainBiking, groups["Ride"])
	require.Equal(t, activitystats.GroupSwimming, groups["Swim"])
}

func TestReadFITFile(t *testing.T) {
	data := buildTestFIT(t, time.Date(2026, 1, 5, 18, 0, 0, 0, time.UTC),
		sessionFixture{sport: fit.SportTraining, sub: fit.SubSportStrengthTraining, elapsedS: 3600, timerS: 2700},
	)
	path := filepath.Join(t.TempDir(), "gym.fit")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	rows, err := ReadFITFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Weight Training", rows[0].Type)
}

func TestReadFITRejectsGarbage(t *testing.T) {
	_, err := ReadFITBytes([]byte("not a fit file"))
	require.Error(t, err)
}

type sessionFixture struct {
	sport     fit.Sport
	sub       fit.SubSport
	distanceM float64
	elapsedS  float64
	timerS    float64
	ascentM   uint16
}

func buildTestFIT(t *testing.T, start time.Time, sessions ...sessionFixture) []byte {
	t.Helper()

	header := fit.NewHeader(fit.V20, true)
	file, err := fit.NewFile(fit.FileTypeActivity, header)
	if err != nil {
		t.Fatalf("new fit file: %v", err)
	}

	activity, err := file.Activity()
	if err != nil {
		t.Fatalf("activity accessor: %v", err)
	}

	at := start
	for _, sd := range sessions {
		s := fit.NewSessionMsg()
		s.StartTime = at
		s.Timestamp = at.Add(time.Duration(sd.elapsedS) * time.Second)
		s.Sport = sd.sport
		s.SubSport = sd.sub
		s.TotalDistance = uint32(sd.distanceM * 100)
		s.TotalElapsedTime = uint32(sd.elapsedS * 1000)
		s.TotalTimerTime = uint32(sd.timerS * 1000)
		s.TotalAscent = sd.ascentM
		activity.Sessions = append(activity.Sessions, s)
		at = s.Timestamp.Add(time.Hour)
	}

	var buf bytes.Buffer
	if err := fit.Encode(&buf, file, binary.LittleEndian); err != nil {
		t.Fatalf("encode fit: %v", err)
	}
	return buf.Bytes()
}
