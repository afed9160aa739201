package aggregate

import (
	"testing"
	"time"

	activitystats "github.com/lucasjlepore/activity-stats"
	"github.com/stretchr/testify/require"
)

func act(date time.Time, group activitystats.Group, km, minutes float64, elevation *float64) activitystats.Activity {
	return activitystats.Activity{
		Raw:         activitystats.RawActivity{Date: date, Name: string(group)},
		DistanceKM:  km,
		DurationMin: minutes,
		ElevationM:  elevation,
		Group:       group,
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func ptr(v float64) *float64 { return &v }

func TestParseInterval(t *testing.T) {
	for _, i := range Intervals {
		got, err := ParseInterval(i.String())
		require.NoError(t, err)
		require.Equal(t, i, got)
	}
	got, err := ParseInterval(" Monthly ")
	require.NoError(t, err)
	require.Equal(t, Monthly, got)

	_, err = ParseInterval("weekly")
	require.ErrorIs(t, err, ErrUnknownInterval)
}

func TestIntervalPeriodLabels(t *testing.T) {
	ts := day(2024, time.August, 17)
	cases := map[Interval]string{
		Monthly:   "2024-08",
		Quarterly: "2024Q3",
		Annual:    "2024",
		AllTime:   "All Time",
	}
	for i, want := range cases {
		label, _ := i.Period(ts)
		require.Equal(t, want, label, i.String())
	}
	require.Equal(t, 3, Monthly.RollingWindow())
	require.Equal(t, 2, Quarterly.RollingWindow())
}

func TestTrendsMonthly(t *testing.T) {
	acts := []activitystats.Activity{
		act(day(2024, time.March, 2), activitystats.GroupRunning, 10, 60, nil),
		act(day(2024, time.January, 5), activitystats.GroupRunning, 5, 30, ptr(50)),
		act(day(2024, time.January, 20), activitystats.GroupCycling, 20, 45, ptr(100)),
		act(day(2024, time.February, 1), activitystats.GroupWalking, 3, 40, nil),
	}
	points := Trends(acts, Monthly)
	require.Len(t, points, 3)

	require.Equal(t, "2024-01", points[0].Period)
	require.InDelta(t, 25.0, points[0].DistanceKM, 1e-9)
	require.Equal(t, 2, points[0].Count)
	require.InDelta(t, 1.3, points[0].DurationHours, 1e-9)
	require.InDelta(t, 150.0, points[0].ElevationM, 1e-9)
	require.Nil(t, points[0].RollingAvgKM)

	require.Equal(t, "2024-03", points[2].Period)
	require.InDelta(t, 38.0, points[2].CumulativeKM, 1e-9)
	require.NotNil(t, points[2].RollingAvgKM)
	require.InDelta(t, 38.0/3, *points[2].RollingAvgKM, 1e-9)
}

func TestTrendsQuarterlyAndAllTime(t *testing.T) {
	acts := []activitystats.Activity{
		act(day(2023, time.December, 30), activitystats.GroupRunning, 8, 50, nil),
		act(day(2024, time.January, 2), activitystats.GroupRunning, 12, 70, nil),
	}
	q := Trends(acts, Quarterly)
	require.Len(t, q, 2)
	require.Equal(t, "2023Q4", q[0].Period)
	require.Equal(t, "2024Q1", q[1].Period)
	require.NotNil(t, q[1].RollingAvgKM)
	require.InDelta(t, 10.0, *q[1].RollingAvgKM, 1e-9)

	all := Trends(acts, AllTime)
	require.Len(t, all, 1)
	require.Equal(t, AllTimeLabel, all[0].Period)
	require.InDelta(t, 20.0, all[0].CumulativeKM, 1e-9)
	require.Equal(t, 2, all[0].Count)
}

func TestGroupComposition(t *testing.T) {
	acts := []activitystats.Activity{
		act(day(2024, time.May, 1), activitystats.GroupRunning, 5, 30, nil),
		act(day(2024, time.May, 3), activitystats.GroupRunning, 5, 30, nil),
		act(day(2024, time.April, 3), activitystats.GroupSwimming, 1, 30, nil),
		act(day(2024, time.May, 9), activitystats.GroupCycling, 25, 60, nil),
	}
	got := GroupComposition(acts, Monthly)
	require.Equal(t, []GroupCount{
		{Period: "2024-04", Group: activitystats.GroupSwimming, Count: 1},
		{Period: "2024-05", Group: activitystats.GroupCycling, Count: 1},
		{Period: "2024-05", Group: activitystats.GroupRunning, Count: 2},
	}, got)
}

func TestFunMetrics(t *testing.T) {
	acts := []activitystats.Activity{
		act(day(2024, time.January, 1), activitystats.GroupRunning, 40075, 1440, ptr(8849)),
		act(day(2024, time.January, 15), activitystats.GroupWalking, 0, 1440, nil),
	}
	m := ComputeFunMetrics(acts)
	require.Equal(t, 2, m.Activities)
	require.InDelta(t, 1.0, m.TimesAroundWorld, 1e-9)
	require.InDelta(t, 1.0, m.TimesUpEverest, 1e-9)
	require.InDelta(t, 2.0, m.DaysActive, 1e-9)
	require.InDelta(t, 1.0, m.ActivitiesPerWeek, 1e-9)

	empty := ComputeFunMetrics(nil)
	require.Zero(t, empty.ActivitiesPerWeek)
}

func TestFilters(t *testing.T) {
	now := day(2024, time.June, 30)
	acts := []activitystats.Activity{
		act(day(2024, time.June, 25), activitystats.GroupRunning, 5, 30, nil),
		act(day(2024, time.May, 1), activitystats.GroupCycling, 30, 90, nil),
	}
	require.Len(t, FilterSince(acts, now, 30), 1)
	require.Len(t, FilterGroups(acts, activitystats.GroupCycling), 1)
	require.Len(t, FilterGroups(acts), 2)

	s := Summarize(acts)
	require.InDelta(t, 35.0, s.DistanceKM, 1e-9)
	require.InDelta(t, 2.0, s.Hours, 1e-9)
}
