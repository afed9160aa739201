package activitystats

import (
	"errors"
	"fmt"
	"sort"
)

// Options configures Process.
type Options struct {
	// Mapping is the group table; the zero value selects CanonicalMapping.
	Mapping GroupMapping
}

// Dataset is the complete output of one pipeline invocation.
type Dataset struct {
	Mapping    string                  `json:"mapping"`
	SourceRows int                     `json:"source_rows"`
	Activities []Activity              `json:"activities"`
	Dropped    []DroppedRow            `json:"dropped,omitempty"`
	Races      []RaceRecord            `json:"races"`
	BestTimes  map[string]BestRaceTime `json:"best_times"`
	Records    PersonalRecords         `json:"personal_records"`
}

// Process normalizes, classifies and derives races, best times and personal
// records. Rows missing a required value are dropped and listed in
// Dataset.Dropped. It fails with ErrNoUsableTime when rows exist but none has
// a usable time field.
func Process(raws []RawActivity, opts Options) (*Dataset, error) {
	mapping := opts.Mapping
	if mapping.groups == nil {
		mapping = CanonicalMapping
	}
	n := NewNormalizer(mapping)

	ds := &Dataset{
		Mapping:    mapping.Revision(),
		SourceRows: len(raws),
		Activities: make([]Activity, 0, len(raws)),
	}
	timed := 0
	for _, raw := range raws {
		if _, ok := DurationSeconds(raw.Type, raw.ElapsedTime, raw.MovingTime); ok {
			timed++
		}
		a, err := n.Normalize(raw)
		if err != nil {
			if !errors.Is(err, ErrMissingRequiredField) {
				return nil, fmt.Errorf("normalize row %d: %w", raw.Row, err)
			}
			ds.Dropped = append(ds.Dropped, DroppedRow{Row: raw.Row, Name: raw.Name, Reason: err.Error()})
			continue
		}
		ds.Activities = append(ds.Activities, a)
	}
	if len(raws) > 0 && timed == 0 {
		return nil, ErrNoUsableTime
	}

	sort.SliceStable(ds.Activities, func(i, j int) bool {
		return ds.Activities[i].Date().After(ds.Activities[j].Date())
	})
	ds.Races = Races(ds.Activities)
	ds.BestTimes = BestRaceTimes(ds.Races)
	ds.Records = ComputePersonalRecords(ds.Activities)
	return ds, nil
}

// SkippedSummary is the user-facing note about dropped rows, or "" if none.
func (d *Dataset) SkippedSummary() string {
	switch len(d.Dropped) {
	case 0:
		return ""
	case 1:
		return "1 row skipped due to missing data"
	}
	return fmt.Sprintf("%d rows skipped due to missing data", len(d.Dropped))
}
