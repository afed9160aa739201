package pipeline

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	activitystats "github.com/lucasjlepore/activity-stats"
	"github.com/lucasjlepore/activity-stats/ingest"
)

// Source kinds.
const (
	KindCSV = "csv"
	KindFIT = "fit"
)

// DetectKind picks the reader for a source by extension, falling back to the
// FIT header signature.
func DetectKind(fileName string, data []byte) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".fit":
		return KindFIT
	case ".csv":
		return KindCSV
	}
	if len(data) >= 12 && bytes.Equal(data[8:12], []byte(".FIT")) {
		return KindFIT
	}
	return KindCSV
}

// ResolveMapping looks up a group mapping revision by name.
func ResolveMapping(name string) (activitystats.GroupMapping, error) {
	m, ok := activitystats.MappingByName(name)
	if !ok {
		return activitystats.GroupMapping{}, fmt.Errorf("unsupported mapping %q (expected canonical|baseline|hiking-split)", name)
	}
	return m, nil
}

// Load parses a source export and processes it into a dataset. Warnings list
// cell values that could not be parsed.
func Load(fileName string, data []byte, mapping activitystats.GroupMapping) (*activitystats.Dataset, []string, error) {
	var (
		rows     []activitystats.RawActivity
		warnings []string
	)
	switch DetectKind(fileName, data) {
	case KindFIT:
		fitRows, err := ingest.ReadFITBytes(data)
		if err != nil {
			return nil, nil, err
		}
		rows = fitRows
	default:
		res, err := ingest.ReadCSV(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		rows, warnings = res.Rows, res.Warnings
	}

	ds, err := activitystats.Process(rows, activitystats.Options{Mapping: mapping})
	if err != nil {
		return nil, warnings, fmt.Errorf("process activities: %w", err)
	}
	return ds, warnings, nil
}
