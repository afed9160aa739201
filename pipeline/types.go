package pipeline

import (
	activitystats "github.com/lucasjlepore/activity-stats"
	"github.com/lucasjlepore/activity-stats/aggregate"
)

// FormatVersion identifies the artifact layout written by Run.
const FormatVersion = "activity-stats/v1"

// Artifact file names.
const (
	ManifestFile        = "manifest.json"
	RacesFile           = "races.json"
	BestTimesFile       = "best_times.json"
	PersonalRecordsFile = "personal_records.json"
	TrendsFile          = "trends.json"
	DroppedRowsFile     = "dropped_rows.json"
	SummaryFile         = "summary.md"
)

// Options configures the activity_stats pipeline.
type Options struct {
	SourcePath string
	OutDir     string
	Format     string // parquet|csv
	Mapping    string // canonical|baseline|hiking-split
	Overwrite  bool
	CopySource bool
}

// BytesOptions configures the in-memory pipeline.
type BytesOptions struct {
	SourceFileName string
	Data           []byte
	Format         string // parquet|csv
	Mapping        string
	CopySource     bool
}

// Result returns generated output paths.
type Result struct {
	OutputDir           string   `json:"output_dir"`
	ManifestPath        string   `json:"manifest_path"`
	ActivitiesPath      string   `json:"activities_path"`
	RacesPath           string   `json:"races_path"`
	BestTimesPath       string   `json:"best_times_path"`
	PersonalRecordsPath string   `json:"personal_records_path"`
	TrendsPath          string   `json:"trends_path"`
	DroppedRowsPath     string   `json:"dropped_rows_path"`
	SummaryPath         string   `json:"summary_path"`
	SourceCopyPath      string   `json:"source_copy_path,omitempty"`
	Warnings            []string `json:"warnings,omitempty"`
}

// BytesResult holds every artifact keyed by file name.
type BytesResult struct {
	Files    map[string][]byte
	Dataset  *activitystats.Dataset
	Warnings []string
}

// Manifest describes one pipeline run.
type Manifest struct {
	FormatVersion   string   `json:"format_version"`
	SourceFileName  string   `json:"source_file_name"`
	SourceKind      string   `json:"source_kind"`
	SourceSHA256    string   `json:"source_sha256"`
	SourceSizeBytes int64    `json:"source_size_bytes"`
	Mapping         string   `json:"mapping"`
	SourceRows      int      `json:"source_rows"`
	ActivityCount   int      `json:"activity_count"`
	DroppedCount    int      `json:"dropped_count"`
	RaceCount       int      `json:"race_count"`
	Files           []string `json:"files"`
	Warnings        []string `json:"warnings,omitempty"`
}

// TrendsDocument carries every interval's trends and group composition.
type TrendsDocument struct {
	Summary     aggregate.FunMetrics              `json:"summary"`
	Trends      map[string][]aggregate.TrendPoint `json:"trends"`
	Composition map[string][]aggregate.GroupCount `json:"composition"`
}

// DroppedRowsDocument lists rows excluded from the dataset.
type DroppedRowsDocument struct {
	Summary string                     `json:"summary,omitempty"`
	Rows    []activitystats.DroppedRow `json:"rows"`
}

// ActivityRow is one row of the tabular activities artifact.
type ActivityRow struct {
	Date        string
	ActivityID  string
	Name        string
	Type        string
	Group       string
	DistanceKM  float64
	DurationMin float64
	ElevationM  *float64
	SpeedKMH    *float64
	IsRace      bool
	Competition bool
}

var activityColumns = []string{
	"activity_date", "activity_id", "name", "type", "group",
	"distance_km", "duration_min", "elevation_m", "speed_kmh", "is_race", "competition",
}
