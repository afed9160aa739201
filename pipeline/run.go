package pipeline

import (
	"bytes"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	activitystats "github.com/lucasjlepore/activity-stats"
	"github.com/lucasjlepore/activity-stats/aggregate"
)

// Run executes the full activity_stats pipeline and writes all artifacts.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.SourcePath) == "" {
		return nil, fmt.Errorf("source path is required")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}

	data, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	built, err := RunBytes(BytesOptions{
		SourceFileName: filepath.Base(opts.SourcePath),
		Data:           data,
		Format:         opts.Format,
		Mapping:        opts.Mapping,
		CopySource:     opts.CopySource,
	})
	if err != nil {
		return nil, err
	}

	if err := ensureOutputDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(built.Files))
	for name := range built.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(opts.OutDir, name), built.Files[name], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
	}

	res := &Result{
		OutputDir:           opts.OutDir,
		ManifestPath:        filepath.Join(opts.OutDir, ManifestFile),
		ActivitiesPath:      filepath.Join(opts.OutDir, activitiesFileName(normalizeFormat(opts.Format))),
		RacesPath:           filepath.Join(opts.OutDir, RacesFile),
		BestTimesPath:       filepath.Join(opts.OutDir, BestTimesFile),
		PersonalRecordsPath: filepath.Join(opts.OutDir, PersonalRecordsFile),
		TrendsPath:          filepath.Join(opts.OutDir, TrendsFile),
		DroppedRowsPath:     filepath.Join(opts.OutDir, DroppedRowsFile),
		SummaryPath:         filepath.Join(opts.OutDir, SummaryFile),
		Warnings:            built.Warnings,
	}
	if opts.CopySource {
		res.SourceCopyPath = filepath.Join(opts.OutDir, sourceCopyName(filepath.Base(opts.SourcePath)))
	}
	return res, nil
}

// RunBytes executes the pipeline in memory and returns every artifact keyed
// by file name.
func RunBytes(opts BytesOptions) (*BytesResult, error) {
	if len(opts.Data) == 0 {
		return nil, fmt.Errorf("source data is required")
	}
	format := normalizeFormat(opts.Format)
	if format != "parquet" && format != "csv" {
		return nil, fmt.Errorf("unsupported format %q (expected parquet|csv)", opts.Format)
	}
	mapping, err := ResolveMapping(opts.Mapping)
	if err != nil {
		return nil, err
	}
	name := opts.SourceFileName
	if strings.TrimSpace(name) == "" {
		name = "activities.csv"
	}

	ds, warnings, err := Load(name, opts.Data, mapping)
	if err != nil {
		return nil, err
	}
	if s := ds.SkippedSummary(); s != "" {
		warnings = append(warnings, s)
	}

	files := make(map[string][]byte, 10)
	rows := activityRows(ds.Activities)
	activitiesName := activitiesFileName(format)
	switch format {
	case "csv":
		files[activitiesName], err = marshalActivitiesCSV(rows)
	case "parquet":
		files[activitiesName], err = marshalActivitiesParquet(rows)
	}
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", activitiesName, err)
	}

	docs := map[string]any{
		RacesFile:           ds.Races,
		BestTimesFile:       activitystats.OrderedBestTimes(ds.BestTimes),
		PersonalRecordsFile: ds.Records,
		TrendsFile:          buildTrends(ds.Activities),
		DroppedRowsFile:     DroppedRowsDocument{Summary: ds.SkippedSummary(), Rows: ds.Dropped},
	}
	for fileName, v := range docs {
		data, err := marshalJSON(v)
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", fileName, err)
		}
		files[fileName] = data
	}
	files[SummaryFile] = []byte(buildSummaryMarkdown(ds))
	if opts.CopySource {
		files[sourceCopyName(name)] = append([]byte(nil), opts.Data...)
	}

	sum := sha256.Sum256(opts.Data)
	manifest := Manifest{
		FormatVersion:   FormatVersion,
		SourceFileName:  name,
		SourceKind:      DetectKind(name, opts.Data),
		SourceSHA256:    hex.EncodeToString(sum[:]),
		SourceSizeBytes: int64(len(opts.Data)),
		Mapping:         ds.Mapping,
		SourceRows:      ds.SourceRows,
		ActivityCount:   len(ds.Activities),
		DroppedCount:    len(ds.Dropped),
		RaceCount:       len(ds.Races),
		Warnings:        warnings,
	}
	for fileName := range files {
		manifest.Files = append(manifest.Files, fileName)
	}
	manifest.Files = append(manifest.Files, ManifestFile)
	sort.Strings(manifest.Files)
	files[ManifestFile], err = marshalJSON(manifest)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", ManifestFile, err)
	}

	return &BytesResult{Files: files, Dataset: ds, Warnings: warnings}, nil
}

func buildTrends(activities []activitystats.Activity) TrendsDocument {
	doc := TrendsDocument{
		Summary:     aggregate.ComputeFunMetrics(activities),
		Trends:      make(map[string][]aggregate.TrendPoint, len(aggregate.Intervals)),
		Composition: make(map[string][]aggregate.GroupCount, len(aggregate.Intervals)),
	}
	for _, interval := range aggregate.Intervals {
		doc.Trends[interval.String()] = aggregate.Trends(activities, interval)
		doc.Composition[interval.String()] = aggregate.GroupComposition(activities, interval)
	}
	return doc
}

func buildSummaryMarkdown(ds *activitystats.Dataset) string {
	var b strings.Builder
	b.WriteString("# Activity Summary\n\n")
	b.WriteString(activitystats.BuildSummaryNotes(ds))
	b.WriteString("\n")

	m := aggregate.ComputeFunMetrics(ds.Activities)
	b.WriteString("\nFun Metrics\n")
	fmt.Fprintf(&b, "- %.2fx around the Earth\n", m.TimesAroundWorld)
	fmt.Fprintf(&b, "- %.2fx up Everest\n", m.TimesUpEverest)
	fmt.Fprintf(&b, "- %.1f days of activity\n", m.DaysActive)
	fmt.Fprintf(&b, "- %.1f activities per week\n", m.ActivitiesPerWeek)
	return b.String()
}

func activityRows(activities []activitystats.Activity) []ActivityRow {
	rows := make([]ActivityRow, 0, len(activities))
	for _, a := range activities {
		date := ""
		if !a.Date().IsZero() {
			date = a.Date().Format(time.RFC3339)
		}
		rows = append(rows, ActivityRow{
			Date:        date,
			ActivityID:  a.Raw.ID,
			Name:        a.Raw.Name,
			Type:        a.Raw.Type,
			Group:       string(a.Group),
			DistanceKM:  a.DistanceKM,
			DurationMin: a.DurationMin,
			ElevationM:  a.ElevationM,
			SpeedKMH:    a.SpeedKMH,
			IsRace:      a.IsRace,
			Competition: a.Raw.Competition,
		})
	}
	return rows
}

func normalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return "parquet"
	}
	return f
}

func activitiesFileName(format string) string {
	if format == "csv" {
		return "activities.csv"
	}
	return "activities.parquet"
}

func sourceCopyName(name string) string {
	return "source" + strings.ToLower(filepath.Ext(name))
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}

func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func marshalActivitiesCSV(rows []ActivityRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(activityColumns); err != nil {
		return nil, err
	}
	for _, r := range rows {
		record := []string{
			r.Date,
			r.ActivityID,
			r.Name,
			r.Type,
			r.Group,
			formatFloat(r.DistanceKM),
			formatFloat(r.DurationMin),
			formatFloatPtr(r.ElevationM),
			formatFloatPtr(r.SpeedKMH),
			strconv.FormatBool(r.IsRace),
			strconv.FormatBool(r.Competition),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
