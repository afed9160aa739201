// Package ingest reads activity exports into raw activity records.
package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	activitystats "github.com/lucasjlepore/activity-stats"
)

// Column names of the Strava-style bulk export.
const (
	ColID          = "Activity ID"
	ColDate        = "Activity Date"
	ColName        = "Activity Name"
	ColType        = "Activity Type"
	ColDescription = "Activity Description"
	ColElapsed     = "Elapsed Time"
	ColMoving      = "Moving Time"
	ColDistance    = "Distance"
	ColElevation   = "Elevation Gain"
	ColSpeed       = "Average Speed"
	ColCompetition = "Competition"
)

var dateLayouts = []string{
	"Jan 2, 2006, 3:04:05 PM",
	"Jan 2, 2006 3:04:05 PM",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// CSVResult holds the parsed rows plus non-fatal notes.
type CSVResult struct {
	Rows     []activitystats.RawActivity
	Warnings []string
}

// ReadCSVFile opens path and parses it with ReadCSV.
func ReadCSVFile(path string) (*CSVResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV parses an activity export. A missing required column fails the
// whole read with an error naming the columns; unparseable cell values become
// missing and are reported as warnings.
func ReadCSV(r io.Reader) (*CSVResult, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &activitystats.SchemaError{Missing: []string{ColDate, ColType, ColDistance, ColElapsed}}
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	cols := indexColumns(header)
	if err := checkRequired(cols); err != nil {
		return nil, err
	}

	out := &CSVResult{}
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line+1, err)
		}
		line++
		if blankRecord(rec) {
			continue
		}
		row := rowReader{rec: rec, cols: cols, row: line}
		raw := activitystats.RawActivity{
			Row:         line,
			ID:          row.text(ColID),
			Name:        row.text(ColName),
			Description: row.text(ColDescription),
			Type:        row.text(ColType),
			Competition: parseBool(row.text(ColCompetition)),
		}
		raw.Date = row.date(ColDate)
		raw.Distance = row.number(ColDistance)
		raw.ElapsedTime = row.number(ColElapsed)
		raw.MovingTime = row.number(ColMoving)
		raw.ElevationGain = row.number(ColElevation)
		raw.AverageSpeed = row.number(ColSpeed)
		out.Rows = append(out.Rows, raw)
		out.Warnings = append(out.Warnings, row.warnings...)
	}
	return out, nil
}

// indexColumns maps header names to positions. The bulk export repeats some
// names; the first occurrence wins.
func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := cols[h]; !seen {
			cols[h] = i
		}
	}
	return cols
}

func checkRequired(cols map[string]int) error {
	var missing []string
	for _, c := range []string{ColDate, ColType, ColDistance} {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	_, hasElapsed := cols[ColElapsed]
	_, hasMoving := cols[ColMoving]
	if !hasElapsed && !hasMoving {
		missing = append(missing, ColElapsed+" or "+ColMoving)
	}
	if len(missing) > 0 {
		return &activitystats.SchemaError{Missing: missing}
	}
	return nil
}

func blankRecord(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

type rowReader struct {
	rec      []string
	cols     map[string]int
	row      int
	warnings []string
}

func (r *rowReader) text(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r *rowReader) number(col string) *float64 {
	s := r.text(col)
	if s == "" {
		return nil
	}
	v, err := ParseNumber(s)
	if err != nil {
		r.warn(col, err)
		return nil
	}
	return &v
}

func (r *rowReader) date(col string) time.Time {
	s := r.text(col)
	if s == "" {
		return time.Time{}
	}
	t, err := ParseDate(s)
	if err != nil {
		r.warn(col, err)
		return time.Time{}
	}
	return t
}

func (r *rowReader) warn(col string, err error) {
	fe := &activitystats.FieldError{Row: r.row, Field: col, Err: err}
	r.warnings = append(r.warnings, fe.Error())
}

// ParseNumber parses a numeric cell, ignoring thousands separators. NaN and
// infinities are rejected.
func ParseNumber(s string) (float64, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", activitystats.ErrUnparseableValue, s)
	}
	return v, nil
}

// ParseDate accepts the export's "Jan 2, 2006, 3:04:05 PM" form and common
// ISO layouts. Zone-less values are read as naive UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q", activitystats.ErrUnparseableValue, s)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}
