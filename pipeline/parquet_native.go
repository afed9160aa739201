//go:build !js

package pipeline

import (
	"math"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

type activityParquetRow struct {
	ActivityDate string  `parquet:"name=activity_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	ActivityID   string  `parquet:"name=activity_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Name         string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Type         string  `parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Group        string  `parquet:"name=group, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	DistanceKM   float64 `parquet:"name=distance_km, type=DOUBLE"`
	DurationMin  float64 `parquet:"name=duration_min, type=DOUBLE"`
	ElevationM   float64 `parquet:"name=elevation_m, type=DOUBLE"`
	SpeedKMH     float64 `parquet:"name=speed_kmh, type=DOUBLE"`
	IsRace       bool    `parquet:"name=is_race, type=BOOLEAN"`
	Competition  bool    `parquet:"name=competition, type=BOOLEAN"`
}

func marshalActivitiesParquet(rows []ActivityRow) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(activityParquetRow), 4)
	if err != nil {
		return nil, err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, r := range rows {
		row := activityParquetRow{
			ActivityDate: r.Date,
			ActivityID:   r.ActivityID,
			Name:         r.Name,
			Type:         r.Type,
			Group:        r.Group,
			DistanceKM:   r.DistanceKM,
			DurationMin:  r.DurationMin,
			ElevationM:   valueOrNaN(r.ElevationM),
			SpeedKMH:     valueOrNaN(r.SpeedKMH),
			IsRace:       r.IsRace,
			Competition:  r.Competition,
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, err
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, err
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
