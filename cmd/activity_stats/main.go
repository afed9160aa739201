package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasjlepore/activity-stats/pipeline"
)

func main() {
	var (
		input      = flag.String("input", "", "Path to an activities CSV export or .fit file")
		outDir     = flag.String("out", "", "Output directory")
		format     = flag.String("format", "parquet", "Activities table format: parquet|csv")
		mapping    = flag.String("mapping", "canonical", "Group mapping: canonical|baseline|hiking-split")
		overwrite  = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
		copySource = flag.Bool("copy-source", true, "Copy the input file into the output directory")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s --input activities.csv --out outdir [--format parquet|csv] [--mapping canonical]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*input) == "" || strings.TrimSpace(*outDir) == "" {
		flag.Usage()
		os.Exit(2)
	}

	result, err := pipeline.Run(pipeline.Options{
		SourcePath: *input,
		OutDir:     *outDir,
		Format:     *format,
		Mapping:    *mapping,
		Overwrite:  *overwrite,
		CopySource: *copySource,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "activity_stats failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("activity_stats complete\n")
	fmt.Printf("Output dir:          %s\n", result.OutputDir)
	fmt.Printf("manifest.json:       %s\n", result.ManifestPath)
	fmt.Printf("activities:          %s\n", result.ActivitiesPath)
	fmt.Printf("races:               %s\n", result.RacesPath)
	fmt.Printf("best times:          %s\n", result.BestTimesPath)
	fmt.Printf("personal records:    %s\n", result.PersonalRecordsPath)
	fmt.Printf("trends:              %s\n", result.TrendsPath)
	fmt.Printf("dropped rows:        %s\n", result.DroppedRowsPath)
	fmt.Printf("summary:             %s\n", result.SummaryPath)
	if result.SourceCopyPath != "" {
		fmt.Printf("source copy:         %s\n", result.SourceCopyPath)
	}
	for _, w := range result.Warnings {
		fmt.Printf("warning:             %s\n", w)
	}
}
