package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	activitystats "github.com/lucasjlepore/activity-stats"
	"github.com/lucasjlepore/activity-stats/pipeline"
)

func main() {
	var (
		jsonOut = flag.Bool("json", false, "Emit the processed dataset as JSON")
		mapping = flag.String("mapping", "canonical", "Group mapping: canonical|baseline|hiking-split")
		showAll = flag.Bool("dropped", false, "List every skipped row in text output")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <activities.csv|activity.fit>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	m, err := pipeline.ResolveMapping(*mapping)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	filePath := flag.Arg(0)
	data, err := os.ReadFile(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
	ds, warnings, err := pipeline.Load(filePath, data, m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "processing failed: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(ds); err != nil {
			fmt.Fprintf(os.Stderr, "json encode failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(activitystats.BuildSummaryNotes(ds))
	if *showAll && len(ds.Dropped) > 0 {
		fmt.Println()
		fmt.Println("Skipped Rows")
		for _, d := range ds.Dropped {
			fmt.Printf("- Row %4d | %-30s | %s\n", d.Row, d.Name, d.Reason)
		}
	}
}
