// CLI tool to generate a projection offline and print it as a table.
// Reads a plan.Input JSON document from -input (or stdin), the same shape as
// the POST /api/plans body. No database required.
// Usage: go run ./cmd/genplan -input example.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"lg/weight-plan-go-api/plan"
)

func main() {
	inputPath := flag.String("input", "", "path to a plan input JSON file (default: stdin)")
	legacy := flag.Bool("legacy-adaptation", false, "use the legacy adaptation constants (linear growth, 0.75 decay)")
	flag.Parse()

	var raw []byte
	var err error
	if *inputPath == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(*inputPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	var in plan.Input
	if err := json.Unmarshal(raw, &in); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing input JSON: %v\n", err)
		os.Exit(1)
	}

	profile := plan.DefaultAdaptation
	if *legacy {
		profile = plan.LegacyAdaptation
	}

	weeks, err := plan.Engine{Profile: profile}.Generate(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating plan: %v\n", err)
		os.Exit(1)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WEEK\tPHASE\tSTART\tCALORIES\tCHANGE\tTDEE\tBALANCE\tΔKG\tWEIGHT")
	for _, rec := range weeks {
		change := "-"
		if rec.CalorieChangeFromPreviousWeek != nil {
			change = fmt.Sprintf("%+d", *rec.CalorieChangeFromPreviousWeek)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\t%d\t%d\t%+.3f\t%.2f\n",
			rec.WeekNumber, rec.Phase, rec.StartDate.Format("2006-01-02"),
			rec.TargetCalories, change, rec.EstimatedTDEE, rec.EstimatedWeeklyBalance,
			rec.EstimatedWeeklyWeightChangeKG, rec.EstimatedEndWeightKG)
	}
	w.Flush()

	last := weeks[len(weeks)-1]
	fmt.Printf("\n%d weeks, %s through %s, projected change %+.2f kg\n",
		len(weeks), weeks[0].StartDate.Format("2006-01-02"),
		last.EndDate.Format("2006-01-02"), last.EstimatedCumulativeWeightChangeKG)
}
