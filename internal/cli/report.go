package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/example/psyhunter/internal/events"
	"github.com/example/psyhunter/internal/scoring"
	"github.com/spf13/cobra"
)

var errNoResults = errors.New("artifact contains no scan results")

func newReportCmd() *cobra.Command {
	var inputPath string
	var summaryPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate aggregate stats from a saved scan artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			if inputPath == "" {
				return errors.New("--input is required")
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return err
			}

			results, err := decodeResults(data)
			if err != nil {
				return fmt.Errorf("%s: %w", inputPath, err)
			}

			stats := summarizeResults(results)
			stats["input"] = inputPath
			stats["generatedAt"] = time.Now().UTC().Format(time.RFC3339)

			emitter := events.NewEmitter(cmd.OutOrStdout())
			if err := emitter.Emit(events.Event{Type: events.TypeReport, Message: "Report generated", Fields: stats}); err != nil {
				return err
			}

			if summaryPath != "" {
				if err := writeJSONFile(summaryPath, stats); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Summary written to %s\n", summaryPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "Path to a JSON scan artifact (summary file or --format json output)")
	cmd.Flags().StringVar(&summaryPath, "summary-file", "", "Optional path to store summary JSON")
	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}

	return cmd
}

// decodeResults accepts a summary document, a JSON array of results, or a
// single result object.
func decodeResults(data []byte) ([]scoring.ScanResult, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errNoResults
	}

	var results []scoring.ScanResult
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return nil, err
		}
	} else {
		var doc struct {
			Results []scoring.ScanResult `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, err
		}
		results = doc.Results
		if results == nil {
			var single scoring.ScanResult
			if err := json.Unmarshal(trimmed, &single); err != nil {
				return nil, err
			}
			if single.Policy != "" {
				results = []scoring.ScanResult{single}
			}
		}
	}

	if len(results) == 0 {
		return nil, errNoResults
	}
	return results, nil
}

func summarizeResults(results []scoring.ScanResult) map[string]interface{} {
	tiers := map[string]int{}
	categories := map[string]int{}
	targets := map[string]struct{}{}
	maxScore := 0

	for _, r := range results {
		tiers[string(r.Tier)]++
		targets[r.Target] = struct{}{}
		if r.Score > maxScore {
			maxScore = r.Score
		}
		for _, c := range r.Categories {
			categories[c.Name] += c.Hits
		}
	}

	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	return map[string]interface{}{
		"results":    len(results),
		"targets":    names,
		"maxScore":   maxScore,
		"maxTier":    string(scoring.TierFor(maxScore)),
		"tiers":      tiers,
		"categories": categories,
	}
}
