package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/psyhunter/internal/events"
	"github.com/example/psyhunter/internal/scoring"
)

func TestReportCommandFromScanSummary(t *testing.T) {
	dir := t.TempDir()
	postsPath := writeFile(t, dir, "target_data.json", stressedPosts)
	summaryPath := filepath.Join(dir, "summary.json")

	if _, _, err := execute(t, newScanCmd(isolatedLoader(t)),
		"--profile", postsPath, "--format", "json", "--policies", "console,dashboard", "--summary-file", summaryPath); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	statsPath := filepath.Join(dir, "stats.json")
	stdout, _, err := execute(t, newReportCmd(), "--input", summaryPath, "--summary-file", statsPath)
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	evts := decodeEvents(t, firstLine(stdout))
	if len(evts) != 1 || evts[0].Type != events.TypeReport {
		t.Fatalf("expected one report event, got:\n%s", stdout)
	}
	fields := evts[0].Fields
	if fields["results"] != float64(2) || fields["maxScore"] != float64(85) || fields["maxTier"] != string(scoring.TierHigh) {
		t.Fatalf("unexpected stats: %+v", fields)
	}

	data, err := os.ReadFile(statsPath)
	if err != nil {
		t.Fatalf("stats file not written: %v", err)
	}
	var stats map[string]interface{}
	if err := json.Unmarshal(data, &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats["input"] != summaryPath {
		t.Fatalf("expected input path in stats, got %v", stats["input"])
	}
}

func TestDecodeResults(t *testing.T) {
	single := `{"target": "neo", "policy": "dashboard", "score": 60, "tier": "MODERATE"}`

	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"array", "[" + single + "," + single + "]", 2, false},
		{"summary document", `{"runId": "x", "results": [` + single + `]}`, 1, false},
		{"single result", single, 1, false},
		{"empty", "  ", 0, true},
		{"no results", `{"results": []}`, 0, true},
		{"not json", "{", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeResults([]byte(tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d results, got %d", tt.want, len(got))
			}
		})
	}

	if _, err := decodeResults([]byte("[]")); !errors.Is(err, errNoResults) {
		t.Fatalf("expected errNoResults, got %v", err)
	}
}

func TestSummarizeResults(t *testing.T) {
	stats := summarizeResults([]scoring.ScanResult{
		{Target: "b", Score: 40, Tier: scoring.TierLow, Categories: []scoring.CategoryHit{{Name: "X", Hits: 1}}},
		{Target: "a", Score: 75, Tier: scoring.TierHigh, Categories: []scoring.CategoryHit{{Name: "X", Hits: 2}}},
	})

	if stats["maxScore"] != 75 || stats["maxTier"] != string(scoring.TierHigh) {
		t.Fatalf("unexpected max: %+v", stats)
	}
	if got := stats["categories"].(map[string]int)["X"]; got != 3 {
		t.Fatalf("expected 3 category hits, got %d", got)
	}
	if got := stats["targets"].([]string); !equalStrings(got, []string{"a", "b"}) {
		t.Fatalf("targets should be sorted, got %v", got)
	}
}

func TestReportCommandRequiresInput(t *testing.T) {
	if _, _, err := execute(t, newReportCmd()); err == nil {
		t.Fatalf("expected error without --input")
	}
}

func firstLine(s string) string {
	for i, r := range s {
		if r == '\n' {
			return s[:i]
		}
	}
	return s
}
