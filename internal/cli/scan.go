package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/psyhunter/internal/config"
	"github.com/example/psyhunter/internal/events"
	"github.com/example/psyhunter/internal/profile"
	"github.com/example/psyhunter/internal/report"
	"github.com/example/psyhunter/internal/scoring"
	"github.com/example/psyhunter/internal/sentiment"
	"github.com/spf13/cobra"
)

func newScanCmd(loader *config.Loader) *cobra.Command {
	flags := &runtimeFlagSet{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Score a post-list profile and print the vulnerability report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, loader, flags)
			if err != nil {
				return err
			}

			return runPipeline(cmd, cfg, pipeline{
				policies: cfg.Policies,
				source:   cfg.ProfilePath,
				load:     profile.LoadPosts,
			})
		},
	}

	bindRuntimeFlags(cmd, flags)
	bindPolicyFlag(cmd, flags)

	return cmd
}

// pipeline describes one load-score-render run.
type pipeline struct {
	policies []string
	source   string
	load     func(path string) (profile.TargetProfile, error)
}

type scanSummary struct {
	GeneratedAt string               `json:"generatedAt"`
	RunID       string               `json:"runId"`
	Source      string               `json:"source"`
	Target      string               `json:"target"`
	Results     []scoring.ScanResult `json:"results"`
}

func runPipeline(cmd *cobra.Command, cfg config.RuntimeConfig, p pipeline) error {
	log := newLogger(cmd, cfg)
	emitter := events.NewEmitter(cmd.OutOrStdout())
	ndjson := cfg.Format == config.FormatNDJSON

	fail := func(err error) error {
		log.Debug("scan failed", "source", p.source, "error", err)
		if ndjson {
			if emitErr := emitter.Emit(events.Event{Type: events.TypeScanFailed, Message: err.Error(), Fields: map[string]interface{}{"source": p.source}}); emitErr != nil {
				return emitErr
			}
		}
		return err
	}

	analyzer, err := sentiment.Default()
	if err != nil {
		return fail(err)
	}

	policies, err := scoring.DefaultRegistry.Build(p.policies, analyzer)
	if err != nil {
		return fail(err)
	}

	if ndjson {
		if err := emitter.Emit(events.Event{Type: events.TypeScanStart, Message: "Starting scan", Fields: map[string]interface{}{"source": p.source, "policies": p.policies}}); err != nil {
			return err
		}
	}

	target, err := p.load(p.source)
	if err != nil {
		return fail(err)
	}
	log.Debug("profile loaded", "source", p.source, "target", target.DisplayName, "samples", len(target.Samples))

	printer := report.NewPrinter(cmd.OutOrStdout(), cfg.NoColor)
	if cfg.Format == config.FormatText {
		if err := printer.Scanning(); err != nil {
			return err
		}
	}

	results, err := scoring.Run(cmd.Context(), policies, target)
	if err != nil {
		return fail(err)
	}

	if err := writeResults(cmd, cfg.Format, printer, emitter, results); err != nil {
		return err
	}

	if cfg.SummaryFile != "" {
		summary := scanSummary{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			RunID:       emitter.RunID(),
			Source:      p.source,
			Target:      target.DisplayName,
			Results:     results,
		}
		if err := writeJSONFile(cfg.SummaryFile, summary); err != nil {
			return fail(fmt.Errorf("write summary: %w", err))
		}
		log.Info("summary written", "path", cfg.SummaryFile)
	}

	logResults(log, results)

	if ndjson {
		return emitter.Emit(events.Event{Type: events.TypeScanFinished, Message: "Scan complete", Fields: map[string]interface{}{"results": len(results)}})
	}
	return nil
}

func writeResults(cmd *cobra.Command, format string, printer *report.Printer, emitter *events.Emitter, results []scoring.ScanResult) error {
	switch format {
	case config.FormatJSON:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	case config.FormatNDJSON:
		for _, r := range results {
			if err := emitter.Emit(events.Event{Type: events.TypeScanResult, Fields: map[string]interface{}{"policy": r.Policy}, Data: r}); err != nil {
				return err
			}
		}
		return nil
	default:
		for _, r := range results {
			if err := printer.Render(r); err != nil {
				return err
			}
		}
		return nil
	}
}

func logResults(log *slog.Logger, results []scoring.ScanResult) {
	for _, r := range results {
		log.Debug("policy result", "policy", r.Policy, "target", r.Target, "score", r.Score, "tier", r.Tier)
	}
}
