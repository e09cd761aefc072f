package scoring

import (
	"context"
	"fmt"

	"github.com/example/psyhunter/internal/profile"
	"github.com/example/psyhunter/internal/sentiment"
)

// Policy names.
const (
	PolicyConsole   = "console"
	PolicyDashboard = "dashboard"
)

// Policy turns a profile into a ScanResult.
type Policy interface {
	Name() string
	Evaluate(ctx context.Context, p profile.TargetProfile) (ScanResult, error)
}

// ConsolePolicy averages per-post sentiment and scores purely from polarity bands.
type ConsolePolicy struct {
	Analyzer sentiment.Analyzer
}

// Name implements Policy.
func (ConsolePolicy) Name() string { return PolicyConsole }

// Evaluate implements Policy.
func (c ConsolePolicy) Evaluate(ctx context.Context, p profile.TargetProfile) (ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return ScanResult{}, err
	}

	scan, err := ScoreSamples(c.Analyzer, p.Samples)
	if err != nil {
		return ScanResult{}, err
	}

	score, mood := ConsoleScore(scan.Polarity)
	return ScanResult{
		Target:       p.DisplayName,
		Policy:       PolicyConsole,
		Samples:      scan.Samples,
		Polarity:     scan.Polarity,
		Subjectivity: scan.Subjectivity,
		Categories:   scan.Categories,
		Score:        score,
		Tier:         TierFor(score),
		Mood:         mood,
	}, nil
}

// DashboardPolicy scores the whole footprint against the weighted risk library.
type DashboardPolicy struct {
	Analyzer sentiment.Analyzer
}

// Name implements Policy.
func (DashboardPolicy) Name() string { return PolicyDashboard }

// Evaluate implements Policy.
func (d DashboardPolicy) Evaluate(ctx context.Context, p profile.TargetProfile) (ScanResult, error) {
	if err := ctx.Err(); err != nil {
		return ScanResult{}, err
	}
	if len(p.Samples) == 0 {
		return ScanResult{}, ErrEmptySampleSet
	}

	scan, err := ScoreText(d.Analyzer, p.Joined())
	if err != nil {
		return ScanResult{}, err
	}

	score, flags := DashboardScore(scan.Categories, scan.Polarity)
	return ScanResult{
		Target:       p.DisplayName,
		Policy:       PolicyDashboard,
		Samples:      len(p.Samples),
		Polarity:     scan.Polarity,
		Subjectivity: scan.Subjectivity,
		Categories:   scan.Categories,
		Flags:        flags,
		Score:        score,
		Tier:         TierFor(score),
	}, nil
}

// Factory builds a policy around an analyzer.
type Factory func(a sentiment.Analyzer) Policy

// Registry maps policy names to constructors.
type Registry map[string]Factory

// DefaultRegistry contains the built-in policies.
var DefaultRegistry = Registry{
	PolicyConsole:   func(a sentiment.Analyzer) Policy { return ConsolePolicy{Analyzer: a} },
	PolicyDashboard: func(a sentiment.Analyzer) Policy { return DashboardPolicy{Analyzer: a} },
}

// Build instantiates the named policies, skipping duplicates.
func (r Registry) Build(names []string, a sentiment.Analyzer) ([]Policy, error) {
	var policies []Policy
	seen := map[string]struct{}{}
	for _, name := range names {
		factory, ok := r[name]
		if !ok {
			return nil, fmt.Errorf("unknown policy: %s", name)
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		policies = append(policies, factory(a))
	}
	return policies, nil
}

// Run evaluates policies in order against one profile. The first failure
// aborts the run; no partial results are returned.
func Run(ctx context.Context, policies []Policy, p profile.TargetProfile) ([]ScanResult, error) {
	results := make([]ScanResult, 0, len(policies))
	for _, policy := range policies {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := policy.Evaluate(ctx, p)
		if err != nil {
			return nil, fmt.Errorf("%s policy: %w", policy.Name(), err)
		}
		results = append(results, result)
	}
	return results, nil
}
