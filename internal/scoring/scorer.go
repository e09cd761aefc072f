package scoring

import (
	"errors"
	"strings"

	"github.com/example/psyhunter/internal/sentiment"
)

// ErrEmptySampleSet is returned when there is no text to score.
var ErrEmptySampleSet = errors.New("empty sample set")

// TextScan is the scorer output for a single blob of text.
type TextScan struct {
	Polarity     float64
	Subjectivity float64
	Categories   []CategoryHit
}

// SampleScan is the scorer output aggregated over several samples.
type SampleScan struct {
	Samples      int
	Polarity     float64
	Subjectivity float64
	Categories   []CategoryHit
}

// ScoreText scores one blob against the weighted risk library.
func ScoreText(a sentiment.Analyzer, text string) (TextScan, error) {
	if strings.TrimSpace(text) == "" {
		return TextScan{}, ErrEmptySampleSet
	}

	s, err := sentiment.Checked(a, text)
	if err != nil {
		return TextScan{}, err
	}

	return TextScan{
		Polarity:     s.Polarity,
		Subjectivity: s.Subjectivity,
		Categories:   Match(text, riskLibrary),
	}, nil
}

// ScoreSamples averages sentiment over every sample and unions the console
// trigger categories each sample fires. A category's Hits is the number of
// samples that fired it.
func ScoreSamples(a sentiment.Analyzer, samples []string) (SampleScan, error) {
	if len(samples) == 0 {
		return SampleScan{}, ErrEmptySampleSet
	}

	var polarity, subjectivity float64
	fired := make([]int, len(consoleTriggers))

	for _, text := range samples {
		s, err := sentiment.Checked(a, text)
		if err != nil {
			return SampleScan{}, err
		}
		polarity += s.Polarity
		subjectivity += s.Subjectivity

		for i, c := range consoleTriggers {
			if CountTriggers(text, c) > 0 {
				fired[i]++
			}
		}
	}

	var categories []CategoryHit
	for i, c := range consoleTriggers {
		if fired[i] > 0 {
			categories = append(categories, CategoryHit{Name: c.Name, Hits: fired[i]})
		}
	}

	n := float64(len(samples))
	return SampleScan{
		Samples:      len(samples),
		Polarity:     polarity / n,
		Subjectivity: subjectivity / n,
		Categories:   categories,
	}, nil
}
