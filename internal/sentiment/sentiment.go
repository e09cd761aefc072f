package sentiment

import (
	"errors"
	"fmt"
)

// ErrSentimentDelegate marks a failure inside the sentiment scorer itself.
var ErrSentimentDelegate = errors.New("sentiment delegate failure")

// Sentiment is the output of an Analyzer for one piece of text.
type Sentiment struct {
	// Polarity is in [-1, 1].
	Polarity float64 `json:"polarity"`
	// Subjectivity is in [0, 1].
	Subjectivity float64 `json:"subjectivity"`
}

// Analyzer scores plain text. Implementations must be deterministic for
// identical input.
type Analyzer interface {
	Analyze(text string) (Sentiment, error)
}

// AnalyzerFunc adapts a function to the Analyzer interface.
type AnalyzerFunc func(text string) (Sentiment, error)

// Analyze implements Analyzer.
func (f AnalyzerFunc) Analyze(text string) (Sentiment, error) {
	return f(text)
}

// Checked runs a and enforces the output ranges. Any error or out of range
// value is reported as ErrSentimentDelegate.
func Checked(a Analyzer, text string) (Sentiment, error) {
	if a == nil {
		return Sentiment{}, fmt.Errorf("%w: no analyzer configured", ErrSentimentDelegate)
	}

	s, err := a.Analyze(text)
	if err != nil {
		if errors.Is(err, ErrSentimentDelegate) {
			return Sentiment{}, err
		}
		return Sentiment{}, fmt.Errorf("%w: %v", ErrSentimentDelegate, err)
	}

	if s.Polarity < -1 || s.Polarity > 1 || s.Polarity != s.Polarity {
		return Sentiment{}, fmt.Errorf("%w: polarity %v out of range", ErrSentimentDelegate, s.Polarity)
	}
	if s.Subjectivity < 0 || s.Subjectivity > 1 || s.Subjectivity != s.Subjectivity {
		return Sentiment{}, fmt.Errorf("%w: subjectivity %v out of range", ErrSentimentDelegate, s.Subjectivity)
	}

	return s, nil
}
