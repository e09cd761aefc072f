package sentiment

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexicon []byte

// negationWindow is how many tokens a negation stays armed while looking for
// a sentiment word.
const negationWindow = 3

const negationFactor = -0.5

type wordScore struct {
	Polarity     float64 `yaml:"polarity"`
	Subjectivity float64 `yaml:"subjectivity"`
}

type lexiconFile struct {
	Words        map[string]wordScore `yaml:"words"`
	Intensifiers map[string]float64   `yaml:"intensifiers"`
	Negations    []string             `yaml:"negations"`
}

// Lexicon is a word-level sentiment scorer. Sentiment words are averaged,
// an intensifier scales the word right after it and a negation flips and
// damps the next sentiment word.
type Lexicon struct {
	words        map[string]wordScore
	intensifiers map[string]float64
	negations    map[string]struct{}
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
	defaultErr  error
)

// Default returns the lexicon compiled into the binary. It is parsed once.
func Default() (*Lexicon, error) {
	defaultOnce.Do(func() {
		defaultLex, defaultErr = NewLexicon(defaultLexicon)
	})
	return defaultLex, defaultErr
}

// NewLexicon parses a YAML lexicon document.
func NewLexicon(data []byte) (*Lexicon, error) {
	var raw lexiconFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parse lexicon: %v", ErrSentimentDelegate, err)
	}
	if len(raw.Words) == 0 {
		return nil, fmt.Errorf("%w: lexicon has no words", ErrSentimentDelegate)
	}

	lex := &Lexicon{
		words:        make(map[string]wordScore, len(raw.Words)),
		intensifiers: make(map[string]float64, len(raw.Intensifiers)),
		negations:    make(map[string]struct{}, len(raw.Negations)),
	}
	for word, score := range raw.Words {
		if score.Polarity < -1 || score.Polarity > 1 || score.Subjectivity < 0 || score.Subjectivity > 1 {
			return nil, fmt.Errorf("%w: lexicon entry %q out of range", ErrSentimentDelegate, word)
		}
		lex.words[strings.ToLower(word)] = score
	}
	for word, factor := range raw.Intensifiers {
		lex.intensifiers[strings.ToLower(word)] = factor
	}
	for _, word := range raw.Negations {
		lex.negations[strings.ToLower(word)] = struct{}{}
	}
	return lex, nil
}

// Size reports the number of sentiment-bearing words.
func (l *Lexicon) Size() int {
	return len(l.words)
}

// Analyze implements Analyzer.
func (l *Lexicon) Analyze(text string) (Sentiment, error) {
	var (
		polaritySum     float64
		subjectivitySum float64
		scored          int
		multiplier      = 1.0
		negatedFor      int
	)

	for _, token := range tokenize(text) {
		if l.isNegation(token) {
			negatedFor = negationWindow
			continue
		}

		if factor, ok := l.intensifiers[token]; ok {
			multiplier *= factor
			continue
		}

		score, ok := l.words[token]
		if !ok {
			multiplier = 1.0
			if negatedFor > 0 {
				negatedFor--
			}
			continue
		}

		p := score.Polarity * multiplier
		s := score.Subjectivity * multiplier
		if negatedFor > 0 {
			p *= negationFactor
		}

		polaritySum += clamp(p, -1, 1)
		subjectivitySum += clamp(s, 0, 1)
		scored++

		multiplier = 1.0
		negatedFor = 0
	}

	if scored == 0 {
		return Sentiment{}, nil
	}

	return Sentiment{
		Polarity:     clamp(polaritySum/float64(scored), -1, 1),
		Subjectivity: clamp(subjectivitySum/float64(scored), 0, 1),
	}, nil
}

func (l *Lexicon) isNegation(token string) bool {
	if _, ok := l.negations[token]; ok {
		return true
	}
	return strings.HasSuffix(token, "n't")
}

// tokenize lowercases text and splits it into words, keeping inner apostrophes
// so contractions like "don't" survive.
func tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
