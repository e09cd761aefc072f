package scoring

// Tier is a discrete risk band derived from a score.
type Tier string

const (
	TierLow      Tier = "LOW"
	TierModerate Tier = "MODERATE"
	TierHigh     Tier = "HIGH"
)

// Band boundaries. A score must be strictly greater than the bound to enter
// the band, so 70 is MODERATE and 40 is LOW.
const (
	HighThreshold     = 70
	ModerateThreshold = 40
)

// TierFor maps a score onto a tier.
func TierFor(score int) Tier {
	switch {
	case score > HighThreshold:
		return TierHigh
	case score > ModerateThreshold:
		return TierModerate
	default:
		return TierLow
	}
}

// Label is the dashboard wording for the tier.
func (t Tier) Label() string {
	switch t {
	case TierHigh:
		return "CRITICAL"
	case TierModerate:
		return "ELEVATED"
	default:
		return "STABLE"
	}
}

// ActionPlan is the recommended response for the tier.
func (t Tier) ActionPlan() string {
	switch t {
	case TierHigh:
		return "Immediate intervention: restrict access to payment and credential workflows, require out-of-band verification for any financial request, and arrange a welfare check."
	case TierModerate:
		return "Targeted awareness: enrol the subject in phishing simulation training, add verification to account changes, and re-assess within two weeks."
	default:
		return "Maintain baseline: standard security awareness cadence, no additional controls required."
	}
}

// Mood is the console policy's reading of the emotional baseline.
type Mood string

const (
	MoodNegative Mood = "NEGATIVE / STRESSED"
	MoodPositive Mood = "POSITIVE / RELAXED"
	MoodNeutral  Mood = "NEUTRAL / BALANCED"
)

// FlagNegativeSentiment is attached by the dashboard policy when the
// sentiment bonus applies.
const FlagNegativeSentiment = "Negative Sentiment"

// ScanResult is the fully computed outcome of a policy run. Presenters render
// it as is.
type ScanResult struct {
	Target       string        `json:"target"`
	Policy       string        `json:"policy"`
	Samples      int           `json:"samples"`
	Polarity     float64       `json:"polarity"`
	Subjectivity float64       `json:"subjectivity"`
	Categories   []CategoryHit `json:"categories"`
	Flags        []string      `json:"flags,omitempty"`
	Score        int           `json:"score"`
	Tier         Tier          `json:"tier"`
	Mood         Mood          `json:"mood,omitempty"`
}

// CategoryNames lists matched category names in order.
func (r ScanResult) CategoryNames() []string {
	names := make([]string, 0, len(r.Categories))
	for _, c := range r.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Has reports whether the named category matched.
func (r ScanResult) Has(name string) bool {
	for _, c := range r.Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}
