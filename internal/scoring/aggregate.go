package scoring

// Console policy constants.
const (
	consoleNegativeBound = -0.1
	consolePositiveBound = 0.1

	consoleNegativeScore = 85
	consolePositiveScore = 20
	consoleNeutralScore  = 40
)

// Dashboard policy constants.
const (
	DashboardBaseline      = 20
	dashboardNegativeBound = -0.3
	dashboardNegativeBonus = 15
	maxScore               = 100
)

// ConsoleScore maps polarity onto the console policy's fixed bands.
func ConsoleScore(polarity float64) (int, Mood) {
	switch {
	case polarity < consoleNegativeBound:
		return consoleNegativeScore, MoodNegative
	case polarity > consolePositiveBound:
		return consolePositiveScore, MoodPositive
	default:
		return consoleNeutralScore, MoodNeutral
	}
}

// DashboardScore adds each category's weight once per distinct trigger hit to
// the baseline, applies the negative sentiment bonus and caps at 100.
func DashboardScore(hits []CategoryHit, polarity float64) (int, []string) {
	score := DashboardBaseline
	for _, h := range hits {
		if h.Hits > 0 && h.Weight > 0 {
			score += h.Hits * h.Weight
		}
	}

	var flags []string
	if polarity < dashboardNegativeBound {
		score += dashboardNegativeBonus
		flags = append(flags, FlagNegativeSentiment)
	}

	if score > maxScore {
		score = maxScore
	}
	return score, flags
}

// consoleAlerts is ordered the way alerts are reported.
var consoleAlerts = []struct {
	category string
	message  string
}{
	{CategoryFinancial, "Target is highly vulnerable to 'Payroll', 'Bonus', or 'Invoice' scams."},
	{CategoryAnger, "Target is likely to click on 'Complaint Resolution' or 'Urgent Service Restore' links."},
	{CategoryBurnout, "Cognitive fatigue detected. Attention span is low; prone to accidental clicks."},
}

// Alerts returns the predicted phishing vectors for the console categories
// present in r.
func Alerts(r ScanResult) []string {
	var out []string
	for _, a := range consoleAlerts {
		if r.Has(a.category) {
			out = append(out, a.message)
		}
	}
	return out
}
