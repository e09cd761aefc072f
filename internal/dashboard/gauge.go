package dashboard

import (
	"fmt"
	"math"

	"github.com/example/psyhunter/internal/scoring"
)

// Gauge geometry in SVG user units.
const (
	gaugeCX     = 120.0
	gaugeCY     = 120.0
	gaugeRadius = 100.0
	needleLen   = 85.0
)

const (
	colorStable   = "#2e7d32"
	colorElevated = "#f9a825"
	colorCritical = "#c62828"
)

type gaugeBand struct {
	Path  string
	Color string
}

type gaugeView struct {
	Bands   []gaugeBand
	NeedleX float64
	NeedleY float64
	Color   string
}

// newGauge lays out a half-circle gauge whose colour bands end at the tier
// thresholds.
func newGauge(score int) gaugeView {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	x, y := pointAt(score, needleLen)
	return gaugeView{
		Bands: []gaugeBand{
			{Path: arcPath(0, scoring.ModerateThreshold), Color: colorStable},
			{Path: arcPath(scoring.ModerateThreshold, scoring.HighThreshold), Color: colorElevated},
			{Path: arcPath(scoring.HighThreshold, 100), Color: colorCritical},
		},
		NeedleX: x,
		NeedleY: y,
		Color:   tierColor(scoring.TierFor(score)),
	}
}

func tierColor(t scoring.Tier) string {
	switch t {
	case scoring.TierHigh:
		return colorCritical
	case scoring.TierModerate:
		return colorElevated
	default:
		return colorStable
	}
}

// pointAt maps a 0..100 value onto the upper half circle, 0 on the left.
func pointAt(value int, radius float64) (float64, float64) {
	angle := math.Pi * (1 - float64(value)/100)
	x := gaugeCX + radius*math.Cos(angle)
	y := gaugeCY - radius*math.Sin(angle)
	return math.Round(x*100) / 100, math.Round(y*100) / 100
}

func arcPath(from, to int) string {
	x1, y1 := pointAt(from, gaugeRadius)
	x2, y2 := pointAt(to, gaugeRadius)
	return fmt.Sprintf("M %.2f %.2f A %.0f %.0f 0 0 1 %.2f %.2f", x1, y1, gaugeRadius, gaugeRadius, x2, y2)
}
