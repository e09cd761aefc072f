package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/psyhunter/internal/scoring"
)

const ruleWidth = 60

// GaugeWidth is the number of cells in the text gauge.
const GaugeWidth = 20

// Printer renders computed scan results as terminal text.
type Printer struct {
	w       io.Writer
	noColor bool
}

// NewPrinter returns a printer writing to w. With noColor set all output is
// plain text; otherwise colour follows the terminal detection of fatih/color.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	return &Printer{w: w, noColor: noColor}
}

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if p.noColor {
		c.DisableColor()
	}
	return c
}

// Render picks the layout matching the policy that produced r.
func (p *Printer) Render(r scoring.ScanResult) error {
	if r.Policy == scoring.PolicyDashboard {
		return p.RenderDashboard(r)
	}
	return p.RenderConsole(r)
}

// Scanning prints the progress banner shown before analysis.
func (p *Printer) Scanning() error {
	_, err := p.paint(color.FgCyan).Fprintln(p.w, "\n[SYSTEM] Scanning digital footprint...")
	return err
}

// RenderConsole writes the behavioural threat intelligence report.
func (p *Printer) RenderConsole(r scoring.ScanResult) error {
	ew := &errWriter{w: p.w}
	header := p.paint(color.FgYellow)
	white := p.paint(color.FgWhite)
	red := p.paint(color.FgRed)
	rule := strings.Repeat("=", ruleWidth)

	ew.print(header, "\n%s\n", rule)
	ew.print(header, "🧠 PSY-HUNTER: BEHAVIORAL THREAT INTELLIGENCE\n")
	ew.print(header, "👤 TARGET IDENTITY: %s\n", r.Target)
	ew.print(header, "%s\n", rule)

	ew.print(white, "\n📊 EMOTIONAL BASELINE SCORE: %.2f\n", r.Polarity)
	ew.printf("Detected Mood State: ")
	ew.print(p.paint(moodColor(r.Mood)), "%s %s\n", r.Mood, moodEmoji(r.Mood))
	ew.printf("Subjectivity: %.2f across %d posts\n", r.Subjectivity, r.Samples)

	ew.print(white, "\n🎯 DETECTED PSYCHOLOGICAL VULNERABILITIES:\n")
	if len(r.Categories) == 0 {
		ew.printf("   - No significant emotional triggers detected.\n")
	}
	for _, name := range r.CategoryNames() {
		ew.printf("   - ")
		ew.print(red, "[CRITICAL] %s\n", name)
	}

	ew.print(white, "\n🛡️ PREDICTED PHISHING VECTORS (RISK ANALYSIS):\n")
	for _, alert := range scoring.Alerts(r) {
		ew.print(red, "⚠️ ALERT: %s\n", alert)
	}

	ew.print(p.paint(color.FgMagenta), "\n>>> TOTAL HUMAN VULNERABILITY SCORE: %d/100\n", r.Score)
	return ew.err
}

// RenderDashboard writes a text rendition of the dashboard: gauge, the two
// metrics, triggered categories and the action plan.
func (p *Printer) RenderDashboard(r scoring.ScanResult) error {
	ew := &errWriter{w: p.w}
	header := p.paint(color.FgYellow)
	tier := p.paint(tierColor(r.Tier), color.Bold)
	rule := strings.Repeat("=", ruleWidth)

	ew.print(header, "\n%s\n", rule)
	ew.print(header, "PSY-HUNTER DASHBOARD: %s\n", r.Target)
	ew.print(header, "%s\n", rule)

	ew.printf("\nRISK SCORE: ")
	ew.print(tier, "%d/100 [%s]\n", r.Score, r.Tier.Label())
	ew.printf("%s\n", Gauge(r.Score, GaugeWidth))
	ew.printf("\nSentiment: %+.2f    Subjectivity: %.2f\n", r.Polarity, r.Subjectivity)

	ew.printf("\nTriggered categories:\n")
	if len(r.Categories) == 0 && len(r.Flags) == 0 {
		ew.printf("   - none\n")
	}
	for _, c := range r.Categories {
		ew.printf("   - %s (%d hits x %d)\n", c.Name, c.Hits, c.Weight)
	}
	for _, f := range r.Flags {
		ew.printf("   - %s\n", f)
	}

	ew.printf("\nAction plan [%s]:\n", r.Tier.Label())
	ew.print(tier, "   %s\n", r.Tier.ActionPlan())
	return ew.err
}

// Gauge draws score as a fixed-width bar, clamped to 0..100.
func Gauge(score, width int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score * width / 100

	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < width; i++ {
		if i < filled {
			b.WriteByte('#')
		} else {
			b.WriteByte('-')
		}
	}
	b.WriteByte(']')
	fmt.Fprintf(&b, " %3d", score)
	return b.String()
}

func moodColor(m scoring.Mood) color.Attribute {
	switch m {
	case scoring.MoodNegative:
		return color.FgRed
	case scoring.MoodPositive:
		return color.FgGreen
	default:
		return color.FgBlue
	}
}

func moodEmoji(m scoring.Mood) string {
	switch m {
	case scoring.MoodNegative:
		return "😡"
	case scoring.MoodPositive:
		return "😌"
	default:
		return "😐"
	}
}

func tierColor(t scoring.Tier) color.Attribute {
	switch t {
	case scoring.TierHigh:
		return color.FgRed
	case scoring.TierModerate:
		return color.FgYellow
	default:
		return color.FgGreen
	}
}

// errWriter keeps the first write error so rendering code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func (e *errWriter) print(c *color.Color, format string, args ...interface{}) {
	if e.err != nil {
		return
	}
	_, e.err = c.Fprintf(e.w, format, args...)
}
