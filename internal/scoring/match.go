package scoring

import "strings"

// CategoryHit records how many distinct triggers of a category fired.
type CategoryHit struct {
	Name   string `json:"name"`
	Hits   int    `json:"hits"`
	Weight int    `json:"weight,omitempty"`
}

// CountTriggers returns the number of distinct triggers of c contained in
// text. Matching is a case-insensitive substring test, so "bill" also fires
// inside "billing".
func CountTriggers(text string, c Category) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, trigger := range c.Triggers {
		if strings.Contains(lower, strings.ToLower(trigger)) {
			hits++
		}
	}
	return hits
}

// Match returns the categories of table that fired at least once, in table order.
func Match(text string, table []Category) []CategoryHit {
	var out []CategoryHit
	for _, c := range table {
		if n := CountTriggers(text, c); n > 0 {
			out = append(out, CategoryHit{Name: c.Name, Hits: n, Weight: c.Weight})
		}
	}
	return out
}
