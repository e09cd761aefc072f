package scoring

// Category is a named bucket of trigger substrings. Weight is the score added
// per distinct trigger found; it is zero for tables that do not weight.
type Category struct {
	Name     string
	Weight   int
	Triggers []string
}

// Console trigger category names.
const (
	CategoryBurnout   = "Burnout / Fatigue"
	CategoryAnger     = "High Anger / Frustration"
	CategoryFinancial = "Financial Anxiety"
)

// Risk library category names.
const (
	CategoryFinancialFraud    = "Financial_Fraud"
	CategoryEmotionalDistress = "Emotional_Distress"
	CategoryBurnoutExhaustion = "Burnout_Exhaustion"
	CategoryAngerHostility    = "Anger_Hostility"
	CategoryUrgencyPressure   = "Urgency_Pressure"
)

// consoleTriggers is matched per post by the console policy.
var consoleTriggers = []Category{
	{Name: CategoryBurnout, Triggers: []string{"exhaustion", "tired", "break"}},
	{Name: CategoryAnger, Triggers: []string{"angry", "fix this", "quit"}},
	{Name: CategoryFinancial, Triggers: []string{"paid", "wages", "bills", "wallet"}},
}

// riskLibrary is matched against the whole footprint by the dashboard policy.
var riskLibrary = []Category{
	{
		Name:     CategoryFinancialFraud,
		Weight:   10,
		Triggers: []string{"bank", "bitcoin", "bill", "lost", "debt", "loan", "crypto", "wallet", "payment", "invest"},
	},
	{
		Name:     CategoryEmotionalDistress,
		Weight:   20,
		Triggers: []string{"lonely", "depressed", "hopeless", "anxious", "stress", "crying", "sad"},
	},
	{
		Name:     CategoryBurnoutExhaustion,
		Weight:   10,
		Triggers: []string{"tired", "exhausted", "overworked", "deadline", "no sleep", "burnout"},
	},
	{
		Name:     CategoryAngerHostility,
		Weight:   25,
		Triggers: []string{"angry", "hate", "furious", "revenge", "rage"},
	},
	{
		Name:     CategoryUrgencyPressure,
		Weight:   20,
		Triggers: []string{"urgent", "asap", "emergency", "desperate", "help me"},
	},
}

// ConsoleTriggers returns a copy of the console trigger table.
func ConsoleTriggers() []Category {
	return cloneTable(consoleTriggers)
}

// RiskLibrary returns a copy of the weighted dashboard table.
func RiskLibrary() []Category {
	return cloneTable(riskLibrary)
}

func cloneTable(src []Category) []Category {
	out := make([]Category, len(src))
	for i, c := range src {
		out[i] = Category{
			Name:     c.Name,
			Weight:   c.Weight,
			Triggers: append([]string(nil), c.Triggers...),
		}
	}
	return out
}
