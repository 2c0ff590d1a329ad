package recommendations

// Engine applies the ordered threshold rules. Rules are evaluated in
// declaration order and every matching rule contributes; output is not
// re-sorted by priority.
type Engine struct {
	Rules      map[string]Rule
	Thresholds Thresholds
	// NoFallback drops under-threshold categories without a rule entry.
	NoFallback bool
}

// NewEngine returns an engine with the default rule table and thresholds.
func NewEngine() *Engine {
	return &Engine{
		Rules:      DefaultRules(),
		Thresholds: DefaultThresholds(),
	}
}

var defaultEngine = NewEngine()

// Generate runs the default engine.
func Generate(input Input) []Recommendation {
	return defaultEngine.Generate(input)
}

// Generate returns every recommendation triggered by input.
func (e *Engine) Generate(input Input) []Recommendation {
	out := make([]Recommendation, 0, len(input.Categories)+1)

	if input.Overall < e.Thresholds.Foundation {
		out = append(out, build(FoundationCategory, foundationRule))
	}

	for _, cat := range input.Categories {
		if !(cat.Average < e.Thresholds.Category) {
			continue
		}
		name := cat.Name
		if name == "" {
			name = cat.Key
		}
		rule, ok := e.Rules[cat.Key]
		if !ok {
			if e.NoFallback {
				continue
			}
			rule = fallbackRule(name, cat.Description)
		}
		out = append(out, build(name, rule))
	}
	return out
}

func build(category string, rule Rule) Recommendation {
	return Recommendation{
		Priority:    rule.Priority,
		Category:    category,
		Title:       rule.Title,
		Description: rule.Description,
		Actions:     append([]string(nil), rule.Actions...),
	}
}
