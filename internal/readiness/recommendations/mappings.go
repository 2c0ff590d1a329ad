package recommendations

// FoundationCategory labels the recommendation produced by the overall-score rule.
const FoundationCategory = "Foundation"

var foundationRule = Rule{
	Priority:    PriorityCritical,
	Title:       "Establish AI Foundation",
	Description: "Focus on building basic AI awareness and securing leadership commitment before pursuing specific initiatives.",
	Actions: []string{
		"Conduct AI literacy sessions for leadership team",
		"Develop initial AI strategy and vision",
		"Identify quick wins to build confidence",
	},
}

var categoryRules = map[string]Rule{
	"leadership": {
		Priority:    PriorityHigh,
		Title:       "Strengthen Leadership Alignment",
		Description: "Build stronger executive support and strategic integration of AI initiatives.",
		Actions: []string{
			"Develop comprehensive AI business case",
			"Create AI steering committee",
			"Establish clear AI success metrics",
		},
	},
	"culture": {
		Priority:    PriorityHigh,
		Title:       "Foster Experimentation Culture",
		Description: "Build organizational capacity for learning and iterating with AI technologies.",
		Actions: []string{
			`Implement "fail fast, learn faster" approach`,
			"Create cross-functional AI innovation teams",
			"Establish regular AI learning sessions",
		},
	},
	"data": {
		Priority:    PriorityMedium,
		Title:       "Improve Data Infrastructure",
		Description: "Enhance data quality and accessibility for AI applications.",
		Actions: []string{
			"Conduct data audit and quality assessment",
			"Implement data integration platform",
			"Establish data governance framework",
		},
	},
	"processes": {
		Priority:    PriorityMedium,
		Title:       "Streamline Processes for AI Integration",
		Description: "Document and adapt core workflows so AI capabilities can be embedded into daily operations.",
		Actions: []string{
			"Map and document high-value business workflows",
			"Identify process steps suited to automation or AI assistance",
			"Pilot one redesigned workflow with clear before/after metrics",
		},
	},
	"technology": {
		Priority:    PriorityMedium,
		Title:       "Modernize Technology Foundation",
		Description: "Close integration gaps in the technology stack that block AI deployment.",
		Actions: []string{
			"Assess legacy systems for API and integration readiness",
			"Evaluate managed AI/ML platforms for initial use cases",
			"Define a target architecture for scalable AI workloads",
		},
	},
	"skills": {
		Priority:    PriorityHigh,
		Title:       "Build AI Skills and Talent",
		Description: "Raise AI literacy across the organization and grow internal technical expertise.",
		Actions: []string{
			"Launch role-based AI literacy training",
			"Identify and upskill internal AI champions",
			"Plan targeted hiring or partnerships for critical AI roles",
		},
	},
}

// DefaultRules returns a copy of the per-category rule table.
func DefaultRules() map[string]Rule {
	out := make(map[string]Rule, len(categoryRules))
	for key, rule := range categoryRules {
		out[key] = cloneRule(rule)
	}
	return out
}

// FoundationRule returns the overall-score rule content.
func FoundationRule() Rule {
	return cloneRule(foundationRule)
}

// fallbackRule covers under-threshold categories that have no table entry.
// name is the display name, or the key when the input had none.
func fallbackRule(name, description string) Rule {
	desc := "Raise readiness in " + name + " before scaling AI initiatives."
	if description != "" {
		desc = name + " is below target. Focus area: " + description + "."
	}
	return Rule{
		Priority:    PriorityLow,
		Title:       "Improve " + name,
		Description: desc,
		Actions: []string{
			"Review the lowest-scoring answers in this category",
			"Assign an owner and a 90-day improvement target",
		},
	}
}

func cloneRule(r Rule) Rule {
	r.Actions = append([]string(nil), r.Actions...)
	return r
}
