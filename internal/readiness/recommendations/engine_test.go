package recommendations

import (
	"encoding/json"
	"reflect"
	"testing"
)

var defaultCategories = []CategoryInput{
	{Key: "leadership", Name: "Leadership & Strategy"},
	{Key: "culture", Name: "Organizational Culture"},
	{Key: "data", Name: "Data Infrastructure"},
	{Key: "processes", Name: "Process Readiness"},
	{Key: "technology", Name: "Technical Capabilities"},
	{Key: "skills", Name: "Skills & Talent"},
}

func uniformInput(score float64) Input {
	cats := make([]CategoryInput, len(defaultCategories))
	for i, c := range defaultCategories {
		c.Average = score
		cats[i] = c
	}
	return Input{Overall: score, Categories: cats}
}

func titles(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Title)
	}
	return out
}

func TestGenerateAllHighScoresProducesNothing(t *testing.T) {
	recs := Generate(uniformInput(5))
	if recs == nil || len(recs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", recs)
	}
}

func TestGenerateAllLowScores(t *testing.T) {
	recs := Generate(uniformInput(1))

	want := []string{
		"Establish AI Foundation",
		"Strengthen Leadership Alignment",
		"Foster Experimentation Culture",
		"Improve Data Infrastructure",
		"Streamline Processes for AI Integration",
		"Modernize Technology Foundation",
		"Build AI Skills and Talent",
	}
	if got := titles(recs); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected titles:\n got %v\nwant %v", got, want)
	}
	if recs[0].Priority != PriorityCritical || recs[0].Category != FoundationCategory {
		t.Fatalf("expected critical foundation first, got %+v", recs[0])
	}
	if recs[1].Priority != PriorityHigh || recs[1].Category != "Leadership & Strategy" {
		t.Fatalf("unexpected leadership recommendation %+v", recs[1])
	}
	if recs[3].Priority != PriorityMedium {
		t.Fatalf("expected data recommendation to be medium, got %s", recs[3].Priority)
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	recs := Generate(Input{})
	if len(recs) != 1 {
		t.Fatalf("expected only the foundation rule, got %v", titles(recs))
	}
	if recs[0].Title != "Establish AI Foundation" {
		t.Fatalf("unexpected recommendation %+v", recs[0])
	}
}

func TestGenerateCategoryThresholdBoundary(t *testing.T) {
	cases := []struct {
		name    string
		average float64
		want    bool
	}{
		{name: "below", average: 2.9, want: true},
		{name: "at_threshold", average: 3.0, want: false},
		{name: "above", average: 3.1, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := Input{
				Overall: 4,
				Categories: []CategoryInput{
					{Key: "leadership", Name: "Leadership & Strategy", Average: tc.average},
				},
			}
			recs := Generate(input)
			found := false
			for _, r := range recs {
				if r.Title == "Strengthen Leadership Alignment" && r.Priority == PriorityHigh {
					found = true
				}
			}
			if found != tc.want {
				t.Fatalf("average %v: expected present=%v, got %v", tc.average, tc.want, titles(recs))
			}
		})
	}
}

func TestGenerateFoundationThresholdBoundary(t *testing.T) {
	if recs := Generate(Input{Overall: 1.99}); len(recs) != 1 {
		t.Fatalf("expected foundation rule below 2.0, got %v", titles(recs))
	}
	if recs := Generate(Input{Overall: 2.0}); len(recs) != 0 {
		t.Fatalf("expected no foundation rule at 2.0, got %v", titles(recs))
	}
}

func TestGenerateFallbackForUnknownCategory(t *testing.T) {
	input := Input{
		Overall: 3.5,
		Categories: []CategoryInput{
			{Key: "ethics", Name: "Responsible AI", Description: "Governance of AI risk", Average: 2.0},
		},
	}

	recs := Generate(input)
	if len(recs) != 1 {
		t.Fatalf("expected fallback recommendation, got %v", titles(recs))
	}
	if recs[0].Priority != PriorityLow || recs[0].Title != "Improve Responsible AI" || recs[0].Category != "Responsible AI" {
		t.Fatalf("unexpected fallback %+v", recs[0])
	}

	strict := NewEngine()
	strict.NoFallback = true
	if recs := strict.Generate(input); len(recs) != 0 {
		t.Fatalf("expected no recommendations without fallback, got %v", titles(recs))
	}
}

func TestGenerateFallbackUsesKeyWhenNameMissing(t *testing.T) {
	recs := Generate(Input{
		Overall:    4,
		Categories: []CategoryInput{{Key: "ethics", Average: 1}},
	})
	if len(recs) != 1 {
		t.Fatalf("expected one recommendation, got %v", titles(recs))
	}
	got := recs[0]
	if got.Category != "ethics" || got.Title != "Improve ethics" {
		t.Fatalf("unexpected fallback %+v", got)
	}
	if got.Description != "Raise readiness in ethics before scaling AI initiatives." {
		t.Fatalf("unexpected description %q", got.Description)
	}
}

func TestGenerateCustomThresholds(t *testing.T) {
	e := NewEngine()
	e.Thresholds = Thresholds{Foundation: 3.0, Category: 4.0}
	recs := e.Generate(Input{
		Overall:    2.5,
		Categories: []CategoryInput{{Key: "data", Name: "Data Infrastructure", Average: 3.5}},
	})
	if got := titles(recs); !reflect.DeepEqual(got, []string{"Establish AI Foundation", "Improve Data Infrastructure"}) {
		t.Fatalf("unexpected titles %v", got)
	}
}

func TestGenerateDoesNotShareRuleActions(t *testing.T) {
	recs := Generate(uniformInput(1))
	recs[0].Actions[0] = "mutated"

	again := Generate(uniformInput(1))
	if again[0].Actions[0] == "mutated" {
		t.Fatalf("rule table actions were mutated through a recommendation")
	}
}

func TestPriorityJSON(t *testing.T) {
	rec := Recommendation{Priority: PriorityMedium, Title: "x", Actions: []string{}}
	payload, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["priority"] != "Medium" {
		t.Fatalf("expected priority Medium, got %v", decoded["priority"])
	}

	var back Recommendation
	if err := json.Unmarshal(payload, &back); err != nil {
		t.Fatalf("unmarshal recommendation: %v", err)
	}
	if back.Priority != PriorityMedium {
		t.Fatalf("expected PriorityMedium, got %s", back.Priority)
	}
	if _, err := ParsePriority("urgent"); err == nil {
		t.Fatalf("expected error for unknown priority")
	}
}
