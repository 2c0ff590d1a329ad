package readiness

import (
	"math"
	"strings"
	"sync"
)

const (
	MinScore = 1
	MaxScore = 5

	weightTolerance = 1e-9
)

// Category is one weighted dimension of AI readiness.
type Category struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// Option is a single selectable answer for a question.
type Option struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Question belongs to exactly one category through CategoryKey.
type Question struct {
	ID          string   `json:"id"`
	CategoryKey string   `json:"categoryKey"`
	Prompt      string   `json:"prompt"`
	Options     []Option `json:"options"`
}

// Catalog is the validated, read-only set of categories and questions.
// It is safe for concurrent use; accessors return copies.
type Catalog struct {
	categories    []Category
	questions     []Question
	categoryIndex map[string]int
	questionIndex map[string]int
}

// NewCatalog validates the categories and questions and builds a Catalog.
// Category order is preserved and used as the aggregation order.
func NewCatalog(categories []Category, questions []Question) (*Catalog, error) {
	if len(categories) == 0 {
		return nil, configErr("categories", "at least one category is required")
	}

	c := &Catalog{
		categories:    make([]Category, 0, len(categories)),
		questions:     make([]Question, 0, len(questions)),
		categoryIndex: make(map[string]int, len(categories)),
		questionIndex: make(map[string]int, len(questions)),
	}

	totalWeight := 0.0
	for i, cat := range categories {
		key := strings.TrimSpace(cat.Key)
		if key == "" {
			return nil, configErr("categories", "category[%d] key is required", i)
		}
		if _, dup := c.categoryIndex[key]; dup {
			return nil, configErr("categories", "duplicate category key %q", key)
		}
		if !(cat.Weight > 0) || math.IsInf(cat.Weight, 0) {
			return nil, configErr("weights", "category %q weight must be positive, got %v", key, cat.Weight)
		}
		cat.Key = key
		totalWeight += cat.Weight
		c.categoryIndex[key] = len(c.categories)
		c.categories = append(c.categories, cat)
	}
	if math.Abs(totalWeight-1.0) > weightTolerance {
		return nil, configErr("weights", "category weights must sum to 1.0, got %.12f", totalWeight)
	}

	for i, q := range questions {
		id := strings.TrimSpace(q.ID)
		if id == "" {
			return nil, configErr("questions", "question[%d] id is required", i)
		}
		if _, dup := c.questionIndex[id]; dup {
			return nil, configErr("questions", "duplicate question id %q", id)
		}
		if _, ok := c.categoryIndex[q.CategoryKey]; !ok {
			return nil, configErr("questions", "question %q references unknown category %q", id, q.CategoryKey)
		}
		if err := validateOptions(id, q.Options); err != nil {
			return nil, err
		}
		q.ID = id
		q.Options = cloneOptions(q.Options)
		c.questionIndex[id] = len(c.questions)
		c.questions = append(c.questions, q)
	}

	return c, nil
}

func validateOptions(questionID string, options []Option) error {
	if len(options) == 0 {
		return configErr("questions", "question %q has no options", questionID)
	}
	prev := MinScore - 1
	for i, opt := range options {
		if opt.Value < MinScore || opt.Value > MaxScore {
			return configErr("questions", "question %q option[%d] value %d outside [%d,%d]", questionID, i, opt.Value, MinScore, MaxScore)
		}
		if opt.Value <= prev {
			return configErr("questions", "question %q option values must be strictly increasing", questionID)
		}
		prev = opt.Value
	}
	return nil
}

// Categories returns the categories in declaration order.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category looks up a category by key.
func (c *Catalog) Category(key string) (Category, bool) {
	idx, ok := c.categoryIndex[key]
	if !ok {
		return Category{}, false
	}
	return c.categories[idx], true
}

// Questions returns every question in declaration order.
func (c *Catalog) Questions() []Question {
	out := make([]Question, len(c.questions))
	for i, q := range c.questions {
		q.Options = cloneOptions(q.Options)
		out[i] = q
	}
	return out
}

// QuestionsFor returns the questions of one category.
func (c *Catalog) QuestionsFor(categoryKey string) []Question {
	out := make([]Question, 0)
	for _, q := range c.questions {
		if q.CategoryKey != categoryKey {
			continue
		}
		q.Options = cloneOptions(q.Options)
		out = append(out, q)
	}
	return out
}

// Question looks up a question by id.
func (c *Catalog) Question(id string) (Question, bool) {
	idx, ok := c.questionIndex[id]
	if !ok {
		return Question{}, false
	}
	q := c.questions[idx]
	q.Options = cloneOptions(q.Options)
	return q, true
}

// WeightSum returns the sum of all category weights.
func (c *Catalog) WeightSum() float64 {
	sum := 0.0
	for _, cat := range c.categories {
		sum += cat.Weight
	}
	return sum
}

// categoryIndexOf resolves a question id to its category position.
func (c *Catalog) categoryIndexOf(questionID string) (int, bool) {
	qIdx, ok := c.questionIndex[questionID]
	if !ok {
		return 0, false
	}
	return c.categoryIndex[c.questions[qIdx].CategoryKey], true
}

func cloneOptions(in []Option) []Option {
	if in == nil {
		return nil
	}
	out := make([]Option, len(in))
	copy(out, in)
	return out
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return NewCatalog(defaultCategories(), defaultQuestions())
})

// DefaultCatalog returns the built-in assessment catalog.
func DefaultCatalog() (*Catalog, error) {
	return defaultCatalog()
}

// MustDefaultCatalog is DefaultCatalog for process start-up; it panics on a
// ConfigurationError.
func MustDefaultCatalog() *Catalog {
	c, err := DefaultCatalog()
	if err != nil {
		panic(err)
	}
	return c
}
