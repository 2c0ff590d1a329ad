package resources

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidLibrary is returned when the library document fails validation.
var ErrInvalidLibrary = errors.New("invalid resource library")

const topProviderCount = 5

// Resource is one curated AI-strategy reference.
type Resource struct {
	Title       string   `yaml:"title" json:"title"`
	URL         string   `yaml:"url" json:"url"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Type        string   `yaml:"type" json:"type"`
	Provider    string   `yaml:"provider" json:"provider"`
	KeyPoints   []string `yaml:"key_points" json:"keyPoints"`
}

// Step is one suggested way to use the library.
type Step struct {
	Title  string `yaml:"title" json:"title"`
	Detail string `yaml:"detail" json:"detail"`
}

// Section groups categories for display.
type Section struct {
	Title      string     `yaml:"title" json:"title"`
	Categories []string   `yaml:"categories" json:"-"`
	Resources  []Resource `yaml:"-" json:"resources"`
}

// Library is the validated, read-only resource collection.
type Library struct {
	resources []Resource
	themes    []string
	steps     []Step
	sections  []Section
}

type libraryDoc struct {
	Resources []Resource `yaml:"resources"`
	Themes    []string   `yaml:"themes"`
	Steps     []Step     `yaml:"steps"`
	Sections  []Section  `yaml:"sections"`
}

//go:embed library.yaml
var defaultLibraryYAML []byte

var defaultLibrary = sync.OnceValues(func() (*Library, error) {
	return ParseLibrary(defaultLibraryYAML)
})

// DefaultLibrary returns the embedded library.
func DefaultLibrary() (*Library, error) {
	return defaultLibrary()
}

// ParseLibrary decodes and validates a YAML library document.
func ParseLibrary(raw []byte) (*Library, error) {
	var doc libraryDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLibrary, err)
	}
	if len(doc.Resources) == 0 {
		return nil, fmt.Errorf("%w: no resources", ErrInvalidLibrary)
	}
	seen := make(map[string]struct{}, len(doc.Resources))
	for i, r := range doc.Resources {
		if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.URL) == "" {
			return nil, fmt.Errorf("%w: resource[%d] needs title and url", ErrInvalidLibrary, i)
		}
		if !strings.HasPrefix(r.URL, "https://") && !strings.HasPrefix(r.URL, "http://") {
			return nil, fmt.Errorf("%w: resource %q url must be http(s)", ErrInvalidLibrary, r.Title)
		}
		if _, dup := seen[r.URL]; dup {
			return nil, fmt.Errorf("%w: duplicate url %q", ErrInvalidLibrary, r.URL)
		}
		seen[r.URL] = struct{}{}
	}
	return &Library{
		resources: doc.Resources,
		themes:    doc.Themes,
		steps:     doc.Steps,
		sections:  doc.Sections,
	}, nil
}

// Resources returns every resource in document order.
func (l *Library) Resources() []Resource {
	out := make([]Resource, len(l.resources))
	for i, r := range l.resources {
		out[i] = cloneResource(r)
	}
	return out
}

// ByCategory groups resources by category, keeping document order within
// each group. Resources without a category land under "Other".
func (l *Library) ByCategory() map[string][]Resource {
	out := make(map[string][]Resource)
	for _, r := range l.resources {
		out[categoryOf(r)] = append(out[categoryOf(r)], cloneResource(r))
	}
	return out
}

// Sections returns the display sections with their resources. Categories not
// claimed by any section are left out.
func (l *Library) Sections() []Section {
	out := make([]Section, 0, len(l.sections))
	for _, sec := range l.sections {
		want := make(map[string]struct{}, len(sec.Categories))
		for _, c := range sec.Categories {
			want[c] = struct{}{}
		}
		s := Section{Title: sec.Title, Resources: []Resource{}}
		for _, r := range l.resources {
			if _, ok := want[r.Category]; ok {
				s.Resources = append(s.Resources, cloneResource(r))
			}
		}
		out = append(out, s)
	}
	return out
}

// Count is a named tally.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary describes the collection at a point in time.
type Summary struct {
	GeneratedAt    time.Time `json:"generatedAt"`
	TotalResources int       `json:"totalResources"`
	Categories     []Count   `json:"categories"`
	TopProviders   []Count   `json:"topProviders"`
	Themes         []string  `json:"themes"`
	Steps          []Step    `json:"steps"`
}

// Summary counts resources per category (sorted by name) and lists the top
// providers by resource count (ties broken by name).
func (l *Library) Summary(now time.Time) Summary {
	categories := map[string]int{}
	providers := map[string]int{}
	for _, r := range l.resources {
		categories[categoryOf(r)]++
		provider := strings.TrimSpace(r.Provider)
		if provider == "" {
			provider = "Unknown"
		}
		providers[provider]++
	}

	catCounts := toCounts(categories)
	sort.Slice(catCounts, func(i, j int) bool { return catCounts[i].Name < catCounts[j].Name })

	provCounts := toCounts(providers)
	sort.Slice(provCounts, func(i, j int) bool {
		if provCounts[i].Count != provCounts[j].Count {
			return provCounts[i].Count > provCounts[j].Count
		}
		return provCounts[i].Name < provCounts[j].Name
	})
	if len(provCounts) > topProviderCount {
		provCounts = provCounts[:topProviderCount]
	}

	return Summary{
		GeneratedAt:    now.UTC(),
		TotalResources: len(l.resources),
		Categories:     catCounts,
		TopProviders:   provCounts,
		Themes:         append([]string{}, l.themes...),
		Steps:          append([]Step{}, l.steps...),
	}
}

func toCounts(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for name, n := range m {
		out = append(out, Count{Name: name, Count: n})
	}
	return out
}

func categoryOf(r Resource) string {
	if c := strings.TrimSpace(r.Category); c != "" {
		return c
	}
	return "Other"
}

func cloneResource(r Resource) Resource {
	r.KeyPoints = append([]string(nil), r.KeyPoints...)
	return r
}
