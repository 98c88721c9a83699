package gesture

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/ayusman/mudra/internal/landmark"
)

// DefaultTolerance is the template tolerance used when none is given.
const DefaultTolerance = 3.0

// Template represents a gesture template for matching.
type Template struct {
	ID        string       // Unique identifier for the template
	Name      string       // Category name reported on a match
	Landmarks landmark.Set // Normalized two-hand landmarks
	Tolerance float64      // Maximum distance for a match
}

// TemplateClassifier matches landmark sets against a fixed list of templates.
// It is read-only after construction and safe for concurrent use.
type TemplateClassifier struct {
	templates  []*Template
	maxResults int
	minScore   float64
}

// Option configures a TemplateClassifier.
type Option func(*TemplateClassifier)

// WithMaxResults limits the number of returned candidates. Zero means no limit.
func WithMaxResults(n int) Option {
	return func(c *TemplateClassifier) {
		c.maxResults = n
	}
}

// WithMinScore drops candidates scoring below s.
func WithMinScore(s float64) Option {
	return func(c *TemplateClassifier) {
		c.minScore = s
	}
}

// NewTemplateClassifier creates a classifier over the given templates.
// Nil templates are ignored.
func NewTemplateClassifier(templates []*Template, opts ...Option) *TemplateClassifier {
	c := &TemplateClassifier{
		templates: make([]*Template, 0, len(templates)),
	}
	for _, t := range templates {
		if t != nil {
			c.templates = append(c.templates, t)
		}
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Len returns the number of templates.
func (c *TemplateClassifier) Len() int {
	return len(c.templates)
}

// Templates returns a copy of the template list.
func (c *TemplateClassifier) Templates() []*Template {
	out := make([]*Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Classify finds the templates within tolerance of the set.
// Returns candidates sorted by score in descending order; templates with
// equal scores keep their load order.
func (c *TemplateClassifier) Classify(ctx context.Context, set landmark.Set, _ int64) ([]Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input := set.Normalize()

	type match struct {
		name  string
		score float64
	}
	var matches []match

	for _, t := range c.templates {
		distance := Distance(input, t.Landmarks)

		// NaN distances never pass the tolerance check
		if !(distance <= t.Tolerance) {
			continue
		}

		score := 1.0 / (1.0 + distance)
		if score < c.minScore {
			continue
		}

		matches = append(matches, match{name: t.Name, score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if c.maxResults > 0 && len(matches) > c.maxResults {
		matches = matches[:c.maxResults]
	}

	categories := make([]Category, len(matches))
	for i, m := range matches {
		categories[i] = Category{Name: m.name, Score: m.score}
	}
	return categories, nil
}

// Distance is the sum of the Euclidean distances between corresponding
// landmarks of two sets.
func Distance(a, b landmark.Set) float64 {
	fa, fb := a.Flatten(), b.Flatten()

	var total float64
	for i := 0; i < len(fa); i += 3 {
		total += floats.Distance(fa[i:i+3], fb[i:i+3], 2)
	}
	return total
}
