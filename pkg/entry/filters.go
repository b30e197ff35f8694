package entry

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filters narrows the entries handed to the calendar. The zero value keeps
// everything.
type Filters struct {
	Query     string  `json:"query,omitempty" validate:"max=200"`
	Category  string  `json:"category,omitempty"`
	MinRating float64 `json:"minRating,omitempty" validate:"gte=0,lte=5"`
}

// Empty reports whether f filters nothing.
func (f Filters) Empty() bool {
	return strings.TrimSpace(f.Query) == "" && f.Category == "" && f.MinRating <= 0
}

// Apply returns the entries that pass every filter, in input order. The query
// is fuzzy matched against the description and categories.
func (f Filters) Apply(entries []Dated) []Dated {
	if f.Empty() {
		return entries
	}
	out := make([]Dated, 0, len(entries))
	for _, e := range entries {
		if f.MinRating > 0 && e.Rating < f.MinRating {
			continue
		}
		if f.Category != "" && !hasCategory(e, f.Category) {
			continue
		}
		out = append(out, e)
	}
	q := strings.TrimSpace(f.Query)
	if q == "" {
		return out
	}
	matches := fuzzy.FindFrom(q, searchSource(out))
	keep := make([]bool, len(out))
	for _, m := range matches {
		keep[m.Index] = true
	}
	filtered := out[:0]
	for i, e := range out {
		if keep[i] {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func hasCategory(e Dated, category string) bool {
	for _, c := range e.Categories {
		if strings.EqualFold(c, category) {
			return true
		}
	}
	return false
}

type searchSource []Dated

func (s searchSource) String(i int) string {
	return s[i].Description + " " + strings.Join(s[i].Categories, " ")
}

func (s searchSource) Len() int { return len(s) }
