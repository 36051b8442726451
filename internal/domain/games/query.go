package games

import "strings"

// CategoryAll is the sentinel category that disables category filtering.
const CategoryAll = "all"

// Query is a catalog search: an optional substring over title/description
// and an optional exact category. Conditions combine with AND.
type Query struct {
	Search   string
	Category string
}

// NewQuery builds a Query from raw request values.
func NewQuery(search, category string) Query {
	return Query{Search: search, Category: category}
}

// HasSearch reports whether the free-text condition is active.
func (q Query) HasSearch() bool {
	return q.Search != ""
}

// HasCategory reports whether the category condition is active.
func (q Query) HasCategory() bool {
	return q.Category != "" && q.Category != CategoryAll
}

// IsEmpty reports whether the query matches every record.
func (q Query) IsEmpty() bool {
	return !q.HasSearch() && !q.HasCategory()
}

// Matches reports whether g satisfies the query. Search matching is
// case-insensitive; category matching is exact.
func (q Query) Matches(g Game) bool {
	if q.HasSearch() {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(g.Title), needle) &&
			!strings.Contains(strings.ToLower(g.Description), needle) {
			return false
		}
	}
	if q.HasCategory() && g.Category != q.Category {
		return false
	}
	return true
}

// Filter returns the games matching q, preserving input order.
func (q Query) Filter(all []Game) []Game {
	out := make([]Game, 0, len(all))
	for _, g := range all {
		if q.Matches(g) {
			out = append(out, g)
		}
	}
	return out
}
