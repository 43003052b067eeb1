package planner

// NormalizeCategories normalizes every entry and drops the blank ones.
func NormalizeCategories(categories []string) []string {
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if n := Normalize(c); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// MatchesCategory reports whether category is one of categories, ignoring
// case and surrounding whitespace. An empty list matches everything.
func MatchesCategory(category *string, categories []string) bool {
	wanted := NormalizeCategories(categories)
	if len(wanted) == 0 {
		return true
	}
	c := normalizePtr(category)
	for _, w := range wanted {
		if c == w {
			return true
		}
	}
	return false
}
