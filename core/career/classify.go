package career

import (
	"strings"
)

// Classify maps a free-text profession to its category and curriculum.
// Keyword sets are tried in the order medical, engineering, legal, technology and the first hit wins.
// Anything else is generic, with its curriculum built around the literal profession.
func Classify(profession string) (Category, CategoryData) {
	cat := ClassifyCategory(profession)
	return cat, Lookup(cat, profession)
}

// ClassifyCategory is Classify without the curriculum lookup.
func ClassifyCategory(profession string) Category {
	p := strings.ToLower(profession)
	for _, cat := range categoryOrder {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(p, kw) {
				return cat
			}
		}
	}
	return CategoryGeneric
}
